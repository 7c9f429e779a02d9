package life

const (
	defaultBirth          = 3
	mutatedBirth          = 2
	defaultMutationPeriod = 1000
	defaultMutationChance = 0.1
)

// MutationConfig controls the stochastic birth-rule perturbation. When
// enabled, every Period-th generation draws once with probability Chance; on
// a hit, dead cells with two neighbours are born for that generation only.
type MutationConfig struct {
	Enabled bool
	Period  int
	Chance  float64
}

// DefaultMutation returns the disabled mutation settings with the standard
// period and chance filled in.
func DefaultMutation() MutationConfig {
	return MutationConfig{Period: defaultMutationPeriod, Chance: defaultMutationChance}
}

func (m MutationConfig) normalized() MutationConfig {
	if m.Period <= 0 {
		m.Period = defaultMutationPeriod
	}
	if m.Chance < 0 {
		m.Chance = 0
	}
	if m.Chance > 1 {
		m.Chance = 1
	}
	return m
}

// birthThreshold returns the neighbour count that births a dead cell when
// producing generation gen.
func (e *Engine) birthThreshold(gen int) int {
	m := e.mutation
	if !m.Enabled || gen%m.Period != 0 {
		return defaultBirth
	}
	if e.rng.Chance(m.Chance) {
		return mutatedBirth
	}
	return defaultBirth
}
