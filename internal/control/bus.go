// Package control maps operator keys to commands and dispatches each command
// synchronously to the single handler bound to it.
package control

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrUnknownCommand is returned for a Command outside the defined set.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUnbound is returned when dispatching a command with no handler.
	ErrUnbound = errors.New("command has no handler")
	// ErrAlreadyBound is returned when binding a command a second time.
	ErrAlreadyBound = errors.New("command already bound")
)

// Command identifies an operator action.
type Command int

const (
	Save Command = iota
	Quit
	NewBoard
	ToggleEdgeWrap
	Restart

	numCommands
)

// Commands lists every defined command in declaration order.
func Commands() []Command {
	return []Command{Save, Quit, NewBoard, ToggleEdgeWrap, Restart}
}

func (c Command) String() string {
	switch c {
	case Save:
		return "save"
	case Quit:
		return "quit"
	case NewBoard:
		return "new-board"
	case ToggleEdgeWrap:
		return "toggle-edge-wrap"
	case Restart:
		return "restart"
	default:
		return fmt.Sprintf("command(%d)", int(c))
	}
}

func (c Command) valid() bool { return c >= 0 && c < numCommands }

// Handler performs a command. It runs on the dispatching goroutine.
type Handler func()

// Bus holds one handler per command.
type Bus struct {
	mu       sync.RWMutex
	handlers [numCommands]Handler
}

// NewBus returns a Bus with nothing bound.
func NewBus() *Bus { return &Bus{} }

// Bind attaches h to cmd.
func (b *Bus) Bind(cmd Command, h Handler) error {
	if !cmd.valid() {
		return fmt.Errorf("bind %s: %w", cmd, ErrUnknownCommand)
	}
	if h == nil {
		return fmt.Errorf("bind %s: nil handler", cmd)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.handlers[cmd] != nil {
		return fmt.Errorf("bind %s: %w", cmd, ErrAlreadyBound)
	}
	b.handlers[cmd] = h
	return nil
}

// Complete reports the first command without a handler.
func (b *Bus) Complete() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, cmd := range Commands() {
		if b.handlers[cmd] == nil {
			return fmt.Errorf("%s: %w", cmd, ErrUnbound)
		}
	}
	return nil
}

// Dispatch runs the handler bound to cmd and returns once it has finished.
func (b *Bus) Dispatch(cmd Command) error {
	if !cmd.valid() {
		return fmt.Errorf("dispatch %s: %w", cmd, ErrUnknownCommand)
	}
	b.mu.RLock()
	h := b.handlers[cmd]
	b.mu.RUnlock()
	if h == nil {
		return fmt.Errorf("dispatch %s: %w", cmd, ErrUnbound)
	}
	h()
	return nil
}
