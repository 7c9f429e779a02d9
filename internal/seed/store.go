package seed

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"lifeline/internal/core"
)

// Extension is the suffix of saved seed files.
const Extension = ".seed"

// ErrEmpty reports a seed file holding no cells.
var ErrEmpty = errors.New("seed matrix is empty")

// Format selects the encoding of a seed file.
type Format int

const (
	// FormatJSON encodes the matrix as nested JSON arrays of booleans.
	FormatJSON Format = iota
	// FormatYAML encodes the matrix as nested YAML sequences of booleans.
	FormatYAML
)

// FormatFor picks the encoding from a file name. Anything that is not
// .yaml or .yml is treated as JSON, which covers .seed and .json.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses an encoded matrix and checks that it is rectangular.
func Decode(data []byte, format Format) ([][]bool, error) {
	var m [][]bool
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &m)
	default:
		err = json.Unmarshal(data, &m)
	}
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if len(m) == 0 || len(m[0]) == 0 {
		return nil, ErrEmpty
	}
	if err := checkRectangular(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Encode serializes a matrix in the requested format.
func Encode(m [][]bool, format Format) ([]byte, error) {
	if format == FormatYAML {
		return yaml.Marshal(m)
	}
	return json.Marshal(m)
}

// Store reads and writes seed files on a filesystem.
type Store struct {
	fs  afero.Fs
	dir string
	now func() time.Time
}

// NewStore returns a Store that saves into dir on fs. An empty dir saves into
// the working directory.
func NewStore(fs afero.Fs, dir string) *Store {
	return &Store{fs: fs, dir: dir, now: time.Now}
}

// Load reads the seed at path and returns it in engine orientation.
func (s *Store) Load(path string) (*core.Board, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	m, err := Decode(data, FormatFor(path))
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	b, err := core.BoardFromColumns(RotateLeft(m))
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return b, nil
}

// Save writes b to a new file named after the current time and returns its
// path.
func (s *Store) Save(b *core.Board) (string, error) {
	name := fmt.Sprintf("%d%s", s.now().UnixNano(), Extension)
	path := name
	if s.dir != "" {
		path = filepath.Join(s.dir, name)
		if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
			return "", &SaveError{Path: path, Err: err}
		}
	}
	data, err := Encode(RotateRight(b.Columns()), FormatFor(path))
	if err != nil {
		return "", &SaveError{Path: path, Err: err}
	}
	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		return "", &SaveError{Path: path, Err: err}
	}
	return path, nil
}
