package control

import (
	"context"
	"unicode"
)

// Key identifies a physical key reported by an input source. Letter keys are
// named by their upper-case letter regardless of shift state.
type Key rune

const (
	KeyNone   Key = 0
	KeyEscape Key = 0x1b
	KeyS      Key = 'S'
	KeyQ      Key = 'Q'
	KeyN      Key = 'N'
	KeyL      Key = 'L'
	KeyR      Key = 'R'
)

var keyCommands = map[Key]Command{
	KeyS: Save,
	KeyQ: Quit,
	KeyN: NewBoard,
	KeyL: ToggleEdgeWrap,
	KeyR: Restart,
}

// KeyFromRune converts a typed character into a Key.
func KeyFromRune(r rune) Key {
	if r == rune(KeyEscape) {
		return KeyEscape
	}
	return Key(unicode.ToUpper(r))
}

// CommandForKey returns the command bound to k. Escape is reserved and maps
// to nothing, as does every other unlisted key.
func CommandForKey(k Key) (Command, bool) {
	cmd, ok := keyCommands[k]
	return cmd, ok
}

// InputSource delivers operator keys. Next blocks until a key arrives or ctx
// is done.
type InputSource interface {
	Next(ctx context.Context) (Key, error)
}

// KeyQueue is an InputSource fed by a frontend that receives key events on
// its own loop.
type KeyQueue struct {
	keys chan Key
}

// NewKeyQueue returns a KeyQueue buffering up to size pending keys.
func NewKeyQueue(size int) *KeyQueue {
	if size <= 0 {
		size = 16
	}
	return &KeyQueue{keys: make(chan Key, size)}
}

// Push offers k without blocking and reports whether it was accepted.
func (q *KeyQueue) Push(k Key) bool {
	select {
	case q.keys <- k:
		return true
	default:
		return false
	}
}

// Next implements InputSource.
func (q *KeyQueue) Next(ctx context.Context) (Key, error) {
	select {
	case k := <-q.keys:
		return k, nil
	case <-ctx.Done():
		return KeyNone, ctx.Err()
	}
}
