package reservation

import (
	"errors"
	"strings"
)

const (
	MaxNoteLength           = 2000
	MaxIdempotencyKeyLength = 128
)

var (
	ErrNoteTooLong           = errors.New("note is too long")
	ErrInvalidIdempotencyKey = errors.New("invalid idempotency key")
)

type Note struct {
	value string
}

func NewNote(value string) (Note, error) {
	value = strings.TrimSpace(value)
	if len([]rune(value)) > MaxNoteLength {
		return Note{}, ErrNoteTooLong
	}
	return Note{value: value}, nil
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}

// IdempotencyKey is client supplied and unique per requester.
type IdempotencyKey struct {
	value string
}

func NewIdempotencyKey(value string) (IdempotencyKey, error) {
	value = strings.TrimSpace(value)
	if value == "" || len(value) > MaxIdempotencyKeyLength {
		return IdempotencyKey{}, ErrInvalidIdempotencyKey
	}
	return IdempotencyKey{value: value}, nil
}

func (k IdempotencyKey) String() string {
	return k.value
}
