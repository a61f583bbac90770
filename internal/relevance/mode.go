package relevance

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned when a mode string is not recognised.
var ErrUnknownMode = errors.New("unknown analysis mode")

// Mode selects which scoring pipeline runs for a request.
type Mode string

// Available modes.
const (
	// ModeServer scores with sparse TF vectors and context windows.
	ModeServer Mode = "server"

	// ModeClient scores with hashed feature vectors and needs nothing but the
	// text and the phrase.
	ModeClient Mode = "client"
)

// ParseMode parses a mode name. "browser" is accepted as an alias of client.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "server":
		return ModeServer, nil
	case "client", "browser":
		return ModeClient, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// IsValid returns true if the mode is recognised.
func (m Mode) IsValid() bool {
	return m == ModeServer || m == ModeClient
}

// String returns the string representation.
func (m Mode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m Mode) Description() string {
	switch m {
	case ModeServer:
		return "Server (TF vectors + context windows)"
	case ModeClient:
		return "Client (hashed feature vectors)"
	default:
		return "Unknown"
	}
}

// Kind identifies the analysis granularity.
type Kind string

// Analysis kinds.
const (
	KindWords  Kind = "word"
	KindChunks Kind = "chunk"
)

// IsValid returns true if the kind is recognised.
func (k Kind) IsValid() bool {
	return k == KindWords || k == KindChunks
}

// String returns the string representation.
func (k Kind) String() string {
	return string(k)
}
