package todo

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	nanoid "github.com/jaevor/go-nanoid"
)

// ID schemes accepted by NewIDGenerator.
const (
	IDSchemeUUID   = "uuid"
	IDSchemeNanoID = "nanoid"
)

const (
	nanoIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	nanoIDLength   = 10

	// maxIDAttempts bounds the retry loop when a generated id is taken.
	maxIDAttempts = 10
)

// IDGenerator produces task ids.
type IDGenerator interface {
	NewID() (string, error)
}

// UUIDGenerator generates random (version 4) UUIDs.
type UUIDGenerator struct{}

// NewID returns a new UUID string.
func (UUIDGenerator) NewID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return id.String(), nil
}

// NanoIDGenerator generates short lowercase alphanumeric ids that are easy
// to type on the command line.
type NanoIDGenerator struct {
	gen func() string
}

// NewNanoIDGenerator returns a generator of ids with the given length.
func NewNanoIDGenerator(length int) (*NanoIDGenerator, error) {
	if length <= 0 {
		length = nanoIDLength
	}
	gen, err := nanoid.CustomASCII(nanoIDAlphabet, length)
	if err != nil {
		return nil, fmt.Errorf("create nanoid generator: %w", err)
	}
	return &NanoIDGenerator{gen: gen}, nil
}

// NewID returns a new nanoid.
func (g *NanoIDGenerator) NewID() (string, error) {
	return g.gen(), nil
}

// NewIDGenerator returns the generator for scheme ("uuid" or "nanoid").
// The empty string selects uuid.
func NewIDGenerator(scheme string) (IDGenerator, error) {
	switch strings.ToLower(strings.TrimSpace(scheme)) {
	case "", IDSchemeUUID:
		return UUIDGenerator{}, nil
	case IDSchemeNanoID:
		return NewNanoIDGenerator(nanoIDLength)
	default:
		return nil, fmt.Errorf("invalid id scheme %q, must be one of: uuid, nanoid", scheme)
	}
}

// newUniqueID asks gen for ids until one is not taken.
func newUniqueID(gen IDGenerator, taken func(string) bool) (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id, err := gen.NewID()
		if err != nil {
			return "", err
		}
		if id != "" && !taken(id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique task id after %d attempts", maxIDAttempts)
}
