// Package ids provides ports.IDGenerator implementations.
package ids

import (
	"strconv"
	"sync/atomic"

	"github.com/aretw0/automata/pkg/ports"
	"github.com/google/uuid"
)

// UUID generates random RFC 4122 version 4 identifiers.
type UUID struct{}

func (UUID) GenerateID() string {
	return uuid.NewString()
}

// Sequence generates prefix1, prefix2, ... in order. Safe for concurrent use.
// It gives tests and fixtures stable identifiers.
type Sequence struct {
	prefix string
	next   atomic.Uint64
}

// NewSequence creates a Sequence starting at 1.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

func (s *Sequence) GenerateID() string {
	return s.prefix + strconv.FormatUint(s.next.Add(1), 10)
}

var (
	_ ports.IDGenerator = UUID{}
	_ ports.IDGenerator = (*Sequence)(nil)
)
