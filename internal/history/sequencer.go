package history

import (
	"errors"
	"math"
	"strconv"
)

const identifierBase = 16

// Sequencer hands out entry identifiers. Each call to Next returns the
// base-16 encoding of the previous counter value plus one.
type Sequencer struct {
	count uint64
}

// NewSequencer starts counting after seed, so the first identifier is seed+1.
func NewSequencer(seed uint64) *Sequencer {
	return &Sequencer{count: seed}
}

// ErrExhausted is returned once the counter has reached its maximum.
var ErrExhausted = errors.New("identifiers exhausted")

func (s *Sequencer) Next() (string, error) {
	if s.count == math.MaxUint64 {
		return "", ErrExhausted
	}
	s.count++
	return FormatIdentifier(s.count), nil
}

func FormatIdentifier(n uint64) string {
	return strconv.FormatUint(n, identifierBase)
}

// ParseIdentifier decodes an entry name. Names that are not base-16 integers
// return an error.
func ParseIdentifier(name string) (uint64, error) {
	return strconv.ParseUint(name, identifierBase, 64)
}

// largestIdentifier returns the biggest decodable identifier among entries,
// skipping names that do not decode.
func largestIdentifier(entries []Entry) (largest uint64, skipped []string) {
	for _, e := range entries {
		n, err := ParseIdentifier(e.Name())
		if err != nil {
			skipped = append(skipped, e.Name())
			continue
		}
		if n > largest {
			largest = n
		}
	}
	return largest, skipped
}
