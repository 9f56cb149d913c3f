package generator

import (
	"fmt"
	"strings"
)

const (
	// MinLength and MaxLength bound the identifier length
	MinLength = 1
	MaxLength = 8
)

// Generator enumerates every identifier of a fixed length over a fixed
// alphabet, in lexicographic order of the alphabet's index ranking. The
// identifier is treated as a base-|alphabet| number of `length` digits, with
// the first character varying slowest, so an arbitrary start offset is a
// direct rank computation rather than a linear skip.
type Generator struct {
	alphabet []byte
	ranks    map[byte]int
	length   int
	total    uint64
	pos      uint64
	digits   []int
	buf      []byte
}

// New creates a generator for all identifiers of the given length over the
// given alphabet. startFrom, if non-empty, skips every identifier that
// enumerates before it; the comparison is case-insensitive.
func New(length int, alphabet string, startFrom string) (*Generator, error) {
	if length < MinLength || length > MaxLength {
		return nil, fmt.Errorf("length must be between %d and %d, got %d", MinLength, MaxLength, length)
	}
	if alphabet == "" {
		return nil, fmt.Errorf("alphabet must not be empty")
	}

	alphabet = strings.ToUpper(alphabet)
	ranks := make(map[byte]int, len(alphabet))
	for i := 0; i < len(alphabet); i++ {
		c := alphabet[i]
		if _, dup := ranks[c]; dup {
			return nil, fmt.Errorf("alphabet contains duplicate character %q", c)
		}
		ranks[c] = i
	}

	total := uint64(1)
	for i := 0; i < length; i++ {
		total *= uint64(len(alphabet))
	}

	g := &Generator{
		alphabet: []byte(alphabet),
		ranks:    ranks,
		length:   length,
		total:    total,
		digits:   make([]int, length),
		buf:      make([]byte, length),
	}

	if startFrom != "" {
		start, err := g.rankOf(startFrom)
		if err != nil {
			return nil, err
		}
		g.pos = start
		g.setDigits(start)
	}

	return g, nil
}

// rankOf computes the enumeration rank of the first identifier at or after
// startFrom. Shorter input is padded with the alphabet's first symbol (the
// earliest identifier with that prefix); longer input skips the whole prefix.
func (g *Generator) rankOf(startFrom string) (uint64, error) {
	s := strings.ToUpper(startFrom)

	// A proper prefix sorts before the longer string, so any trailing
	// remainder pushes the start past the prefix identifier itself.
	roundUp := false
	if len(s) > g.length {
		roundUp = true
		s = s[:g.length]
	}

	var rank uint64
	for i := 0; i < g.length; i++ {
		rank *= uint64(len(g.alphabet))
		if i < len(s) {
			r, ok := g.ranks[s[i]]
			if !ok {
				return 0, fmt.Errorf("start-from contains character %q not in alphabet", s[i])
			}
			rank += uint64(r)
		}
	}

	if roundUp {
		rank++
	}
	return rank, nil
}

// setDigits initializes the digit counter from an enumeration rank
func (g *Generator) setDigits(rank uint64) {
	n := uint64(len(g.alphabet))
	for i := g.length - 1; i >= 0; i-- {
		g.digits[i] = int(rank % n)
		rank /= n
	}
}

// Next returns the next identifier in the sequence, or false when the space
// is exhausted. The sequence is a pure function of the constructor inputs.
func (g *Generator) Next() (string, bool) {
	if g.pos >= g.total {
		return "", false
	}

	for i, d := range g.digits {
		g.buf[i] = g.alphabet[d]
	}
	id := string(g.buf)
	g.pos++

	// Increment the base-N counter, least significant digit last
	for i := g.length - 1; i >= 0; i-- {
		g.digits[i]++
		if g.digits[i] < len(g.alphabet) {
			break
		}
		g.digits[i] = 0
	}

	return id, true
}

// Total returns the size of the full identifier space (before any skip)
func (g *Generator) Total() uint64 {
	return g.total
}

// Remaining returns how many identifiers are left to enumerate
func (g *Generator) Remaining() uint64 {
	return g.total - g.pos
}

// Length returns the identifier length
func (g *Generator) Length() int {
	return g.length
}

// Alphabet returns the canonical (upper-cased) alphabet
func (g *Generator) Alphabet() string {
	return string(g.alphabet)
}
