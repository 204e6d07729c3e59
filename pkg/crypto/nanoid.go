package crypto

import (
	"crypto/rand"
	"errors"
	"math"
)

const (
	defaultAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"
	defaultIDLength = 22 // 22 * 6 = 132 bits of entropy, more than a uuid
	minAlphabetSize = 8
	maxAlphabetSize = 255
)

var (
	ErrAlphabetTooShort = errors.New("alphabet must contain at least 8 characters")
	ErrAlphabetTooLong  = errors.New("alphabet must contain no more than 255 characters")
	ErrAlphabetNotASCII = errors.New("alphabet must contain only ASCII characters")
)

// IDGenerator produces URL-safe random identifiers (edge session IDs,
// OAuth state values) using the nanoid rejection-sampling scheme.
type IDGenerator struct {
	alphabet string
	mask     int
}

// NewIDGenerator builds a generator over a custom alphabet. The alphabet
// must be ASCII because generation indexes by byte position.
func NewIDGenerator(alphabet string) (*IDGenerator, error) {
	if len(alphabet) < minAlphabetSize {
		return nil, ErrAlphabetTooShort
	}
	if len(alphabet) > maxAlphabetSize {
		return nil, ErrAlphabetTooLong
	}
	for _, r := range alphabet {
		if r > 127 {
			return nil, ErrAlphabetNotASCII
		}
	}

	return &IDGenerator{
		alphabet: alphabet,
		mask:     alphabetMask(len(alphabet)),
	}, nil
}

// DefaultIDGenerator uses the URL-safe 64-character alphabet.
func DefaultIDGenerator() *IDGenerator {
	gen, _ := NewIDGenerator(defaultAlphabet)
	return gen
}

// alphabetMask returns the smallest bitmask covering alphabetLen-1.
func alphabetMask(alphabetLen int) int {
	for i := 1; i <= 8; i++ {
		mask := (2 << uint(i)) - 1
		if mask > alphabetLen-1 {
			return mask
		}
	}
	return maxAlphabetSize
}

// NewID generates an identifier of the default length.
func (g *IDGenerator) NewID() (string, error) {
	return g.NewIDLen(defaultIDLength)
}

// NewIDLen generates an identifier of size characters.
func (g *IDGenerator) NewIDLen(size int) (string, error) {
	if size <= 0 {
		size = defaultIDLength
	}

	alphabetLen := len(g.alphabet)

	// Oversample so a single rand.Read usually covers the whole ID; 1.6 is
	// the factor the reference nanoid implementation uses.
	step := int(math.Ceil(1.6 * float64(g.mask*size) / float64(alphabetLen)))

	id := make([]byte, size)
	buffer := make([]byte, step)

	for position := 0; position < size; {
		if _, err := rand.Read(buffer); err != nil {
			return "", err
		}

		for i := 0; i < step && position < size; i++ {
			index := buffer[i] & byte(g.mask)
			if int(index) < alphabetLen {
				id[position] = g.alphabet[index]
				position++
			}
		}
	}

	return string(id), nil
}
