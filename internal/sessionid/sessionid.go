// Package sessionid names a run of hands. Ids are UUIDv7 values written as
// 26 characters of Crockford base32, so they sort by creation time.
package sessionid

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/coder/quartz"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the length of every id.
const Length = 26

var ErrInvalidID = errors.New("invalid session id")

// Generator creates ids from a clock and a source of random bytes.
type Generator struct {
	clock  quartz.Clock
	random io.Reader
}

// NewGenerator returns a generator. A nil clock or random falls back to the
// wall clock and crypto/rand.
func NewGenerator(clock quartz.Clock, random io.Reader) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if random == nil {
		random = rand.Reader
	}
	return &Generator{clock: clock, random: random}
}

// New returns an id from the wall clock and crypto/rand.
func New() (string, error) {
	return NewGenerator(nil, nil).Generate()
}

// Generate returns the next id.
func (g *Generator) Generate() (string, error) {
	var id [16]byte

	// 48 bit millisecond timestamp, then random bits
	now := g.clock.Now().UnixMilli()
	for i := range 6 {
		id[i] = byte(now >> (40 - 8*i))
	}
	if _, err := io.ReadFull(g.random, id[6:]); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}
	id[6] = id[6]&0x0f | 0x70 // version 7
	id[8] = id[8]&0x3f | 0x80 // variant 10

	return encode(id), nil
}

// encode writes 128 bits as 26 five bit groups, padding the last with zeros.
func encode(data [16]byte) string {
	out := make([]byte, Length)
	for i := range out {
		offset := i * 5
		byteIndex, bitIndex := offset/8, offset%8

		var v byte
		if bitIndex <= 3 {
			v = data[byteIndex] >> (3 - bitIndex) & 0x1f
		} else {
			v = data[byteIndex] << (bitIndex - 3) & 0x1f
			if byteIndex+1 < len(data) {
				v |= data[byteIndex+1] >> (11 - bitIndex)
			}
		}
		out[i] = alphabet[v]
	}
	return string(out)
}

// Validate reports whether id could have come from Generate.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("%w: %d characters", ErrInvalidID, len(id))
	}
	for i, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("%w: %q at position %d", ErrInvalidID, c, i)
		}
	}
	return nil
}
