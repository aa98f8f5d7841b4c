// Package gameid creates short, URL-safe game identifiers: a UUID encoded as
// 26 characters of Crockford base32.
package gameid

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// alphabet is Crockford's base32 in lower case.
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of every encoded ID.
const Length = 26

// Generator creates game IDs. Without a reader it produces time-ordered
// UUIDv7s; with one it produces random UUIDs drawn from the reader, so a
// seeded reader replays the same IDs.
type Generator struct {
	reader io.Reader
}

// NewGenerator creates a generator. r may be nil.
func NewGenerator(r io.Reader) *Generator {
	return &Generator{reader: r}
}

// Generate creates a new time-ordered game ID.
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate creates a new game ID.
func (g *Generator) Generate() string {
	if g.reader == nil {
		return Encode(uuid.Must(uuid.NewV7()))
	}
	return Encode(uuid.Must(uuid.NewRandomFromReader(g.reader)))
}

// Encode renders u as 26 base32 characters. Two zero bits pad the front, so
// the first character is always 0-7 and IDs sort like the UUIDs they encode.
func Encode(u uuid.UUID) string {
	var out [Length]byte
	for i := range out {
		var v byte
		for b := range 5 {
			bit := i*5 + b - 2
			v <<= 1
			if bit >= 0 && u[bit/8]&(0x80>>(bit%8)) != 0 {
				v |= 1
			}
		}
		out[i] = alphabet[v]
	}
	return string(out[:])
}

// Parse decodes an ID produced by Encode.
func Parse(id string) (uuid.UUID, error) {
	var u uuid.UUID
	if err := Validate(id); err != nil {
		return u, err
	}
	for i := range Length {
		v := strings.IndexByte(alphabet, id[i])
		for b := range 5 {
			bit := i*5 + b - 2
			if bit >= 0 && v&(0x10>>b) != 0 {
				u[bit/8] |= 0x80 >> (bit % 8)
			}
		}
	}
	return u, nil
}

// Validate checks that id is 26 lower-case base32 characters starting 0-7.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("game ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("game ID first character must be 0-7, got %c", id[0])
	}
	for i := range len(id) {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}
