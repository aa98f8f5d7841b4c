package gameid

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lox/yaniv/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	id := Generate()
	assert.Len(t, id, Length)
	require.NoError(t, Validate(id))
}

func TestGenerateUnique(t *testing.T) {
	ids := make(map[string]bool)
	for range 100 {
		id := Generate()
		require.False(t, ids[id], "duplicate ID generated: %s", id)
		ids[id] = true
	}
}

func TestGenerateTimeSorted(t *testing.T) {
	var ids []string
	for range 10 {
		ids = append(ids, Generate())
		time.Sleep(time.Millisecond)
	}
	for i := 1; i < len(ids); i++ {
		assert.Negative(t, strings.Compare(ids[i-1], ids[i]), "IDs not sorted: %s >= %s", ids[i-1], ids[i])
	}
}

func TestSeededGeneratorIsReproducible(t *testing.T) {
	a := NewGenerator(randutil.NewReader(randutil.New(5)))
	b := NewGenerator(randutil.NewReader(randutil.New(5)))

	for range 3 {
		id := a.Generate()
		require.NoError(t, Validate(id))
		assert.Equal(t, id, b.Generate())
	}

	c := NewGenerator(randutil.NewReader(randutil.New(6)))
	assert.NotEqual(t, NewGenerator(randutil.NewReader(randutil.New(5))).Generate(), c.Generate())
}

func TestParseRoundTrip(t *testing.T) {
	for _, u := range []uuid.UUID{
		uuid.Nil,
		uuid.Max,
		uuid.MustParse("0190a5d2-7c3e-7b1a-9f00-123456789abc"),
	} {
		id := Encode(u)
		got, err := Parse(id)
		require.NoError(t, err)
		assert.Equal(t, u, got)
	}

	assert.Equal(t, strings.Repeat("0", Length), Encode(uuid.Nil))
	assert.Equal(t, "7"+strings.Repeat("z", Length-1), Encode(uuid.Max))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid ID", "01h5n0et5q6mt3v7ms1234abcd", false},
		{"too short", "01h5n0et5q6mt3v7ms123", true},
		{"too long", "01h5n0et5q6mt3v7ms1234abcdef", true},
		{"first char too high", "81h5n0et5q6mt3v7ms1234abcd", true},
		{"invalid character", "01h5n0et5q6mt3v7ms1234abci", true},
		{"uppercase not allowed", "01H5N0ET5Q6MT3V7MS1234ABCD", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAlphabet(t *testing.T) {
	require.Len(t, alphabet, 32)

	seen := make(map[rune]bool)
	for _, char := range alphabet {
		assert.False(t, seen[char], "duplicate character in alphabet: %c", char)
		seen[char] = true
	}
	for _, char := range "ilou" {
		assert.NotContains(t, alphabet, string(char))
	}
}
