package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPath(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"Armi|Fucili|Elettrici", "Armi|Fucili|Elettrici", true},
		{" Armi | Fucili ", "Armi|Fucili", true},
		{"Root|Home|Armi|Fucili", "Armi|Fucili", true},
		{"A|B|C|D|E", "A|B|C", true},
		{"A||B", "A|B", true},
		{"Root|Home", "", false},
		{"", "", false},
		{" | ", "", false},
	}

	for _, tt := range tests {
		got, ok := Path(tt.raw)
		assert.Equal(t, tt.ok, ok, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

func TestLevels(t *testing.T) {
	assert.Equal(t, 4, Levels("Root|A| B |C"))
	assert.Equal(t, 0, Levels(""))
}

func TestFold(t *testing.T) {
	assert.Equal(t, "coltelli tascabili", Fold("  Coltelli \t TASCABILI "))
	assert.Equal(t, "àrmi", Fold("ÀRMI"))
}
