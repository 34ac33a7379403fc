package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Kategorija B", "B"},
		{"kod 96", "KOD 96"},
		{"KOD95", "KOD 95"},
		{"xyz", ""},
		{"", ""},
		{"A2", "A2"},
		{"kategorija A2 (motocikl)", "A2"},
		{"A", "A"},
		{"B+E", "BE"},
		{"C + E", "CE"},
		{"AM – moped", "AM"},
		{"Traktor (F)", "F"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCategory(tt.in))
		})
	}
}

func TestNormalizeCategory_A2IsNeverA(t *testing.T) {
	assert.NotEqual(t, "A", NormalizeCategory("A2"))
	assert.NotEqual(t, "A", NormalizeCategory("cijena a2"))
}

func TestDetectCategory(t *testing.T) {
	assert.Equal(t, "B", DetectCategory("koliko košta kategorija B"))
	assert.Equal(t, "A", DetectCategory("kategorija a cijena"))
	assert.Equal(t, "", DetectCategory("a koliko to traje"))
	assert.Equal(t, "CE", DetectCategory("treba mi C+E"))
	assert.Equal(t, "", DetectCategory("kako ste danas"))
}

func TestDetectCategory_Combinations(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Koliko košta kategorija C+E?", "CE"},
		{"koliko kosta kategorija c e", "CE"},
		{"B +E prikolica", "BE"},
		{"kategorija b e cijena", "BE"},
		{"kategorija C", "C"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectCategory(tt.in))
		})
	}
}

func TestDetectCategory_SingleLettersNeedContext(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Autoškola Start d.o.o. cijene", ""},
		{"plan f za vikend", ""},
		{"kategorija D cijena", "D"},
		{"koliko traje D kategorija", "D"},
		{"kat. F traktor", "F"},
		{"kategoriju G", "G"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectCategory(tt.in))
		})
	}
}

func TestKnownCategories(t *testing.T) {
	codes := KnownCategories()
	assert.Contains(t, codes, "KOD 95")
	assert.Contains(t, codes, "G")
	assert.Len(t, codes, 13)
}
