package utils

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "curto", Truncate("curto", 10))
	assert.Equal(t, "exato", Truncate("exato", 5))
	assert.Equal(t, "longo d...", Truncate("longo demais", 10))
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	s := "Coleção de Capítulos Inéditos"

	for max := 1; max < len(s); max++ {
		got := Truncate(s, max)
		assert.True(t, utf8.ValidString(got), "max %d produced invalid UTF-8: %q", max, got)
	}

	// The cut lands between runes even when the boundary byte index
	// falls inside "ç".
	assert.Equal(t, "Coleç...", Truncate(s, 8))
}
