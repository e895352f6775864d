package tracking

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCode(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z0-9]{8}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := GenerateCode()
		assert.NoError(t, err)
		assert.Regexp(t, pattern, code)
		seen[code] = true
	}
	// 100 draws from a 36^8 space should not collide.
	assert.Greater(t, len(seen), 90)
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "AB12CD34", NormalizeCode("ab12cd34"))
	assert.Equal(t, "AB12CD34", NormalizeCode("  AB12CD34  "))
	assert.Equal(t, "AB12CD34", NormalizeCode("\tab12CD34\n"))
	assert.Equal(t, "", NormalizeCode("   "))
}

func TestValidCode(t *testing.T) {
	assert.True(t, ValidCode("AB12CD34"))
	assert.True(t, ValidCode("00000000"))
	assert.True(t, ValidCode("ZZZZZZZZ"))

	assert.False(t, ValidCode(""))
	assert.False(t, ValidCode("AB12CD3"))   // too short
	assert.False(t, ValidCode("AB12CD345")) // too long
	assert.False(t, ValidCode("ab12cd34"))  // not normalized
	assert.False(t, ValidCode("AB12CD3!"))
}
