package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCRC32C(t *testing.T) {
	// Known answer for the Castagnoli polynomial.
	assert.Equal(t, uint32(0xe3069283), CRC32C([]byte("123456789")))
}

func TestWords(t *testing.T) {
	t.Run("IgnoresTrailingZeros", func(t *testing.T) {
		assert.Equal(t, Words([]uint64{5, 9}), Words([]uint64{5, 9, 0, 0}))
	})

	t.Run("Distinguishes", func(t *testing.T) {
		assert.NotEqual(t, Words([]uint64{1}), Words([]uint64{2}))
		assert.NotEqual(t, Words([]uint64{1, 0, 1}), Words([]uint64{1, 1}))
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, Words(nil), Words([]uint64{0}))
	})
}

func TestMix64(t *testing.T) {
	assert.Equal(t, uint64(0), Mix64(0))
	assert.NotEqual(t, Mix64(1), Mix64(2))
}
