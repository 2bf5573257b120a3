package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePair(t *testing.T) {
	a, b := NormalizePair(9, 4)
	assert.Equal(t, int64(4), a)
	assert.Equal(t, int64(9), b)

	a, b = NormalizePair(4, 9)
	assert.Equal(t, int64(4), a)
	assert.Equal(t, int64(9), b)

	a, b = NormalizePair(5, 5)
	assert.Equal(t, int64(5), a)
	assert.Equal(t, int64(5), b)
}
