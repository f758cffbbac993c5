package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordsForChars(t *testing.T) {
	testDatas := []struct {
		length   int
		expected int
	}{
		{0, 1},
		{3, 1},
		{4, 2},
		{5, 2},
		{7, 2},
		{8, 3},
	}
	for _, testData := range testDatas {
		assert.Equal(t, testData.expected, WordsForChars(testData.length, 4))
	}
}

func TestLog2(t *testing.T) {
	assert.Equal(t, 0, Log2(1))
	assert.Equal(t, 1, Log2(2))
	assert.Equal(t, 2, Log2(4))
	assert.Equal(t, 3, Log2(8))
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "f", BaseName("f"))
	assert.Equal(t, "m", BaseName("C.m"))
	assert.Equal(t, "inner", BaseName("outer.inner"))
}
