package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageNumbersSmallSetShowsEveryPage(t *testing.T) {
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, PageNumbers(5, 3))
	assert.Equal(t, []string{"1"}, PageNumbers(1, 1))
	assert.Equal(t, []string{}, PageNumbers(0, 1))
}

func TestPageNumbersNearStart(t *testing.T) {
	want := []string{"1", "2", "3", "4", "...", "10"}
	assert.Equal(t, want, PageNumbers(10, 1))
	assert.Equal(t, want, PageNumbers(10, 2))
	assert.Equal(t, want, PageNumbers(10, 3))
}

func TestPageNumbersNearEnd(t *testing.T) {
	want := []string{"1", "...", "7", "8", "9", "10"}
	assert.Equal(t, want, PageNumbers(10, 8))
	assert.Equal(t, want, PageNumbers(10, 9))
	assert.Equal(t, want, PageNumbers(10, 10))
}

func TestPageNumbersMiddleWindow(t *testing.T) {
	assert.Equal(t, []string{"1", "...", "4", "5", "6", "...", "10"}, PageNumbers(10, 5))
	assert.Equal(t, []string{"1", "...", "3", "4", "5", "...", "20"}, PageNumbers(20, 4))
}
