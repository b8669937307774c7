package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionWrapsAround(t *testing.T) {
	n := 4
	last := Selection{index: n - 1}
	assert.Equal(t, 0, last.Next(n).Index())
	assert.Equal(t, n-1, Selection{}.Prev(n).Index())
}

func TestSelectionUpDownAreInverse(t *testing.T) {
	for n := 1; n <= 6; n++ {
		for i := 0; i < n; i++ {
			s := Selection{index: i}
			assert.Equal(t, s, s.Next(n).Prev(n), "n=%d i=%d", n, i)
			assert.Equal(t, s, s.Prev(n).Next(n), "n=%d i=%d", n, i)
		}
	}
}

func TestSelectionEmptyList(t *testing.T) {
	s := Selection{}
	assert.Equal(t, 0, s.Next(0).Index())
	assert.Equal(t, 0, s.Prev(0).Index())
	assert.Equal(t, 0, s.AfterDelete(0).Index())
	assert.False(t, s.Valid(0))
}

func TestSelectionAfterDelete(t *testing.T) {
	assert.Equal(t, 1, Selection{index: 2}.AfterDelete(3).Index())
	assert.Equal(t, 0, Selection{index: 0}.AfterDelete(3).Index())
	assert.Equal(t, 0, Selection{index: 0}.AfterDelete(0).Index())
}

func TestSelectionClamp(t *testing.T) {
	assert.Equal(t, 2, Selection{index: 7}.Clamp(3).Index())
	assert.Equal(t, 0, Selection{index: -1}.Clamp(3).Index())
	assert.Equal(t, 1, Selection{index: 1}.Clamp(3).Index())
	assert.Equal(t, 0, Selection{index: 1}.Clamp(0).Index())
}
