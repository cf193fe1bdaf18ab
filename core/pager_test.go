package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPager(t *testing.T) {
	p := NewPager(5, 2)
	assert.Equal(t, 3, p.Next())
	assert.Equal(t, 1, p.Prev())
	assert.True(t, p.CanPrev())
	assert.True(t, p.CanNext())
	assert.Equal(t, "Página 3 de 5", p.Label())

	first := NewPager(5, 0)
	assert.False(t, first.CanPrev(), "previous/first must be disabled on the first page")
	assert.True(t, first.CanNext())

	last := NewPager(5, 4)
	assert.False(t, last.CanNext(), "next/last must be disabled on the last page")
	assert.True(t, last.CanPrev())
	assert.Equal(t, 4, last.Last())
}

func TestNewPagerNormalizes(t *testing.T) {
	tests := []struct {
		name        string
		total, curr int
		wantTotal   int
		wantCurrent int
	}{
		{"zero total", 0, 0, 1, 0},
		{"negative current", 3, -1, 3, 0},
		{"current past end", 3, 7, 3, 0},
		{"in range", 3, 2, 3, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPager(tt.total, tt.curr)
			if p.TotalPages != tt.wantTotal || p.CurrentPage != tt.wantCurrent {
				t.Errorf("NewPager() = %+v, want {%d %d}", p, tt.wantTotal, tt.wantCurrent)
			}
		})
	}
}
