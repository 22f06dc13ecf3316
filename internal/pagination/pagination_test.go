package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		requested  int
		perPage    int
		totalItems int64
		wantNumber int
		wantTotal  int
		wantOffset int
	}{
		{"first page", 1, 10, 14, 1, 2, 0},
		{"second page", 2, 10, 14, 2, 2, 10},
		{"zero clamps to first", 0, 10, 14, 1, 2, 0},
		{"negative clamps to first", -3, 10, 14, 1, 2, 0},
		{"past the end clamps to last", 99, 10, 14, 2, 2, 10},
		{"empty set still has one page", 1, 10, 0, 1, 1, 0},
		{"exact multiple", 3, 10, 30, 3, 3, 20},
		{"invalid page size falls back to default", 1, 0, 25, 1, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Resolve(tt.requested, tt.perPage, tt.totalItems)
			assert.Equal(t, tt.wantNumber, page.Number)
			assert.Equal(t, tt.wantTotal, page.TotalPages)
			assert.Equal(t, tt.wantOffset, page.Offset())
		})
	}
}

func TestResolveNavigationFlags(t *testing.T) {
	page := Resolve(1, 10, 14)
	assert.True(t, page.HasNext)
	assert.False(t, page.HasPrev)

	page = Resolve(2, 10, 14)
	assert.False(t, page.HasNext)
	assert.True(t, page.HasPrev)
}
