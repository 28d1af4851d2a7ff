package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginationParams(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantPage   int
		wantSize   int
		wantOffset int
	}{
		{name: "defaults", page: 0, size: 0, wantPage: 1, wantSize: 10, wantOffset: 0},
		{name: "explicit", page: 3, size: 20, wantPage: 3, wantSize: 20, wantOffset: 40},
		{name: "capped", page: 2, size: 500, wantPage: 2, wantSize: 100, wantOffset: 100},
		{name: "minimum size", page: 1, size: 1, wantPage: 1, wantSize: 1, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPaginationParams(tt.page, tt.size)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantSize, p.PageSize)
			assert.Equal(t, tt.wantOffset, p.Offset)
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 2, TotalPages(15, 10))
	assert.Equal(t, 15, TotalPages(15, 1))
	assert.Equal(t, 1, TotalPages(100, 100))
	assert.Equal(t, 0, TotalPages(5, 0))

	for size := 1; size <= 100; size++ {
		for n := int64(0); n <= 250; n += 7 {
			pages := TotalPages(n, size)
			assert.GreaterOrEqual(t, int64(pages*size), n)
			if pages > 0 {
				assert.Less(t, int64((pages-1)*size), n)
			}
		}
	}
}

func TestNewPaginationResponse(t *testing.T) {
	resp := NewPaginationResponse(NewPaginationParams(2, 10), 15)
	assert.Equal(t, PaginationResponse{Page: 2, PageSize: 10, Total: 15, TotalPages: 2}, resp)
}
