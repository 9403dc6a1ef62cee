package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		page, size       int
		offset, limit    int
	}{
		{name: "first page", page: 1, size: 10, offset: 0, limit: 10},
		{name: "third page", page: 3, size: 10, offset: 20, limit: 10},
		{name: "page below one", page: 0, size: 5, offset: 0, limit: 5},
		{name: "size defaulted", page: 2, size: 0, offset: DefaultPageSize, limit: DefaultPageSize},
		{name: "size capped", page: 1, size: 1000, offset: 0, limit: DefaultPageSize},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			offset, limit := Calculate(tt.page, tt.size)
			assert.Equal(t, tt.offset, offset)
			assert.Equal(t, tt.limit, limit)
		})
	}
}

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 7, ParseIntDefault("", 7))
	assert.Equal(t, 7, ParseIntDefault("x", 7))
	assert.Equal(t, 3, ParseIntDefault("3", 7))
}
