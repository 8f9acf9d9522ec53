package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageCount(t *testing.T) {
	testCases := []struct {
		name       string
		totalCount int
		pageSize   int
		expected   int
	}{
		{"exact multiple", 40, 20, 2},
		{"partial last page", 45, 20, 3},
		{"single short page", 3, 20, 1},
		{"empty", 0, 20, 0},
		{"zero page size", 10, 0, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, PageCount(tc.totalCount, tc.pageSize))
		})
	}
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0, 3))
	assert.Equal(t, 2, ClampPage(2, 3))
	assert.Equal(t, 3, ClampPage(9, 3))
	assert.Equal(t, 4, ClampPage(4, 0))
}
