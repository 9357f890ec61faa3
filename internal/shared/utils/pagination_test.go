package utils

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/consultkit/consultkit/internal/shared/constants"
)

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"valid values", 2, 20, 2, 20},
		{"zero page defaults", 0, 20, constants.DefaultPage, 20},
		{"negative page size defaults", 1, -1, 1, constants.DefaultPageSize},
		{"page size capped", 1, constants.MaxPageSize + 50, 1, constants.MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidatePagination(tt.page, tt.pageSize)
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantPageSize, got.PageSize)
		})
	}
}

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name         string
		query        string
		wantPage     int
		wantPageSize int
	}{
		{"no params", "", constants.DefaultPage, constants.DefaultPageSize},
		{"explicit params", "?page=3&page_size=5", 3, 5},
		{"garbage falls back", "?page=abc&page_size=-4", constants.DefaultPage, constants.DefaultPageSize},
		{"oversized page size capped", "?page_size=1000", constants.DefaultPage, constants.MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/tools"+tt.query, nil)

			got := ParsePagination(c)
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantPageSize, got.PageSize)
		})
	}
}

func TestApplyPagination(t *testing.T) {
	start, end := ApplyPagination(45, Pagination{Page: 3, PageSize: 20})
	assert.Equal(t, 40, start)
	assert.Equal(t, 45, end)

	start, end = ApplyPagination(10, Pagination{Page: 4, PageSize: 20})
	assert.Equal(t, 10, start)
	assert.Equal(t, 10, end)

	start, end = ApplyPagination(10, Pagination{Page: math.MaxInt, PageSize: 20})
	assert.Equal(t, 10, start)
	assert.Equal(t, 10, end)

	start, end = ApplyPagination(0, Pagination{Page: 1, PageSize: 20})
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}

func TestParsePagination_HugePage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/tools?page=4611686018427387904", nil)

	p := ParsePagination(c)
	start, end := ApplyPagination(45, p)
	assert.Equal(t, 45, start)
	assert.Equal(t, 45, end)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 20))
	assert.Equal(t, 1, TotalPages(20, 20))
	assert.Equal(t, 3, TotalPages(41, 20))
	assert.Equal(t, 1, TotalPages(5, 0))
}
