package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consultkit/consultkit/internal/shared/errors"
)

type favoriteInput struct {
	ToolSlug string `json:"tool_slug" binding:"required,slug"`
	Note     string `json:"note" binding:"max=10"`
}

func TestIsSlug(t *testing.T) {
	assert.True(t, IsSlug("swot-analysis"))
	assert.True(t, IsSlug("seo2"))
	assert.False(t, IsSlug(""))
	assert.False(t, IsSlug("-lead"))
	assert.False(t, IsSlug("trail-"))
	assert.False(t, IsSlug("Upper"))
	assert.False(t, IsSlug("under_score"))
}

func bindBody(t *testing.T, body string) (favoriteInput, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var in favoriteInput
	err := BindJSON(c, &in)
	return in, err
}

func TestBindJSON(t *testing.T) {
	in, err := bindBody(t, `{"tool_slug":"swot-analysis"}`)
	require.NoError(t, err)
	assert.Equal(t, "swot-analysis", in.ToolSlug)

	_, err = bindBody(t, `{"tool_slug":"Bad Slug","note":"far too long a note"}`)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
	assert.Equal(t, "Validation failed", appErr.Message)
	assert.Contains(t, appErr.Details, "tool_slug must contain only lowercase letters")
	assert.Contains(t, appErr.Details, "note must be at most 10 characters long")

	_, err = bindBody(t, `{"tool_slug":`)
	appErr = errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "Invalid request body", appErr.Message)
}
