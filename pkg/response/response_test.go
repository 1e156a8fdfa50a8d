package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func TestError_WritesBodyAndAborts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Set("request_id", "rid-1")

	Error(c, 0, "invalid payload", map[string]string{"username": "is required"})

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, "invalid payload", gjson.Get(body, "error").String())
	assert.Equal(t, "is required", gjson.Get(body, "details.username").String())
	assert.Equal(t, "rid-1", gjson.Get(body, "request_id").String())
}

func TestError_OmitsEmptyDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Error(c, http.StatusNotFound, "not found", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, gjson.Get(rec.Body.String(), "details").Exists())
}

func TestJSON_DefaultsToOK(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	JSON(c, 0, gin.H{"id": "1"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", gjson.Get(rec.Body.String(), "id").String())
}
