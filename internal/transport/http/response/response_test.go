package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyshop-account-api/internal/errs"
)

func init() { gin.SetMode(gin.TestMode) }

func record(fn func(c *gin.Context)) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)
	return w
}

func TestOKMergesPayload(t *testing.T) {
	w := record(func(c *gin.Context) {
		OK(c, http.StatusCreated, gin.H{"token": "abc"})
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "abc", body["token"])
}

func TestFailMapsKindToStatus(t *testing.T) {
	w := record(func(c *gin.Context) {
		Fail(c, errs.NotFound("user not found"))
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "user not found", body["message"])
}
