package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func TestSuccess_WritesEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "req-1")

	resp := Success(c, http.StatusCreated, map[string]string{"email": "a@b.com"}, "created", nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, resp.Success)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "req-1", body["request_id"])
	assert.Equal(t, "a@b.com", body["data"].(map[string]any)["email"])
	assert.NotContains(t, body, "error")
}

func TestError_WritesEnvelopeWithoutData(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error[any](c, 0, "bad", map[string]string{"email": "is required"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.NotContains(t, body, "data")
	assert.Equal(t, "is required", body["error"].(map[string]any)["email"])
}

func TestNewSuccess_DoesNotWrite(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	resp := NewSuccess(c, 0, "x", "ok", nil)

	assert.Equal(t, http.StatusOK, resp.Status)
	assert.True(t, resp.Success)
	assert.Zero(t, w.Body.Len())
}

func TestNewSuccess_EmbeddedEnvelopeFlattens(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	type withExtra struct {
		APIResponse[string]
		Extra string `json:"extra"`
	}

	c.JSON(http.StatusOK, withExtra{APIResponse: NewSuccess(c, http.StatusOK, "d", "ok", nil), Extra: "e"})

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "e", body["extra"])
	assert.Equal(t, "d", body["data"])
	assert.Equal(t, true, body["success"])
}
