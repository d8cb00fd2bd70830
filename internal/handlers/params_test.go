package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-engine/internal/httperr"
)

func TestUintParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for raw, want := range map[string]bool{"12": true, "0": false, "-1": false, "x": false} {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		c.Params = gin.Params{{Key: "id", Value: raw}}

		_, ok := uintParam(c, "id")

		assert.Equal(t, want, ok, raw)
		if !want {
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		}
	}
}

func TestBindError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	type body struct {
		Status string `json:"status" binding:"required"`
	}

	bind := func(payload string) httperr.HTTPError {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
		c.Request.Header.Set("Content-Type", "application/json")

		var b body
		err := c.ShouldBindJSON(&b)
		require.Error(t, err)
		bindError(c, err, "invalid_status", "A status is required.")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var out httperr.HTTPError
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		return out
	}

	assert.Equal(t, "invalid_status", bind(`{}`).Code)
	assert.Equal(t, "invalid_request", bind(`{"status":`).Code)
}
