package http

import (
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRoundPosition(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected int
		ok       bool
	}{
		{name: "whole number", value: 1200, expected: 1200, ok: true},
		{name: "rounds half up", value: 10.5, expected: 11, ok: true},
		{name: "rounds down", value: 10.4, expected: 10, ok: true},
		{name: "negative", value: -3.6, expected: -4, ok: true},
		{name: "too large", value: 1e20, ok: false},
		{name: "too small", value: -1e20, ok: false},
		{name: "exactly two to the 63rd", value: 9223372036854775808, ok: false},
		{name: "infinity", value: math.Inf(1), ok: false},
		{name: "nan", value: math.NaN(), ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := roundPosition(tt.value)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseBookPathParam(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected string
		ok       bool
	}{
		{name: "strips leading slash", value: "/novels/dune.md", expected: "novels/dune.md", ok: true},
		{name: "keeps unicode", value: "/推理懸疑/无人生还.md", expected: "推理懸疑/无人生还.md", ok: true},
		{name: "rejects empty", value: "/", ok: false},
		{name: "rejects missing", value: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Params = gin.Params{{Key: "book_path", Value: tt.value}}

			path, ok := parseBookPathParam(c, "book_path")

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, path)
			if !tt.ok {
				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.JSONEq(t, `{"error":"book_path is required"}`, w.Body.String())
			}
		})
	}
}

func TestRespondInternalError_HidesDetails(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondInternalError(c, errors.New("database is locked"), "test")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}

func TestRespondSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondSuccess(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
}
