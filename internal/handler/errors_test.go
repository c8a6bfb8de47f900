package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	chaterrors "chat-history/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestPublicMessage(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		want   string
	}{
		{"not found", fmt.Errorf("get chat x: %w", chaterrors.ErrNotFound), http.StatusNotFound, "not found"},
		{"invalid input", chaterrors.ErrInvalidInput, http.StatusBadRequest, "invalid input"},
		{"unavailable", fmt.Errorf("imagekit signer: %w", chaterrors.ErrServiceUnavailable), http.StatusServiceUnavailable, "service unavailable"},
		{"internal", errors.New("pq: password authentication failed"), http.StatusInternalServerError, "fallback"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, publicMessage(tt.err, tt.status, "fallback"))
		})
	}
}

func TestRespondErrorRecordsError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondError(c, fmt.Errorf("append: %w", chaterrors.ErrNotFound), "Error adding conversation!")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"not found","code":"NOT_FOUND"}`, w.Body.String())
	assert.Len(t, c.Errors, 1)
	assert.True(t, c.IsAborted())
}
