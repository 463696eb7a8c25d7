package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"docvault/internal/domain"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"quota exceeded", fmt.Errorf("%w: 500 of 500 bytes", domain.ErrQuotaExceeded), http.StatusBadRequest},
		{"validation", fmt.Errorf("%w: title required", domain.ErrValidation), http.StatusBadRequest},
		{"not found", fmt.Errorf("folder: %w", domain.ErrNotFound), http.StatusNotFound},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"conflict sentinel", domain.ErrConflict, http.StatusConflict},
		{"conflict struct", &domain.ConflictError{Message: "tag exists", ResourceType: "tag"}, http.StatusConflict},
		{"unknown", fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/documents?page=3&limit=abc", nil)

	assert.Equal(t, 3, queryInt(req, "page", 1))
	assert.Equal(t, 20, queryInt(req, "limit", 20))
	assert.Equal(t, 1, queryInt(req, "missing", 1))
}

func TestQueryBool(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/folders?rootOnly=true&pinned=yes", nil)

	assert.True(t, queryBool(req, "rootOnly"))
	assert.False(t, queryBool(req, "pinned"))
	assert.False(t, queryBool(req, "missing"))
}
