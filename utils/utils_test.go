package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/talent-portal/internal/auth"
)

func TestWriteJSON(t *testing.T) {
	t.Run("successful write", func(t *testing.T) {
		w := httptest.NewRecorder()
		err := WriteJSON(w, http.StatusOK, map[string]string{"message": "test"})
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var response map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, "test", response["message"])
	})

	t.Run("nil data", func(t *testing.T) {
		w := httptest.NewRecorder()
		require.NoError(t, WriteJSON(w, http.StatusNoContent, nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

func TestErrorWriters(t *testing.T) {
	tests := []struct {
		name      string
		write     func(http.ResponseWriter) error
		status    int
		errorType string
		message   string
	}{
		{"unauthorized default", func(w http.ResponseWriter) error { return WriteUnauthorized(w, "") }, http.StatusUnauthorized, "unauthorized", "Authentication required"},
		{"not found", func(w http.ResponseWriter) error { return WriteNotFound(w, "no view") }, http.StatusNotFound, "not_found", "no view"},
		{"internal default", func(w http.ResponseWriter) error { return WriteInternalServerError(w, "") }, http.StatusInternalServerError, "internal_error", "Internal server error"},
		{"bad request", func(w http.ResponseWriter) error { return WriteBadRequest(w, "nope", nil) }, http.StatusBadRequest, "bad_request", "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			require.NoError(t, tt.write(w))
			assert.Equal(t, tt.status, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.errorType, resp.Error)
			assert.Equal(t, tt.message, resp.Message)
		})
	}
}

func TestHTMX(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, IsHTMX(req))
	req.Header.Set("HX-Request", "true")
	assert.True(t, IsHTMX(req))

	w := httptest.NewRecorder()
	SetHXRedirect(w, "/employees")
	SetHXLocation(w, "/career-page")
	assert.Equal(t, "/employees", w.Header().Get("Hx-Redirect"))
	assert.Equal(t, "/career-page", w.Header().Get("Hx-Location"))
}

func TestValidateStruct(t *testing.T) {
	assert.NoError(t, ValidateStruct(auth.User{Role: auth.RoleApplicant, Email: "a@example.com"}))

	err := ValidateStruct(auth.User{Role: auth.Role("admin"), Email: "not-an-email"})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	fields := GetValidationFields(err)
	assert.Contains(t, fields["Role"], "must be one of")
	assert.Contains(t, fields["Email"], "valid email")

	err = ValidateStruct(auth.User{})
	assert.Contains(t, GetValidationFields(err)["Role"], "is required")

	assert.False(t, IsValidationError(errors.New("plain")))
	assert.Nil(t, GetValidationFields(errors.New("plain")))
}
