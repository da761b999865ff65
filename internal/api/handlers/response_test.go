package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondConflict(rec, "занято")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrorResponse{Code: http.StatusConflict, Message: "занято"}, body)
}

func TestRespondJSON_NilBody(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondJSON(rec, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

type payload struct {
	Name  string `json:"name" validate:"required"`
	Count int    `json:"count" validate:"gte=1"`
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "valid", body: `{"name":"a","count":2}`},
		{name: "empty", body: ``, wantErr: ErrEmptyBody.Error()},
		{name: "unknown field", body: `{"name":"a","count":1,"x":1}`, wantErr: "unknown field"},
		{name: "broken json", body: `{"name":`, wantErr: "unexpected EOF"},
		{name: "validation", body: `{"count":0}`, wantErr: "Name: required, Count: gte"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var dst payload
			err := DecodeAndValidate(req, &dst)

			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, payload{Name: "a", Count: 2}, dst)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPathUUID(t *testing.T) {
	id := uuid.New()

	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"shopId": id.String()})
	got, err := PathUUID(req, "shopId")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	for _, bad := range []string{"", "42", uuid.Nil.String()} {
		req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"shopId": bad})
		_, err := PathUUID(req, "shopId")
		assert.ErrorIs(t, err, ErrInvalidID, bad)
	}
}
