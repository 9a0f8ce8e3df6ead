package predictor

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Totarae/phishcheck/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredict_SendsJSONBody(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/predict", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req model.PredictRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "http://example.com", req.URL)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"result":"Phishing"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/predict", 0, nil)
	resp, err := c.Predict(context.Background(), "http://example.com")

	require.NoError(t, err)
	assert.Equal(t, "Phishing", resp.Result)
	assert.Empty(t, resp.Error)
	assert.EqualValues(t, 1, calls.Load())
}

func TestPredict_Responses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    *model.PredictResponse
		wantErr bool
	}{
		{name: "safe", status: http.StatusOK, body: `{"result":"Safe"}`, want: &model.PredictResponse{Result: "Safe"}},
		{name: "empty object", status: http.StatusOK, body: `{}`, want: &model.PredictResponse{}},
		{name: "error field on 500", status: http.StatusInternalServerError, body: `{"error":"model unavailable"}`, want: &model.PredictResponse{Error: "model unavailable"}},
		{name: "error field on 400", status: http.StatusBadRequest, body: `{"error":"URL is required"}`, want: &model.PredictResponse{Error: "URL is required"}},
		{name: "html body", status: http.StatusBadGateway, body: `<html>bad gateway</html>`, wantErr: true},
		{name: "null", status: http.StatusOK, body: `null`, wantErr: true},
		{name: "empty body", status: http.StatusOK, body: ``, wantErr: true},
		{name: "truncated object", status: http.StatusOK, body: `{"result":`, wantErr: true},
		{name: "array", status: http.StatusOK, body: `[]`, want: &model.PredictResponse{}},
		{name: "bare string", status: http.StatusOK, body: `"Phishing"`, want: &model.PredictResponse{}},
		{name: "number", status: http.StatusOK, body: `42`, want: &model.PredictResponse{}},
		{name: "numeric result", status: http.StatusOK, body: `{"result":5}`, want: &model.PredictResponse{}},
		{name: "null result", status: http.StatusOK, body: `{"result":null}`, want: &model.PredictResponse{}},
		{name: "numeric error", status: http.StatusOK, body: `{"error":5}`, want: &model.PredictResponse{Error: "5"}},
		{name: "zero error", status: http.StatusOK, body: `{"error":0,"result":"Phishing"}`, want: &model.PredictResponse{Result: "Phishing"}},
		{name: "false error", status: http.StatusOK, body: `{"error":false}`, want: &model.PredictResponse{}},
		{name: "empty error", status: http.StatusOK, body: `{"error":""}`, want: &model.PredictResponse{}},
		{name: "true error", status: http.StatusOK, body: `{"error":true}`, want: &model.PredictResponse{Error: "true"}},
		{name: "object error", status: http.StatusOK, body: `{"error":{"code":1}}`, want: &model.PredictResponse{Error: "[object Object]"}},
		{name: "array error", status: http.StatusOK, body: `{"error":["a",null,2.5]}`, want: &model.PredictResponse{Error: "a,,2.5"}},
		{name: "empty array error", status: http.StatusOK, body: `{"error":[]}`, want: &model.PredictResponse{Error: "[]"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			resp, err := NewClient(srv.URL, 0, nil).Predict(context.Background(), "http://example.com")
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrTransport)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp)
		})
	}
}

func TestPredict_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	_, err := NewClient(addr, 0, nil).Predict(context.Background(), "http://example.com")
	assert.ErrorIs(t, err, ErrTransport)
}

func TestPredict_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewClient(srv.URL, 50*time.Millisecond, nil).Predict(context.Background(), "http://example.com")
	assert.ErrorIs(t, err, ErrTransport)
}

func TestPredict_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(srv.URL, 0, nil).Predict(ctx, "http://example.com")
	assert.ErrorIs(t, err, ErrTransport)
}
