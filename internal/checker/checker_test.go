package checker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/Totarae/phishcheck/internal/locale"
	"github.com/Totarae/phishcheck/internal/mocks"
	"github.com/Totarae/phishcheck/internal/model"
	"github.com/Totarae/phishcheck/internal/predictor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/text/language"
)

const (
	phishingDesc = "URL ini diprediksi berbahaya. Mohon jangan diklik atau bagikan informasi sensitif."
	safeDesc     = "URL ini diprediksi aman untuk diakses."
)

// backend поднимает тестовый /predict, отвечающий заданным телом, и считает запросы.
func backend(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32, *[]string) {
	t.Helper()
	var calls atomic.Int32
	var mu sync.Mutex
	var urls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		var req model.PredictRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		mu.Lock()
		urls = append(urls, req.URL)
		mu.Unlock()
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls, &urls
}

func TestSubmit_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		want     model.Result
		wantView bool
	}{
		{
			name:   "phishing",
			status: http.StatusOK,
			body:   `{"result":"Phishing"}`,
			want: model.Result{
				State:       model.StatePhishing,
				Headline:    "PHISHING DETECTED!",
				Description: phishingDesc,
				Class:       "phishing",
			},
		},
		{
			name:   "safe",
			status: http.StatusOK,
			body:   `{"result":"Safe"}`,
			want: model.Result{
				State:       model.StateSafe,
				Headline:    "URL AMAN",
				Description: safeDesc,
				Class:       "aman",
			},
		},
		{
			name:   "unknown label renders safe",
			status: http.StatusOK,
			body:   `{"result":"phishing"}`,
			want: model.Result{
				State:       model.StateSafe,
				Headline:    "URL AMAN",
				Description: safeDesc,
				Class:       "aman",
			},
		},
		{
			name:   "empty object renders safe",
			status: http.StatusOK,
			body:   `{}`,
			want: model.Result{
				State:       model.StateSafe,
				Headline:    "URL AMAN",
				Description: safeDesc,
				Class:       "aman",
			},
		},
		{
			name:   "backend error",
			status: http.StatusInternalServerError,
			body:   `{"error":"model unavailable"}`,
			want: model.Result{
				State:       model.StateError,
				Headline:    "Error",
				Description: "model unavailable",
				Class:       "phishing",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, calls, urls := backend(t, tt.status, tt.body)
			board := NewBoard()
			c := New(predictor.NewClient(srv.URL+"/predict", 0, nil), board)

			got, err := c.Submit(context.Background(), "  http://example.com  ")
			require.NoError(t, err)

			assert.Equal(t, tt.want, got)
			assert.EqualValues(t, 1, calls.Load())
			assert.Equal(t, []string{"http://example.com"}, *urls)

			view := board.Snapshot()
			assert.False(t, view.Busy)
			assert.True(t, view.ResultVisible)
			assert.Equal(t, tt.want, view.Result)
			assert.Empty(t, view.Alert)
			assert.Equal(t, tt.want.State, view.State())
		})
	}
}

func TestSubmit_EmptyInput(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t\n"} {
		srv, calls, _ := backend(t, http.StatusOK, `{}`)
		board := NewBoard()
		c := New(predictor.NewClient(srv.URL, 0, nil), board)

		_, err := c.Submit(context.Background(), raw)

		assert.ErrorIs(t, err, ErrEmptyURL)
		assert.Zero(t, calls.Load())
		assert.Equal(t, "Mohon masukkan URL terlebih dahulu!", board.TakeAlert())
		assert.Equal(t, model.StateIdle, board.Snapshot().State())
		assert.False(t, c.Busy())
	}
}

func TestSubmit_TransportFailureKeepsResult(t *testing.T) {
	srv, _, _ := backend(t, http.StatusOK, `{"result":"Phishing"}`)
	board := NewBoard()
	c := New(predictor.NewClient(srv.URL, 0, nil), board)

	_, err := c.Submit(context.Background(), "http://example.com")
	require.NoError(t, err)
	before := board.Snapshot().Result

	srv.Close()
	_, err = c.Submit(context.Background(), "http://example.com")

	require.ErrorIs(t, err, predictor.ErrTransport)
	view := board.Snapshot()
	assert.False(t, view.Busy, "trigger must be enabled again")
	assert.False(t, view.ResultVisible)
	assert.Equal(t, before, view.Result, "headline and description must not change")
	assert.Equal(t, "Terjadi kesalahan koneksi. Silakan coba lagi.", view.Alert)
	assert.False(t, c.Busy())
}

func TestSubmit_InvalidJSONIsTransportFailure(t *testing.T) {
	srv, _, _ := backend(t, http.StatusBadGateway, `<html>502</html>`)
	board := NewBoard()
	c := New(predictor.NewClient(srv.URL, 0, nil), board)

	_, err := c.Submit(context.Background(), "http://example.com")

	assert.ErrorIs(t, err, predictor.ErrTransport)
	assert.Equal(t, "Terjadi kesalahan koneksi. Silakan coba lagi.", board.TakeAlert())
	assert.Equal(t, model.StateIdle, board.Snapshot().State())
}

func TestSubmit_NoStaleErrorAfterSuccess(t *testing.T) {
	var body atomic.Value
	body.Store(`{"error":"model unavailable"}`)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, body.Load().(string))
	}))
	defer srv.Close()

	board := NewBoard()
	c := New(predictor.NewClient(srv.URL, 0, nil), board)

	first, err := c.Submit(context.Background(), "http://example.com")
	require.NoError(t, err)
	assert.Equal(t, model.StateError, first.State)

	body.Store(`{"result":"Safe"}`)
	second, err := c.Submit(context.Background(), "http://example.com")
	require.NoError(t, err)

	view := board.Snapshot()
	assert.Equal(t, second, view.Result)
	assert.Equal(t, safeDesc, view.Result.Description)
	assert.Equal(t, "aman", view.Result.Class)

	third, err := c.Submit(context.Background(), "http://example.com")
	require.NoError(t, err)
	assert.Equal(t, second, third)
}

func TestSubmit_InFlightGuard(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := mocks.NewMockPredictor(ctrl)

	entered := make(chan struct{})
	release := make(chan struct{})
	p.EXPECT().Predict(gomock.Any(), "http://example.com").DoAndReturn(
		func(ctx context.Context, url string) (*model.PredictResponse, error) {
			close(entered)
			<-release
			return &model.PredictResponse{Result: "Phishing"}, nil
		}).Times(1)

	board := NewBoard()
	c := New(p, board)

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background(), "http://example.com")
		done <- err
	}()

	<-entered
	assert.True(t, c.Busy())
	assert.Equal(t, model.StateLoading, board.Snapshot().State())

	_, err := c.Submit(context.Background(), "http://example.com")
	assert.ErrorIs(t, err, ErrInFlight)

	// Пустой ввод при отключённом триггере не даёт предупреждения.
	_, err = c.Submit(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrInFlight)
	assert.Empty(t, board.TakeAlert())

	close(release)
	require.NoError(t, <-done)
	assert.False(t, c.Busy())
	assert.Equal(t, model.StatePhishing, board.Snapshot().State())
}

func TestSubmit_DisplayCallOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := mocks.NewMockPredictor(ctrl)
	d := mocks.NewMockDisplay(ctrl)

	want := model.Result{
		State:       model.StatePhishing,
		Headline:    "PHISHING DETECTED!",
		Description: phishingDesc,
		Class:       "phishing",
	}

	gomock.InOrder(
		d.EXPECT().SetBusy(true),
		d.EXPECT().HideResult(),
		p.EXPECT().Predict(gomock.Any(), "http://example.com").Return(&model.PredictResponse{Result: "Phishing"}, nil),
		d.EXPECT().SetBusy(false),
		d.EXPECT().ShowResult(want),
	)

	_, err := New(p, d).Submit(context.Background(), "http://example.com")
	require.NoError(t, err)
}

func TestSubmit_FailureCallOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := mocks.NewMockPredictor(ctrl)
	d := mocks.NewMockDisplay(ctrl)

	gomock.InOrder(
		d.EXPECT().SetBusy(true),
		d.EXPECT().HideResult(),
		p.EXPECT().Predict(gomock.Any(), gomock.Any()).Return(nil, predictor.ErrTransport),
		d.EXPECT().SetBusy(false),
		d.EXPECT().Alert("Terjadi kesalahan koneksi. Silakan coba lagi."),
	)
	d.EXPECT().ShowResult(gomock.Any()).Times(0)

	_, err := New(p, d).Submit(context.Background(), "http://example.com")
	assert.ErrorIs(t, err, predictor.ErrTransport)
}

func TestSubmit_RecordsJournal(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := mocks.NewMockPredictor(ctrl)
	rec := mocks.NewMockRecorder(ctrl)

	p.EXPECT().Predict(gomock.Any(), "http://example.com").Return(&model.PredictResponse{Error: "boom"}, nil)
	rec.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e model.Entry) error {
		assert.NotEmpty(t, e.ID)
		assert.Equal(t, "http://example.com", e.URL)
		assert.Equal(t, model.StateError, e.State)
		assert.Equal(t, "boom", e.Detail)
		assert.False(t, e.CreatedAt.IsZero())
		return nil
	})

	_, err := New(p, NewBoard(), WithRecorder(rec)).Submit(context.Background(), "http://example.com")
	require.NoError(t, err)
}

func TestSubmit_JournalErrorIsNotSurfaced(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := mocks.NewMockPredictor(ctrl)
	rec := mocks.NewMockRecorder(ctrl)

	p.EXPECT().Predict(gomock.Any(), gomock.Any()).Return(&model.PredictResponse{Result: "Aman"}, nil)
	rec.EXPECT().Record(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	got, err := New(p, NewBoard(), WithRecorder(rec)).Submit(context.Background(), "http://example.com")
	require.NoError(t, err)
	assert.Equal(t, model.StateSafe, got.State)
}

func TestSubmit_EnglishTexts(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := mocks.NewMockPredictor(ctrl)
	p.EXPECT().Predict(gomock.Any(), gomock.Any()).Return(&model.PredictResponse{Result: "Safe"}, nil)

	board := NewBoard()
	got, err := New(p, board, WithTexts(locale.New(language.English))).Submit(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, "SAFE URL", got.Headline)

	_, err = New(p, board, WithTexts(locale.New(language.English))).Submit(context.Background(), " ")
	assert.ErrorIs(t, err, ErrEmptyURL)
	assert.Equal(t, "Please enter a URL first!", board.TakeAlert())
}

func TestSubmit_NonObjectBodyRendersSafe(t *testing.T) {
	for _, body := range []string{`[]`, `"Phishing"`, `42`} {
		srv, _, _ := backend(t, http.StatusOK, body)
		board := NewBoard()
		c := New(predictor.NewClient(srv.URL, 0, nil), board)

		res, err := c.Submit(context.Background(), "http://example.com")
		require.NoError(t, err, body)

		assert.Equal(t, model.StateSafe, res.State, body)
		assert.Equal(t, "URL AMAN", res.Headline, body)
		assert.Empty(t, board.TakeAlert(), body)
	}
}
