package clients

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

func TestPost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"amount":"18.00"}`, string(body))
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("queued"))
	}))
	defer srv.Close()

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")

	status, body, err := NewHTTPClient().Post(context.Background(), srv.URL, headers, []byte(`{"amount":"18.00"}`))

	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, status)
	assert.Equal(t, "queued", string(body))
}

func TestPostCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewHTTPClient().Post(ctx, srv.URL, nil, nil)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestSetClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := NewMockHTTPClientI(ctrl)
	client := NewHTTPClient()
	client.SetClient(mock)

	mock.EXPECT().Post(gomock.Any(), "http://bank", gomock.Any(), []byte("x")).Return(http.StatusOK, []byte("ok"), nil)

	status, body, err := client.Post(context.Background(), "http://bank", nil, []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []byte("ok"), body)
}
