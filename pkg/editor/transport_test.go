package editor

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransportSend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantErr    string
		wantStatus int
		want       map[string]any
	}{
		{
			name: "ParsesJsonObject",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
			},
			want: map[string]any{"ok": true},
		},
		{
			name:    "EmptyBodyIsEmptyObject",
			handler: func(w http.ResponseWriter, _ *http.Request) {},
			want:    map[string]any{},
		},
		{
			name: "NonJsonBodyIsWrapped",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("<html>oops</html>"))
			},
			want: map[string]any{"raw": "<html>oops</html>"},
		},
		{
			name: "ErrorFieldPreferred",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"error":   "panel index out of range",
					"message": "ignored",
				})
			},
			wantErr:    "panel index out of range",
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "MessageFieldFallback",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusForbidden)
				_ = json.NewEncoder(w).Encode(map[string]any{"message": "not your guild"})
			},
			wantErr:    "not your guild",
			wantStatus: http.StatusForbidden,
		},
		{
			name: "StatusLineFallback",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr:    "500 Internal Server Error",
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(test.handler)
			t.Cleanup(srv.Close)

			tr := NewTransport(slog.Default(), srv.URL)
			got, err := tr.Send(context.Background(), "guild/1/api/save_config", nil)

			if test.wantErr != "" {
				require.Error(t, err)
				terr := new(TransportError)
				require.ErrorAs(t, err, &terr)
				require.Equal(t, test.wantStatus, terr.Status)
				require.Equal(t, test.wantErr, terr.Msg)
				return
			}

			require.NoError(t, err)
			require.Equal(t, test.want, got)
		})
	}
}

func TestTransportSendBody(t *testing.T) {
	t.Parallel()

	var gotPath, gotContentType string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
	}))
	t.Cleanup(srv.Close)

	tr := NewTransport(slog.Default(), srv.URL+"/")
	_, err := tr.Send(context.Background(), "guild/1/api/ticket/panel/create", map[string]any{
		"panel_name": "support",
	})
	require.NoError(t, err)

	require.Equal(t, "/guild/1/api/ticket/panel/create", gotPath)
	require.Equal(t, "application/json", gotContentType)
	require.Equal(t, map[string]any{"panel_name": "support"}, gotBody)
}

func TestTransportSendNilBody(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
	}))
	t.Cleanup(srv.Close)

	tr := NewTransport(slog.Default(), srv.URL)
	_, err := tr.Send(context.Background(), "guild/1/api/rank/deploy", nil)
	require.NoError(t, err)

	// A nil body still sends an empty JSON object, never an empty request.
	require.Equal(t, map[string]any{}, gotBody)
}
