package editor

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lobo-bot/lobo/pkg/entities"
)

type requestLog struct {
	mu     sync.Mutex
	paths  []string
	bodies []map[string]any
}

func (l *requestLog) add(path string, body map[string]any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.paths = append(l.paths, path)
	l.bodies = append(l.bodies, body)
}

func (l *requestLog) Paths() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string{}, l.paths...)
}

func (l *requestLog) Body(i int) map[string]any {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.bodies[i]
}

// BodyAsConfig re-decodes a recorded request body as a configuration
// document.
func (l *requestLog) BodyAsConfig(t *testing.T, i int) *entities.GuildConfig {
	t.Helper()
	buf, err := json.Marshal(l.Body(i))
	require.NoError(t, err)
	cfg := new(entities.GuildConfig)
	require.NoError(t, json.Unmarshal(buf, cfg))
	return cfg
}

// newStoreTest wires a Store against a recording test server. respond may
// override the status and body per request path; the default is 200 {}.
func newStoreTest(t *testing.T, respond func(path string) (int, any)) (*Store, *MemForm, *requestLog) {
	t.Helper()

	log := new(requestLog)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := make(map[string]any)
		_ = json.NewDecoder(r.Body).Decode(&body)
		log.add(r.URL.Path, body)

		status, resp := http.StatusOK, any(map[string]any{})
		if respond != nil {
			status, resp = respond(r.URL.Path)
		}
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)

	form := NewMemForm(AllControls()...)
	store := NewStore(slog.Default(), NewTransport(slog.Default(), srv.URL), "g1", form, nil)
	return store, form, log
}

func testDoc(t *testing.T) []byte {
	t.Helper()
	buf, err := json.Marshal(map[string]any{
		"id":   "g1",
		"lang": "en",
		"ticket": map[string]any{
			"panels": []map[string]any{
				{"panel_name": "alpha"},
				{"panel_name": "beta", "deploy": map[string]any{"channel_id": "300"}},
			},
		},
	})
	require.NoError(t, err)
	return buf
}

func TestStoreInit(t *testing.T) {
	t.Parallel()

	t.Run("InvalidDocumentStartsEmpty", func(t *testing.T) {
		t.Parallel()

		store, form, _ := newStoreTest(t, nil)
		store.Init([]byte("{not json"))

		cfg := store.Config()
		require.Equal(t, "g1", cfg.ID)
		require.NotNil(t, cfg.Ticket.Panels)
		require.Empty(t, cfg.Ticket.Panels)
		require.Equal(t, 0, store.SelectedIndex())

		// The form still shows a fully defaulted panel.
		name, ok := form.String(CtlPanelName)
		require.True(t, ok)
		require.Equal(t, entities.DefaultPanelName, name)
	})

	t.Run("RendersFirstPanel", func(t *testing.T) {
		t.Parallel()

		store, form, _ := newStoreTest(t, nil)
		store.Init(testDoc(t))

		require.Len(t, store.Config().Ticket.Panels, 2)
		name, ok := form.String(CtlPanelName)
		require.True(t, ok)
		require.Equal(t, "alpha", name)

		// Loading never fills the rules body.
		body, ok := form.String(CtlRulesBody)
		require.True(t, ok)
		require.Empty(t, body)
	})
}

func TestStoreSelect(t *testing.T) {
	t.Parallel()

	store, form, log := newStoreTest(t, nil)
	store.Init(testDoc(t))

	store.Select(1)
	require.Equal(t, 1, store.SelectedIndex())
	name, _ := form.String(CtlPanelName)
	require.Equal(t, "beta", name)

	// Out of range falls back to the first panel.
	store.Select(7)
	require.Equal(t, 0, store.SelectedIndex())
	name, _ = form.String(CtlPanelName)
	require.Equal(t, "alpha", name)

	// Selection is pure navigation, no requests.
	require.Empty(t, log.Paths())
}

func TestStoreSave(t *testing.T) {
	t.Parallel()

	t.Run("SendsWholeDocumentAndReplacesCache", func(t *testing.T) {
		t.Parallel()

		// The server echoes a shape the client must not adopt.
		store, form, log := newStoreTest(t, func(string) (int, any) {
			return http.StatusOK, map[string]any{"status": "ok", "panels": "garbage"}
		})
		store.Init(testDoc(t))

		store.Select(1)
		form.SetString(CtlPanelName, "billing")
		require.NoError(t, store.Save(context.Background(), 1))

		require.Equal(t, []string{"/guild/g1/api/save_config"}, log.Paths())

		sent := log.BodyAsConfig(t, 0)
		require.Len(t, sent.Ticket.Panels, 2)
		require.Equal(t, "alpha", sent.Ticket.Panels[0].PanelName)
		require.Equal(t, "billing", sent.Ticket.Panels[1].PanelName)
		require.Equal(t, "en", sent.Lang)

		// The cache is the document just sent, not the server echo.
		require.Equal(t, "billing", store.Config().Ticket.Panels[1].PanelName)
	})

	t.Run("FailureKeepsPreviousCache", func(t *testing.T) {
		t.Parallel()

		store, form, _ := newStoreTest(t, func(string) (int, any) {
			return http.StatusInternalServerError, map[string]any{"error": "db down"}
		})
		store.Init(testDoc(t))

		form.SetString(CtlPanelName, "renamed")
		err := store.Save(context.Background(), 0)
		require.Error(t, err)

		terr := new(TransportError)
		require.ErrorAs(t, err, &terr)
		require.Equal(t, "db down", terr.Msg)
		require.Equal(t, "alpha", store.Config().Ticket.Panels[0].PanelName)
	})

	t.Run("BlankRulesBodyRefilledAtSave", func(t *testing.T) {
		t.Parallel()

		store, form, log := newStoreTest(t, nil)
		store.Init(testDoc(t))

		form.SetString(CtlRulesBody, "   ")
		require.NoError(t, store.Save(context.Background(), 0))

		sent := log.BodyAsConfig(t, 0)
		require.Equal(t, entities.DefaultRulesBody, sent.Ticket.Panels[0].Rules.Body)
		require.Equal(t, entities.DefaultRulesBody, store.Config().Ticket.Panels[0].Rules.Body)
	})

	t.Run("IndexOutOfRange", func(t *testing.T) {
		t.Parallel()

		store, _, log := newStoreTest(t, nil)
		store.Init(testDoc(t))

		err := store.Save(context.Background(), 5)
		verr := new(ValidationError)
		require.ErrorAs(t, err, &verr)
		require.Empty(t, log.Paths())
	})
}

func TestStoreDeploy(t *testing.T) {
	t.Parallel()

	t.Run("SavesThenDeploysAndStoresMessageID", func(t *testing.T) {
		t.Parallel()

		store, _, log := newStoreTest(t, func(path string) (int, any) {
			if path == "/guild/g1/api/ticket/panel/deploy" {
				return http.StatusOK, map[string]any{"message_id": "901"}
			}
			return http.StatusOK, map[string]any{}
		})
		store.Init(testDoc(t))
		store.Select(1)

		require.NoError(t, store.Deploy(context.Background(), 1))

		require.Equal(t, []string{
			"/guild/g1/api/save_config",
			"/guild/g1/api/ticket/panel/deploy",
		}, log.Paths())
		require.Equal(t, map[string]any{
			"panel_index": float64(1),
			"channel_id":  "300",
		}, log.Body(1))

		require.Equal(t, "901", store.Config().Ticket.Panels[1].Deploy.MessageID)
	})

	t.Run("NonNumericChannelAbortsBeforeDeploy", func(t *testing.T) {
		t.Parallel()

		store, form, log := newStoreTest(t, nil)
		store.Init(testDoc(t))
		form.SetString(CtlDeployChannel, "general")

		err := store.Deploy(context.Background(), 0)
		verr := new(ValidationError)
		require.ErrorAs(t, err, &verr)

		// The save still happened; only the deploy call was withheld.
		require.Equal(t, []string{"/guild/g1/api/save_config"}, log.Paths())
		require.Empty(t, store.Config().Ticket.Panels[0].Deploy.MessageID)
	})
}

func TestStoreCreate(t *testing.T) {
	t.Parallel()

	store, form, log := newStoreTest(t, func(path string) (int, any) {
		if path == "/guild/g1/api/ticket/panel/create" {
			return http.StatusOK, map[string]any{"index": float64(2)}
		}
		return http.StatusOK, map[string]any{}
	})
	store.Init(testDoc(t))

	index, err := store.Create(context.Background(), "appeals")
	require.NoError(t, err)
	require.Equal(t, 2, index)

	require.Equal(t, []string{"/guild/g1/api/ticket/panel/create"}, log.Paths())
	require.Equal(t, map[string]any{"panel_name": "appeals"}, log.Body(0))

	// The new panel lives at the server assigned index, fully defaulted,
	// and is the selection now.
	panels := store.Config().Ticket.Panels
	require.Len(t, panels, 3)
	require.Equal(t, "appeals", panels[2].PanelName)
	require.NotNil(t, panels[2].Enabled)
	require.True(t, *panels[2].Enabled)
	require.Equal(t, 2, store.SelectedIndex())

	name, _ := form.String(CtlPanelName)
	require.Equal(t, "appeals", name)
}

func TestStoreCreateMissingIndex(t *testing.T) {
	t.Parallel()

	store, _, _ := newStoreTest(t, func(string) (int, any) {
		return http.StatusOK, map[string]any{"status": "ok"}
	})
	store.Init(testDoc(t))

	_, err := store.Create(context.Background(), "appeals")
	terr := new(TransportError)
	require.ErrorAs(t, err, &terr)
	require.Len(t, store.Config().Ticket.Panels, 2)
}

func TestStoreDelete(t *testing.T) {
	t.Parallel()

	t.Run("DeclinedConfirmation", func(t *testing.T) {
		t.Parallel()

		store, _, log := newStoreTest(t, nil)
		store.Init(testDoc(t))

		err := store.Delete(context.Background(), 1, func() bool { return false })
		require.ErrorIs(t, err, ErrDeleteCancelled)
		require.Empty(t, log.Paths())
		require.Len(t, store.Config().Ticket.Panels, 2)
	})

	t.Run("RemovesAndResetsSelection", func(t *testing.T) {
		t.Parallel()

		store, form, log := newStoreTest(t, nil)
		store.Init(testDoc(t))
		store.Select(1)

		require.NoError(t, store.Delete(context.Background(), 1, func() bool { return true }))

		require.Equal(t, []string{"/guild/g1/api/ticket/panel/delete"}, log.Paths())
		require.Equal(t, map[string]any{"panel_index": float64(1)}, log.Body(0))

		require.Len(t, store.Config().Ticket.Panels, 1)
		require.Equal(t, 0, store.SelectedIndex())
		name, _ := form.String(CtlPanelName)
		require.Equal(t, "alpha", name)
	})
}

func TestStoreGroupSaves(t *testing.T) {
	t.Parallel()

	store, _, log := newStoreTest(t, nil)
	store.Init(testDoc(t))

	jl := entities.JoinLeaveConfig{
		Enabled:  true,
		Channels: entities.JoinLeaveChannels{Join: "10", Leave: "11"},
	}
	require.NoError(t, store.SaveJoinLeave(context.Background(), jl))

	sent := log.BodyAsConfig(t, 0)
	require.Equal(t, jl, sent.JoinLeave)

	// The whole document travels, panels included.
	require.Len(t, sent.Ticket.Panels, 2)
	require.Equal(t, jl, store.Config().JoinLeave)
}

func TestStoreDeployLeaderboard(t *testing.T) {
	t.Parallel()

	t.Run("SavesThenDeploys", func(t *testing.T) {
		t.Parallel()

		store, _, log := newStoreTest(t, nil)
		store.Init(testDoc(t))

		rank := entities.RankConfig{
			Enabled:     true,
			Leaderboard: entities.LeaderboardConfig{Enabled: true, ChannelID: "42"},
		}
		require.NoError(t, store.DeployLeaderboard(context.Background(), rank))

		require.Equal(t, []string{
			"/guild/g1/api/save_config",
			"/guild/g1/api/rank/deploy",
		}, log.Paths())
		require.Equal(t, map[string]any{"channel_id": "42"}, log.Body(1))
	})

	t.Run("NonNumericChannelAbortsBeforeDeploy", func(t *testing.T) {
		t.Parallel()

		store, _, log := newStoreTest(t, nil)
		store.Init(testDoc(t))

		rank := entities.RankConfig{Leaderboard: entities.LeaderboardConfig{ChannelID: ""}}
		err := store.DeployLeaderboard(context.Background(), rank)
		verr := new(ValidationError)
		require.ErrorAs(t, err, &verr)

		require.Equal(t, []string{"/guild/g1/api/save_config"}, log.Paths())
	})
}
