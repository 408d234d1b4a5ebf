package editor

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lobo-bot/lobo/pkg/entities"
)

func newControllerTest(t *testing.T) (*Controller, *MemForm, *requestLog) {
	t.Helper()

	store, form, log := newStoreTest(t, nil)
	c := NewController(slog.Default(), store, NewScheduler(20*time.Millisecond), nil)
	t.Cleanup(c.Close)
	c.Init(testDoc(t))
	return c, form, log
}

func waitForRequests(t *testing.T, log *requestLog, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(log.Paths()) >= n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d requests, got %v", n, log.Paths())
}

func TestControllerPanelAutosave(t *testing.T) {
	t.Parallel()

	c, form, log := newControllerTest(t)

	// A burst of edits becomes one save carrying the final form state.
	form.SetString(CtlPanelName, "a")
	c.PanelEdited()
	form.SetString(CtlPanelName, "ab")
	c.PanelEdited()
	form.SetString(CtlPanelName, "abc")
	c.PanelEdited()

	waitForRequests(t, log, 1)
	time.Sleep(100 * time.Millisecond)

	require.Equal(t, []string{"/guild/g1/api/save_config"}, log.Paths())
	sent := log.BodyAsConfig(t, 0)
	require.Equal(t, "abc", sent.Ticket.Panels[0].PanelName)
}

func TestControllerSelectDropsPendingSave(t *testing.T) {
	t.Parallel()

	c, form, log := newControllerTest(t)

	form.SetString(CtlPanelName, "edited")
	c.PanelEdited()
	c.SelectPanel(1)

	// Navigation cancelled the pending save; nothing reaches the server
	// and the form now shows the other panel.
	time.Sleep(100 * time.Millisecond)
	require.Empty(t, log.Paths())
	name, _ := form.String(CtlPanelName)
	require.Equal(t, "beta", name)
}

func TestControllerGroupEdits(t *testing.T) {
	t.Parallel()

	c, _, log := newControllerTest(t)

	c.JoinLeaveEdited(entities.JoinLeaveConfig{Enabled: true})
	c.JoinLeaveEdited(entities.JoinLeaveConfig{
		Enabled:  true,
		Channels: entities.JoinLeaveChannels{Join: "10"},
	})

	waitForRequests(t, log, 1)
	time.Sleep(100 * time.Millisecond)

	require.Equal(t, []string{"/guild/g1/api/save_config"}, log.Paths())
	sent := log.BodyAsConfig(t, 0)
	require.True(t, sent.JoinLeave.Enabled)
	require.Equal(t, "10", sent.JoinLeave.Channels.Join)
}

func TestControllerTabs(t *testing.T) {
	t.Parallel()

	c, _, log := newControllerTest(t)
	require.Equal(t, TabTicket, c.ActiveTab())

	c.SwitchTab(TabRank)
	require.Equal(t, TabRank, c.ActiveTab())
	require.Empty(t, log.Paths())
}

func TestControllerDeleteDeclinedIsNotAnError(t *testing.T) {
	t.Parallel()

	c, _, log := newControllerTest(t)

	require.NoError(t, c.DeletePanel(context.Background(), func() bool { return false }))
	require.Empty(t, log.Paths())
	require.Len(t, c.Store().Config().Ticket.Panels, 2)
}

func TestControllerCloseDropsPending(t *testing.T) {
	t.Parallel()

	c, _, log := newControllerTest(t)

	c.PanelEdited()
	c.Close()

	time.Sleep(100 * time.Millisecond)
	require.Empty(t, log.Paths())
}
