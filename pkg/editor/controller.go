package editor

import (
	"context"
	"errors"
	"log/slog"

	"github.com/lobo-bot/lobo/pkg/entities"
	"github.com/lobo-bot/lobo/pkg/logging"
)

// Autosave groups. Edits within a group coalesce; edits across groups
// save independently.
const (
	GroupPanel     = "panel"
	GroupJoinLeave = "jl"
	GroupRank      = "rank"
)

// Editor page tabs.
const (
	TabTicket    = "ticket"
	TabJoinLeave = "jl"
	TabRank      = "rank"
)

// Controller drives the editor page: it owns the active tab, routes edit
// events into the autosave scheduler and forwards explicit actions to the
// store. Scheduled saves run on timer goroutines; their failures are
// logged and surfaced through the notifier rather than returned.
type Controller struct {
	// l is the logger.
	l *slog.Logger

	// store holds the document and selection.
	store *Store

	// sched debounces saves per group.
	sched *Scheduler

	// notify surfaces messages to the user.
	notify Notifier

	// tab is the active tab.
	tab string
}

// NewController creates a new Controller. The notifier may be nil.
func NewController(l *slog.Logger, store *Store, sched *Scheduler, notify Notifier) *Controller {
	if notify == nil {
		notify = func(string) {}
	}
	return &Controller{
		l:      l,
		store:  store,
		sched:  sched,
		notify: notify,
		tab:    TabTicket,
	}
}

// Init loads the embedded document and renders the first panel.
func (c *Controller) Init(raw []byte) {
	c.store.Init(raw)
}

// Store returns the underlying store.
func (c *Controller) Store() *Store {
	return c.store
}

// ActiveTab returns the active tab.
func (c *Controller) ActiveTab() string {
	return c.tab
}

// SwitchTab changes the active tab. Switching is pure navigation and
// never saves; anything already scheduled still fires.
func (c *Controller) SwitchTab(tab string) {
	c.tab = tab
}

// SelectPanel navigates to another panel. Navigation never saves the
// panel being left, so any pending panel autosave is dropped first; it
// would otherwise fire against the newly rendered form state.
func (c *Controller) SelectPanel(index int) {
	c.sched.Cancel(GroupPanel)
	c.store.Select(index)
}

// PanelEdited records an edit to the selected panel and schedules a
// debounced save for it. The index is captured now so a later selection
// change cannot redirect the save.
func (c *Controller) PanelEdited() {
	index := c.store.SelectedIndex()
	c.sched.Schedule(GroupPanel, func() {
		if err := c.store.Save(context.Background(), index); err != nil {
			c.saveFailed(GroupPanel, err)
		}
	})
}

// JoinLeaveEdited records an edit to the join/leave settings and
// schedules a debounced save carrying the given state. Rescheduling
// replaces the pending state, so the last edit before quiescence wins.
func (c *Controller) JoinLeaveEdited(jl entities.JoinLeaveConfig) {
	c.sched.Schedule(GroupJoinLeave, func() {
		if err := c.store.SaveJoinLeave(context.Background(), jl); err != nil {
			c.saveFailed(GroupJoinLeave, err)
		}
	})
}

// RankEdited records an edit to the ranking settings and schedules a
// debounced save carrying the given state.
func (c *Controller) RankEdited(rank entities.RankConfig) {
	c.sched.Schedule(GroupRank, func() {
		if err := c.store.SaveRank(context.Background(), rank); err != nil {
			c.saveFailed(GroupRank, err)
		}
	})
}

// DeployPanel saves and deploys the selected panel. The pending panel
// autosave is dropped first; deploy performs its own save.
func (c *Controller) DeployPanel(ctx context.Context) error {
	c.sched.Cancel(GroupPanel)
	return c.store.Deploy(ctx, c.store.SelectedIndex())
}

// CreatePanel creates a new panel and navigates to it.
func (c *Controller) CreatePanel(ctx context.Context, name string) (int, error) {
	c.sched.Cancel(GroupPanel)
	return c.store.Create(ctx, name)
}

// DeletePanel deletes the selected panel after confirmation. A declined
// confirmation is not an error worth surfacing.
func (c *Controller) DeletePanel(ctx context.Context, confirm func() bool) error {
	c.sched.Cancel(GroupPanel)
	err := c.store.Delete(ctx, c.store.SelectedIndex(), confirm)
	if errors.Is(err, ErrDeleteCancelled) {
		return nil
	}
	return err
}

// DeployLeaderboard saves the ranking settings and deploys the
// leaderboard message.
func (c *Controller) DeployLeaderboard(ctx context.Context, rank entities.RankConfig) error {
	c.sched.Cancel(GroupRank)
	return c.store.DeployLeaderboard(ctx, rank)
}

// Close drops every pending autosave.
func (c *Controller) Close() {
	c.sched.Stop()
}

func (c *Controller) saveFailed(group string, err error) {
	c.l.Error("Autosave failed",
		slog.String("group", group),
		slog.String(logging.KeyError, err.Error()),
	)
	c.notify("Save failed: " + err.Error())
}
