package editor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/lobo-bot/lobo/pkg/entities"
	"github.com/lobo-bot/lobo/pkg/logging"
	"github.com/lobo-bot/lobo/pkg/normalize"
)

// ErrDeleteCancelled is returned when the user declines the delete
// confirmation.
var ErrDeleteCancelled = errors.New("delete cancelled")

// numericID matches an external platform snowflake ID.
var numericID = regexp.MustCompile(`^\d+$`)

// Notifier surfaces a message to the user.
type Notifier func(message string)

// Store owns the cached guild configuration document and the selected
// panel index, and mediates every create/update/delete/deploy operation
// through the Transport. The cached document is the single source of
// truth between saves; a successful save replaces it with the document
// that was sent, never with a partial server echo.
type Store struct {
	// l is the logger.
	l *slog.Logger

	// transport sends requests to the dashboard API.
	transport *Transport

	// guildID is the guild the document belongs to.
	guildID string

	// form is the panel editor form.
	form Form

	// notify surfaces messages to the user.
	notify Notifier

	// cfg is the cached configuration document.
	cfg *entities.GuildConfig

	// selected is the selected panel index.
	selected int
}

// NewStore creates a new Store. The notifier may be nil.
func NewStore(l *slog.Logger, transport *Transport, guildID string, form Form, notify Notifier) *Store {
	if notify == nil {
		notify = func(string) {}
	}
	return &Store{
		l:         l.With(slog.String(logging.KeyGuild, guildID)),
		transport: transport,
		guildID:   guildID,
		form:      form,
		notify:    notify,
		cfg:       new(entities.GuildConfig),
	}
}

// Init parses the initial document embedded in the page markup. An empty
// or invalid payload falls back to an empty document rather than failing;
// the result is normalized and the first panel rendered.
func (s *Store) Init(raw []byte) {
	cfg := new(entities.GuildConfig)
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, cfg); err != nil {
			s.l.Error("Error parsing embedded config, starting empty", slog.String(logging.KeyError, err.Error()))
			cfg = new(entities.GuildConfig)
		}
	}
	if cfg.ID == "" {
		cfg.ID = s.guildID
	}
	normalize.Config(cfg)

	s.cfg = cfg
	s.Select(0)
}

// Config returns the cached configuration document.
func (s *Store) Config() *entities.GuildConfig {
	return s.cfg
}

// SelectedIndex returns the selected panel index.
func (s *Store) SelectedIndex() int {
	return s.selected
}

// Select renders the panel at index into the form. An out of range index
// falls back to index 0, and an empty sequence renders a freshly
// normalized empty panel. Switching panels never saves the panel being
// left.
func (s *Store) Select(index int) {
	panels := s.cfg.Ticket.Panels
	if len(panels) == 0 {
		s.selected = 0
		RenderPanel(s.form, normalize.Panel(entities.Panel{}))
		return
	}
	if index < 0 || index >= len(panels) {
		index = 0
	}
	s.selected = index
	RenderPanel(s.form, panels[index])
}

// Save collects the panel at index from the form, normalizes it, splices
// it into the document and sends the entire document to the save
// endpoint. On success the cache is replaced with the document just sent.
// A blank rules body is replaced with the default body here, at save
// time; the normalizer never touches it.
//
// Concurrent saves are not coalesced or locked here. The autosave
// scheduler is the only mechanism limiting call frequency; two direct
// calls in quick succession are two in-flight requests and the last
// response to arrive wins.
func (s *Store) Save(ctx context.Context, index int) error {
	if index < 0 || index >= len(s.cfg.Ticket.Panels) {
		return NewValidationError("no panel at index %d", index)
	}

	p := CollectPanel(s.form, s.cfg.Ticket.Panels[index])
	if strings.TrimSpace(p.Rules.Body) == "" {
		p.Rules.Body = entities.DefaultRulesBody
	}

	doc := cloneConfig(s.cfg)
	doc.Ticket.Panels[index] = p

	if _, err := s.transport.Send(ctx, s.endpoint("save_config"), doc); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	s.cfg = doc
	s.notify("Saved")
	return nil
}

// Deploy saves the panel at index and then publishes its intake message
// to the configured deploy channel, so a deploy always reflects the just
// edited state. The channel ID is validated locally before any deploy
// network call. On success the returned message ID is stored so the next
// deploy updates the same message in place.
func (s *Store) Deploy(ctx context.Context, index int) error {
	if err := s.Save(ctx, index); err != nil {
		return err
	}

	channelID := s.cfg.Ticket.Panels[index].Deploy.ChannelID
	if !numericID.MatchString(channelID) {
		return NewValidationError("deploy channel is not set")
	}

	resp, err := s.transport.Send(ctx, s.endpoint("ticket/panel/deploy"), map[string]any{
		"panel_index": index,
		"channel_id":  channelID,
	})
	if err != nil {
		return fmt.Errorf("deploying panel: %w", err)
	}

	if messageID, ok := resp["message_id"].(string); ok && messageID != "" {
		s.cfg.Ticket.Panels[index].Deploy.MessageID = messageID
	}

	s.notify("Panel deployed")
	return nil
}

// Create asks the server to allocate a new panel with the desired name.
// The server is the sole authority for index assignment; the client
// mirrors the allocation at the returned index and navigates to it.
func (s *Store) Create(ctx context.Context, name string) (int, error) {
	resp, err := s.transport.Send(ctx, s.endpoint("ticket/panel/create"), map[string]any{
		"panel_name": name,
	})
	if err != nil {
		return 0, fmt.Errorf("creating panel: %w", err)
	}

	idx, ok := resp["index"].(float64)
	if !ok {
		return 0, &TransportError{Msg: "create response is missing the panel index"}
	}
	index := int(idx)

	p := normalize.Panel(entities.Panel{PanelName: name})
	if index >= len(s.cfg.Ticket.Panels) {
		s.cfg.Ticket.Panels = append(s.cfg.Ticket.Panels, p)
		index = len(s.cfg.Ticket.Panels) - 1
	} else {
		s.cfg.Ticket.Panels = append(s.cfg.Ticket.Panels[:index+1], s.cfg.Ticket.Panels[index:]...)
		s.cfg.Ticket.Panels[index] = p
	}

	s.Select(index)
	s.notify("Panel created")
	return index, nil
}

// Delete removes the panel at index. It is destructive (the deployed
// intake message is removed with the record), so confirm is consulted
// first; ErrDeleteCancelled is returned if the user declines. On success
// the selection falls back to index 0 rather than chasing the shifted
// sequence.
func (s *Store) Delete(ctx context.Context, index int, confirm func() bool) error {
	if index < 0 || index >= len(s.cfg.Ticket.Panels) {
		return NewValidationError("no panel at index %d", index)
	}
	if confirm == nil || !confirm() {
		return ErrDeleteCancelled
	}

	if _, err := s.transport.Send(ctx, s.endpoint("ticket/panel/delete"), map[string]any{
		"panel_index": index,
	}); err != nil {
		return fmt.Errorf("deleting panel: %w", err)
	}

	s.cfg.Ticket.Panels = append(s.cfg.Ticket.Panels[:index], s.cfg.Ticket.Panels[index+1:]...)
	s.Select(0)
	s.notify("Panel deleted")
	return nil
}

// SaveJoinLeave merges the join/leave configuration into the document and
// sends the entire document. On success the cache is replaced with the
// document just sent.
func (s *Store) SaveJoinLeave(ctx context.Context, jl entities.JoinLeaveConfig) error {
	doc := cloneConfig(s.cfg)
	doc.JoinLeave = jl

	if _, err := s.transport.Send(ctx, s.endpoint("save_config"), doc); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	s.cfg = doc
	return nil
}

// SaveRank merges the ranking configuration into the document and sends
// the entire document. On success the cache is replaced with the document
// just sent.
func (s *Store) SaveRank(ctx context.Context, rank entities.RankConfig) error {
	doc := cloneConfig(s.cfg)
	doc.Rank = rank

	if _, err := s.transport.Send(ctx, s.endpoint("save_config"), doc); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	s.cfg = doc
	return nil
}

// DeployLeaderboard saves the ranking configuration and then publishes
// the leaderboard message to its configured channel. The channel ID is
// validated locally before any deploy network call.
func (s *Store) DeployLeaderboard(ctx context.Context, rank entities.RankConfig) error {
	if err := s.SaveRank(ctx, rank); err != nil {
		return err
	}

	channelID := strings.TrimSpace(s.cfg.Rank.Leaderboard.ChannelID)
	if !numericID.MatchString(channelID) {
		return NewValidationError("leaderboard channel is not set")
	}

	if _, err := s.transport.Send(ctx, s.endpoint("rank/deploy"), map[string]any{
		"channel_id": channelID,
	}); err != nil {
		return fmt.Errorf("deploying leaderboard: %w", err)
	}

	s.notify("Leaderboard deployed")
	return nil
}

func (s *Store) endpoint(name string) string {
	return fmt.Sprintf("guild/%s/api/%s", s.guildID, name)
}

// cloneConfig returns a deep copy of the document via a JSON round trip,
// which is also the shape the document travels over the wire in.
func cloneConfig(cfg *entities.GuildConfig) *entities.GuildConfig {
	buf, err := json.Marshal(cfg)
	if err != nil {
		c := *cfg
		return &c
	}
	out := new(entities.GuildConfig)
	if err := json.Unmarshal(buf, out); err != nil {
		c := *cfg
		return &c
	}
	return out
}
