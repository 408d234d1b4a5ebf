package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lobo-bot/lobo/cmd/dashboard/monitoring"
	"github.com/lobo-bot/lobo/pkg/entities"
	"github.com/lobo-bot/lobo/pkg/logging"
	"github.com/lobo-bot/lobo/pkg/normalize"
)

// snowflakeID matches a platform snowflake ID. Channel IDs arriving from
// the editor are validated against it before any API call is made.
var snowflakeID = regexp.MustCompile(`^\d+$`)

const apiTimeout = 10 * time.Second

func writeJSON(a IApp, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.Log().Error("Error encoding response", slog.String(logging.KeyError, err.Error()))
	}
}

// writeError responds with the shape the editor extracts failure messages
// from.
func writeError(a IApp, w http.ResponseWriter, status int, msg string) {
	writeJSON(a, w, status, map[string]string{"error": msg})
}

// loadGuildConfig loads a guild's configuration document, returning a
// fresh normalized document when none is stored yet.
func loadGuildConfig(a IApp, ctx context.Context, guildID string) (*entities.GuildConfig, error) {
	cfg, err := a.GuildDal().GetConfigByID(ctx, guildID)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		cfg = &entities.GuildConfig{ID: guildID}
	}
	normalize.Config(cfg)
	return cfg, nil
}

// saveConfigHandler stores the whole configuration document. The editor
// never sends partial patches; what arrives replaces what is stored.
func saveConfigHandler(a IApp) Controller {
	return func(w http.ResponseWriter, r *http.Request) {
		guildID := mux.Vars(r)["guild_id"]

		cfg := new(entities.GuildConfig)
		if err := json.NewDecoder(r.Body).Decode(cfg); err != nil {
			writeError(a, w, http.StatusBadRequest, "invalid request body")
			return
		}

		// The path is authoritative for the document identity.
		cfg.ID = guildID
		normalize.Config(cfg)

		ctx, cancel := context.WithTimeout(r.Context(), apiTimeout)
		defer cancel()

		if err := a.GuildDal().SaveConfig(ctx, cfg); err != nil {
			a.Log().Error("Error saving guild config",
				slog.String(logging.KeyGuild, guildID),
				slog.String(logging.KeyError, err.Error()),
			)
			writeError(a, w, http.StatusInternalServerError, "error saving configuration")
			return
		}

		writeJSON(a, w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// panelCreateHandler allocates a new panel. The server owns index
// assignment and the panel's storage identity; the editor mirrors the
// returned index.
func panelCreateHandler(a IApp) Controller {
	return func(w http.ResponseWriter, r *http.Request) {
		guildID := mux.Vars(r)["guild_id"]

		var body struct {
			PanelName string `json:"panel_name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(a, w, http.StatusBadRequest, "invalid request body")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), apiTimeout)
		defer cancel()

		cfg, err := loadGuildConfig(a, ctx, guildID)
		if err != nil {
			a.Log().Error("Error loading guild config",
				slog.String(logging.KeyGuild, guildID),
				slog.String(logging.KeyError, err.Error()),
			)
			writeError(a, w, http.StatusInternalServerError, "error loading configuration")
			return
		}

		panel := normalize.Panel(entities.Panel{
			PanelID:   uuid.NewString(),
			PanelName: body.PanelName,
		})
		cfg.Ticket.Panels = append(cfg.Ticket.Panels, panel)

		if err := a.GuildDal().SaveConfig(ctx, cfg); err != nil {
			a.Log().Error("Error saving guild config",
				slog.String(logging.KeyGuild, guildID),
				slog.String(logging.KeyError, err.Error()),
			)
			writeError(a, w, http.StatusInternalServerError, "error saving configuration")
			return
		}

		writeJSON(a, w, http.StatusOK, map[string]any{"index": len(cfg.Ticket.Panels) - 1})
	}
}

// panelUpdateHandler replaces a single panel in place. The deployed
// message ID and the storage identity stay server owned; whatever the
// client sent for them is discarded.
func panelUpdateHandler(a IApp) Controller {
	return func(w http.ResponseWriter, r *http.Request) {
		guildID := mux.Vars(r)["guild_id"]

		var body struct {
			PanelIndex int            `json:"panel_index"`
			Panel      entities.Panel `json:"panel"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(a, w, http.StatusBadRequest, "invalid request body")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), apiTimeout)
		defer cancel()

		cfg, err := loadGuildConfig(a, ctx, guildID)
		if err != nil {
			a.Log().Error("Error loading guild config",
				slog.String(logging.KeyGuild, guildID),
				slog.String(logging.KeyError, err.Error()),
			)
			writeError(a, w, http.StatusInternalServerError, "error loading configuration")
			return
		}

		if body.PanelIndex < 0 || body.PanelIndex >= len(cfg.Ticket.Panels) {
			writeError(a, w, http.StatusBadRequest, "panel index out of range")
			return
		}

		stored := cfg.Ticket.Panels[body.PanelIndex]
		panel := normalize.Panel(body.Panel)
		panel.PanelID = stored.PanelID
		panel.Deploy.MessageID = stored.Deploy.MessageID
		cfg.Ticket.Panels[body.PanelIndex] = panel

		if err := a.GuildDal().SaveConfig(ctx, cfg); err != nil {
			a.Log().Error("Error saving guild config",
				slog.String(logging.KeyGuild, guildID),
				slog.String(logging.KeyError, err.Error()),
			)
			writeError(a, w, http.StatusInternalServerError, "error saving configuration")
			return
		}

		writeJSON(a, w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// panelDeleteHandler removes a panel. The deployed intake message is
// removed best effort; a panel whose message is already gone still
// deletes cleanly.
func panelDeleteHandler(a IApp) Controller {
	return func(w http.ResponseWriter, r *http.Request) {
		guildID := mux.Vars(r)["guild_id"]

		var body struct {
			PanelIndex int `json:"panel_index"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(a, w, http.StatusBadRequest, "invalid request body")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), apiTimeout)
		defer cancel()

		cfg, err := loadGuildConfig(a, ctx, guildID)
		if err != nil {
			a.Log().Error("Error loading guild config",
				slog.String(logging.KeyGuild, guildID),
				slog.String(logging.KeyError, err.Error()),
			)
			writeError(a, w, http.StatusInternalServerError, "error loading configuration")
			return
		}

		if body.PanelIndex < 0 || body.PanelIndex >= len(cfg.Ticket.Panels) {
			writeError(a, w, http.StatusBadRequest, "panel index out of range")
			return
		}

		panel := cfg.Ticket.Panels[body.PanelIndex]
		if panel.Deploy.ChannelID != "" && panel.Deploy.MessageID != "" {
			if err := a.Session().ChannelMessageDelete(panel.Deploy.ChannelID, panel.Deploy.MessageID); err != nil {
				a.Log().Warn("Could not delete deployed panel message",
					slog.String(logging.KeyGuild, guildID),
					slog.Int(logging.KeyPanel, body.PanelIndex),
					slog.String(logging.KeyError, err.Error()),
				)
			}
		}

		cfg.Ticket.Panels = append(cfg.Ticket.Panels[:body.PanelIndex], cfg.Ticket.Panels[body.PanelIndex+1:]...)

		if err := a.GuildDal().SaveConfig(ctx, cfg); err != nil {
			a.Log().Error("Error saving guild config",
				slog.String(logging.KeyGuild, guildID),
				slog.String(logging.KeyError, err.Error()),
			)
			writeError(a, w, http.StatusInternalServerError, "error saving configuration")
			return
		}

		writeJSON(a, w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// panelDeployHandler publishes a panel's intake message and returns the
// resulting message ID, which the editor stores for redeploys.
func panelDeployHandler(a IApp) Controller {
	return func(w http.ResponseWriter, r *http.Request) {
		guildID := mux.Vars(r)["guild_id"]

		var body struct {
			PanelIndex int    `json:"panel_index"`
			ChannelID  string `json:"channel_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(a, w, http.StatusBadRequest, "invalid request body")
			return
		}

		if !snowflakeID.MatchString(body.ChannelID) {
			writeError(a, w, http.StatusBadRequest, "deploy channel must be a channel ID")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), apiTimeout)
		defer cancel()

		cfg, err := loadGuildConfig(a, ctx, guildID)
		if err != nil {
			a.Log().Error("Error loading guild config",
				slog.String(logging.KeyGuild, guildID),
				slog.String(logging.KeyError, err.Error()),
			)
			writeError(a, w, http.StatusInternalServerError, "error loading configuration")
			return
		}

		if body.PanelIndex < 0 || body.PanelIndex >= len(cfg.Ticket.Panels) {
			writeError(a, w, http.StatusBadRequest, "panel index out of range")
			return
		}

		panel := &cfg.Ticket.Panels[body.PanelIndex]
		panel.Deploy.ChannelID = body.ChannelID

		msg, err := deployMessage(a, body.ChannelID, panel.Deploy.MessageID, buildPanelIntakeMessage(*panel, body.PanelIndex))
		if err != nil {
			a.Log().Error("Error deploying panel",
				slog.String(logging.KeyGuild, guildID),
				slog.Int(logging.KeyPanel, body.PanelIndex),
				slog.String(logging.KeyError, err.Error()),
			)
			writeError(a, w, http.StatusBadGateway, "error deploying panel message")
			return
		}
		panel.Deploy.MessageID = msg.ID

		if err := a.GuildDal().SaveConfig(ctx, cfg); err != nil {
			a.Log().Error("Error saving guild config",
				slog.String(logging.KeyGuild, guildID),
				slog.String(logging.KeyError, err.Error()),
			)
			writeError(a, w, http.StatusInternalServerError, "error saving configuration")
			return
		}

		monitoring.TotalPanelDeploys.Inc()
		writeJSON(a, w, http.StatusOK, map[string]string{"message_id": msg.ID})
	}
}

// rankDeployHandler publishes the leaderboard message. Unlike panels the
// message ID stays server side; the editor only learns that the deploy
// succeeded.
func rankDeployHandler(a IApp) Controller {
	return func(w http.ResponseWriter, r *http.Request) {
		guildID := mux.Vars(r)["guild_id"]

		var body struct {
			ChannelID string `json:"channel_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(a, w, http.StatusBadRequest, "invalid request body")
			return
		}

		if !snowflakeID.MatchString(body.ChannelID) {
			writeError(a, w, http.StatusBadRequest, "leaderboard channel must be a channel ID")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), apiTimeout)
		defer cancel()

		cfg, err := loadGuildConfig(a, ctx, guildID)
		if err != nil {
			a.Log().Error("Error loading guild config",
				slog.String(logging.KeyGuild, guildID),
				slog.String(logging.KeyError, err.Error()),
			)
			writeError(a, w, http.StatusInternalServerError, "error loading configuration")
			return
		}

		cfg.Rank.Leaderboard.ChannelID = body.ChannelID

		msg, err := deployMessage(a, body.ChannelID, cfg.Rank.Leaderboard.MessageID, buildLeaderboardMessage(cfg.Rank))
		if err != nil {
			a.Log().Error("Error deploying leaderboard",
				slog.String(logging.KeyGuild, guildID),
				slog.String(logging.KeyError, err.Error()),
			)
			writeError(a, w, http.StatusBadGateway, "error deploying leaderboard message")
			return
		}
		cfg.Rank.Leaderboard.MessageID = msg.ID

		if err := a.GuildDal().SaveConfig(ctx, cfg); err != nil {
			a.Log().Error("Error saving guild config",
				slog.String(logging.KeyGuild, guildID),
				slog.String(logging.KeyError, err.Error()),
			)
			writeError(a, w, http.StatusInternalServerError, "error saving configuration")
			return
		}

		writeJSON(a, w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
