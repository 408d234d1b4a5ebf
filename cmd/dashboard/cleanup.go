package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/lobo-bot/lobo/pkg/custom"
	"github.com/lobo-bot/lobo/pkg/entities"
	"github.com/lobo-bot/lobo/pkg/logging"
)

// cleanupInterval is how often closed tickets are swept for deletion.
const cleanupInterval = time.Minute

// cleanupLoop periodically deletes the channels of tickets that have been
// closed for longer than their panel's retention.
func cleanupLoop(a IApp) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		if err := sweepClosedTickets(a); err != nil {
			a.Log().Error("Error sweeping closed tickets", slog.String(logging.KeyError, err.Error()))
		}
	}
}

func sweepClosedTickets(a IApp) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now().UTC()

	tickets, err := a.TicketDal().ListClosedBefore(ctx, custom.Datetime(now))
	if err != nil {
		return err
	}

	// Configurations are loaded once per guild per sweep.
	configs := make(map[string]*entities.GuildConfig)

	for _, ticket := range tickets {
		cfg, ok := configs[ticket.GuildID]
		if !ok {
			cfg, err = loadGuildConfig(a, ctx, ticket.GuildID)
			if err != nil {
				a.Log().Error("Error loading guild config",
					slog.String(logging.KeyGuild, ticket.GuildID),
					slog.String(logging.KeyError, err.Error()),
				)
				continue
			}
			configs[ticket.GuildID] = cfg
		}

		panel := panelForTicket(cfg, ticket)

		// A retention of zero keeps closed tickets forever.
		days := *panel.Close.DeleteAfterDays
		if days <= 0 {
			continue
		}

		if ticket.ClosedAt.Time().After(now.Add(-time.Duration(days) * 24 * time.Hour)) {
			continue
		}

		// The channel may already be gone; the record is removed either way.
		if _, err := a.Session().ChannelDelete(ticket.LocationID()); err != nil {
			a.Log().Debug("Could not delete expired ticket channel",
				slog.String(logging.KeyGuild, ticket.GuildID),
				slog.String(logging.KeyError, err.Error()),
			)
		}

		if err := a.TicketDal().DeleteTicket(ctx, ticket.GuildID, ticket.LocationID()); err != nil {
			a.Log().Error("Error deleting expired ticket record",
				slog.String(logging.KeyGuild, ticket.GuildID),
				slog.String(logging.KeyError, err.Error()),
			)
		}
	}

	return nil
}
