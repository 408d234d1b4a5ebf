package dataaccess

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lobo-bot/lobo/pkg/custom"
	"github.com/lobo-bot/lobo/pkg/dataaccess/monitoring"
	"github.com/lobo-bot/lobo/pkg/entities"
	"github.com/lobo-bot/lobo/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ticketDalName = "ticket_dal"

type TicketDal interface {
	// SaveTicket saves a ticket.
	SaveTicket(ctx context.Context, ticket *entities.Ticket) error

	// GetTicketByLocation gets a ticket by the channel or thread it lives in.
	GetTicketByLocation(ctx context.Context, guildID, locationID string) (*entities.Ticket, error)

	// GetLatestTicket gets the most recently created ticket in a guild.
	GetLatestTicket(ctx context.Context, guildID string) (*entities.Ticket, error)

	// GetLatestForUser gets the most recently created ticket a user opened
	// through a panel.
	GetLatestForUser(ctx context.Context, guildID, panelID, userID string) (*entities.Ticket, error)

	// CountOpenForUser counts the open tickets a user has for a panel.
	CountOpenForUser(ctx context.Context, guildID, panelID, userID string) (int64, error)

	// ListClosedBefore lists closed tickets across all guilds closed before
	// the cutoff.
	ListClosedBefore(ctx context.Context, cutoff custom.Datetime) ([]*entities.Ticket, error)

	// DeleteTicket removes a ticket record.
	DeleteTicket(ctx context.Context, guildID, locationID string) error
}

type ticketDal struct {
	// l is the logger.
	l *slog.Logger

	// client is the database.
	client *mongo.Client
}

// NewTicketDal creates a new ticket data access layer.
func NewTicketDal() TicketDal {
	l := slog.Default().With(slog.String(logging.KeyDal, ticketDalName))

	if MongoDB == nil {
		l.Warn("MongoDB is nil, this can cause a panic. Proceeding...")
	}

	return &ticketDal{
		l:      l,
		client: MongoDB,
	}
}

func (d *ticketDal) collection() *mongo.Collection {
	return d.client.Database(mongoDatabase).Collection("tickets")
}

// observe starts the prometheus metrics for a query and returns the timer.
func observe(query string) *prometheus.Timer {
	monitoring.MongoTotalRequests.WithLabelValues(ticketDalName, query, mongoDatabase, "tickets").Inc()
	return prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(ticketDalName, query, mongoDatabase, "tickets"))
}

func (d *ticketDal) SaveTicket(ctx context.Context, ticket *entities.Ticket) error {
	t := observe("save_ticket")
	defer t.ObserveDuration()

	// A ticket is identified by where it lives.
	opts := options.Update().SetUpsert(true)
	filter := bson.M{"guild_id": ticket.GuildID}
	if ticket.ThreadID != "" {
		filter["thread_id"] = ticket.ThreadID
	} else {
		filter["channel_id"] = ticket.ChannelID
	}

	_, err := d.collection().UpdateOne(ctx, filter, bson.M{"$set": ticket}, opts)
	if err != nil {
		return fmt.Errorf("error updating ticket: %w", err)
	}
	return nil
}

func (d *ticketDal) GetTicketByLocation(ctx context.Context, guildID, locationID string) (*entities.Ticket, error) {
	t := observe("get_ticket_by_location")
	defer t.ObserveDuration()

	var ticket entities.Ticket
	err := d.collection().FindOne(ctx, bson.M{
		"guild_id": guildID,
		"$or": []bson.M{
			{"channel_id": locationID},
			{"thread_id": locationID},
		},
	}).Decode(&ticket)
	if err != nil {
		return nil, fmt.Errorf("error getting ticket: %w", err)
	}

	return &ticket, nil
}

func (d *ticketDal) GetLatestTicket(ctx context.Context, guildID string) (*entities.Ticket, error) {
	t := observe("get_latest_ticket")
	defer t.ObserveDuration()

	opts := options.FindOne()
	opts.SetSort(bson.M{"created_at": -1})

	var ticket entities.Ticket
	err := d.collection().FindOne(ctx, bson.M{"guild_id": guildID}, opts).Decode(&ticket)
	if err != nil {
		return nil, fmt.Errorf("error getting ticket: %w", err)
	}

	return &ticket, nil
}

func (d *ticketDal) GetLatestForUser(ctx context.Context, guildID, panelID, userID string) (*entities.Ticket, error) {
	t := observe("get_latest_for_user")
	defer t.ObserveDuration()

	opts := options.FindOne()
	opts.SetSort(bson.M{"created_at": -1})

	var ticket entities.Ticket
	err := d.collection().FindOne(ctx, bson.M{
		"guild_id": guildID,
		"panel_id": panelID,
		"user_id":  userID,
	}, opts).Decode(&ticket)
	if err != nil {
		return nil, fmt.Errorf("error getting ticket: %w", err)
	}

	return &ticket, nil
}

func (d *ticketDal) CountOpenForUser(ctx context.Context, guildID, panelID, userID string) (int64, error) {
	t := observe("count_open_for_user")
	defer t.ObserveDuration()

	count, err := d.collection().CountDocuments(ctx, bson.M{
		"guild_id": guildID,
		"panel_id": panelID,
		"user_id":  userID,
		"status":   entities.TicketStatusOpen,
	})
	if err != nil {
		return 0, fmt.Errorf("error counting tickets: %w", err)
	}
	return count, nil
}

func (d *ticketDal) ListClosedBefore(ctx context.Context, cutoff custom.Datetime) ([]*entities.Ticket, error) {
	t := observe("list_closed_before")
	defer t.ObserveDuration()

	cursor, err := d.collection().Find(ctx, bson.M{
		"status":    entities.TicketStatusClosed,
		"closed_at": bson.M{"$lt": cutoff},
	})
	if err != nil {
		return nil, fmt.Errorf("error listing tickets: %w", err)
	}
	defer cursor.Close(ctx)

	var tickets []*entities.Ticket
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, fmt.Errorf("error decoding tickets: %w", err)
	}
	return tickets, nil
}

func (d *ticketDal) DeleteTicket(ctx context.Context, guildID, locationID string) error {
	t := observe("delete_ticket")
	defer t.ObserveDuration()

	_, err := d.collection().DeleteOne(ctx, bson.M{
		"guild_id": guildID,
		"$or": []bson.M{
			{"channel_id": locationID},
			{"thread_id": locationID},
		},
	})
	if err != nil {
		return fmt.Errorf("error deleting ticket: %w", err)
	}
	return nil
}
