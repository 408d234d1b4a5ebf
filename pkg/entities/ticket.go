package entities

import (
	"strconv"
	"strings"

	"github.com/lobo-bot/lobo/pkg/custom"
)

// TicketStatus is the lifecycle status of a ticket.
type TicketStatus string

const (
	// TicketStatusOpen is an open ticket.
	TicketStatusOpen TicketStatus = "open"

	// TicketStatusClosed is a closed ticket.
	TicketStatusClosed TicketStatus = "closed"
)

// Ticket is a ticket opened through a panel.
type Ticket struct {
	// ID is the number of the ticket within its panel. It is used together
	// with the panel name template to name the ticket channel.
	ID int `json:"id" bson:"id"`

	// GuildID is the ID of the guild that the ticket is in.
	GuildID string `json:"guild_id" bson:"guild_id"`

	// PanelIndex is the index of the panel the ticket was opened from, at
	// the time it was opened. Panels have no stable wire identity, so this
	// can drift if panels are deleted; PanelID is the durable link.
	PanelIndex int `json:"panel_index" bson:"panel_index"`

	// PanelID is the storage identity of the panel the ticket was opened from.
	PanelID string `json:"panel_id" bson:"panel_id"`

	// UserID is the ID of the user that created the ticket.
	UserID string `json:"user_id" bson:"user_id"`

	// Username is the username of the user that created the ticket.
	Username string `json:"username" bson:"username"`

	// ChannelID is the ID of the ticket channel, for channel mode panels.
	ChannelID string `json:"channel_id,omitempty" bson:"channel_id,omitempty"`

	// ThreadID is the ID of the ticket thread, for thread mode panels.
	ThreadID string `json:"thread_id,omitempty" bson:"thread_id,omitempty"`

	// Status is the lifecycle status of the ticket.
	Status TicketStatus `json:"status" bson:"status"`

	// Answers are the intake form answers, positional against the panel's
	// form fields as they were when the ticket was opened.
	Answers []string `json:"answers" bson:"answers"`

	// CreatedAt is the time that the ticket was created.
	CreatedAt custom.Datetime `json:"created_at" bson:"created_at"`

	// ClosedAt is the time that the ticket was closed. A zero value is
	// stored as null rather than omitted, so reopening a ticket clears the
	// old close time in storage instead of leaving it behind.
	ClosedAt custom.Datetime `json:"closed_at,omitempty" bson:"closed_at"`

	// LastActivityAt is the time of the last message in the ticket.
	LastActivityAt custom.Datetime `json:"last_activity_at" bson:"last_activity_at"`
}

// LocationID is the channel or thread the ticket lives in.
func (t *Ticket) LocationID() string {
	if t.ThreadID != "" {
		return t.ThreadID
	}
	return t.ChannelID
}

// Name renders the ticket name from a panel name template. Placeholders
// {count} and {user} are substituted; the result is lower cased and capped
// for the platform's channel name limit.
func (t *Ticket) Name(template string) string {
	name := strings.ReplaceAll(template, "{count}", strconv.Itoa(t.ID))
	name = strings.ReplaceAll(name, "{user}", t.Username)
	name = strings.ToLower(strings.ReplaceAll(name, " ", "-"))
	if len(name) > 90 {
		name = name[:90]
	}
	return name
}
