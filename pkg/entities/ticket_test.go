package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/lobo-bot/lobo/pkg/custom"
)

func TestTicketName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ticket   Ticket
		template string
		want     string
	}{
		{
			name:     "SubstitutesPlaceholders",
			ticket:   Ticket{ID: 7, Username: "Wolf"},
			template: "ticket-{count}-{user}",
			want:     "ticket-7-wolf",
		},
		{
			name:     "SpacesBecomeHyphens",
			ticket:   Ticket{ID: 2, Username: "Big Bad"},
			template: "{user} support",
			want:     "big-bad-support",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, tt.ticket.Name(tt.template))
		})
	}
}

func TestTicketClosedAtStoredNullWhenZero(t *testing.T) {
	t.Parallel()

	ticket := &Ticket{
		ID:      1,
		GuildID: "g1",
		UserID:  "u1",
		Status:  TicketStatusOpen,
	}

	raw, err := bson.Marshal(ticket)
	require.NoError(t, err)

	doc := bson.M{}
	require.NoError(t, bson.Unmarshal(raw, &doc))

	// The field must be present so a whole-record save overwrites a
	// previously stored close time on reopen.
	v, ok := doc["closed_at"]
	require.True(t, ok)
	require.Nil(t, v)
}

func TestTicketClosedAtRoundTrip(t *testing.T) {
	t.Parallel()

	closed := custom.Datetime(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	ticket := &Ticket{
		ID:       1,
		GuildID:  "g1",
		UserID:   "u1",
		Status:   TicketStatusClosed,
		ClosedAt: closed,
	}

	raw, err := bson.Marshal(ticket)
	require.NoError(t, err)

	out := new(Ticket)
	require.NoError(t, bson.Unmarshal(raw, out))
	require.Equal(t, closed.Time(), out.ClosedAt.Time())
}
