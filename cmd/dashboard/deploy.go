package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Jacobbrewer1/discordgo"

	"github.com/lobo-bot/lobo/pkg/entities"
)

// TicketEmoji is the emoji used for the intake button. (Envelope with arrow)
const TicketEmoji = "\U0001F4E9"

// buildPanelIntakeMessage builds the intake message for a panel. The open
// button carries the panel index so the interaction can be routed back to
// the right panel.
func buildPanelIntakeMessage(panel entities.Panel, panelIndex int) *discordgo.MessageSend {
	button := discordgo.Button{
		Label:    fmt.Sprintf("%s Open Ticket", TicketEmoji),
		Style:    discordgo.PrimaryButton,
		Disabled: !*panel.Enabled,
		Emoji:    discordgo.ComponentEmoji{},
		URL:      "",
		CustomID: customID(TicketOpenButtonID, strconv.Itoa(panelIndex)),
	}

	return &discordgo.MessageSend{
		Embed: &discordgo.MessageEmbed{
			Title:       panel.PanelName,
			Description: "Need help? Click the button below to open a ticket and the team will get back to you.",
			Color:       0x5865F2,
		},
		AllowedMentions: &discordgo.MessageAllowedMentions{},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					button,
				},
			},
		},
	}
}

// buildLeaderboardMessage builds the deployed leaderboard message shell.
// The periodic refresher fills the standings in; the deploy only places
// the message.
func buildLeaderboardMessage(rank entities.RankConfig) *discordgo.MessageSend {
	title := rank.Embed.Title
	if title == "" {
		title = "Leaderboard"
	}

	var columns []string
	if rank.Leaderboard.Show.Text {
		columns = append(columns, "text")
	}
	if rank.Leaderboard.Show.VC {
		columns = append(columns, "voice")
	}
	if rank.Leaderboard.Show.Overall {
		columns = append(columns, "overall")
	}
	description := "The leaderboard will appear here shortly."
	if len(columns) > 0 {
		description = fmt.Sprintf("Tracking %s activity. The standings will appear here shortly.", strings.Join(columns, ", "))
	}

	return &discordgo.MessageSend{
		Embed: &discordgo.MessageEmbed{
			Title:       title,
			Description: description,
			Color:       embedColor(rank.Embed.Color),
			Footer:      &discordgo.MessageEmbedFooter{Text: rank.Embed.Footer},
		},
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	}
}

// embedColor parses a "#RRGGBB" colour, falling back to the platform
// blurple on anything unparseable.
func embedColor(hex string) int {
	v, err := strconv.ParseInt(strings.TrimPrefix(hex, "#"), 16, 32)
	if err != nil {
		return 0x5865F2
	}
	return int(v)
}

// deployMessage publishes a message to a channel, editing the previously
// deployed message in place when one is recorded. A recorded message that
// has since been deleted falls back to sending a fresh one.
func deployMessage(a IApp, channelID, messageID string, send *discordgo.MessageSend) (*discordgo.Message, error) {
	if messageID != "" {
		msg, err := a.Session().ChannelMessageEditComplex(&discordgo.MessageEdit{
			Channel:    channelID,
			ID:         messageID,
			Content:    &send.Content,
			Embed:      send.Embed,
			Components: send.Components,
		})
		if err == nil {
			return msg, nil
		}

		restErr := new(discordgo.RESTError)
		if !errors.As(err, &restErr) || restErr.Message == nil || restErr.Message.Code != discordgo.ErrCodeUnknownMessage {
			return nil, fmt.Errorf("error editing deployed message: %w", err)
		}
	}

	msg, err := a.Session().ChannelMessageSendComplex(channelID, send)
	if err != nil {
		return nil, fmt.Errorf("error sending deployed message: %w", err)
	}
	return msg, nil
}
