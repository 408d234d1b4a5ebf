package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lobo-bot/lobo/cmd/dashboard/monitoring"
	"github.com/lobo-bot/lobo/pkg/custom"
	"github.com/lobo-bot/lobo/pkg/entities"
	"github.com/lobo-bot/lobo/pkg/logging"
	"github.com/lobo-bot/lobo/pkg/messages"
	"github.com/lobo-bot/lobo/pkg/normalize"
)

const (
	// TicketOpenButtonID is the ID for the intake button on a deployed
	// panel message. It carries the panel index as its argument.
	TicketOpenButtonID = "ticket_open"

	// TicketCloseButtonID is the ID for the close button inside a ticket.
	TicketCloseButtonID = "ticket_close"

	// TicketCloseConfirmButtonID is the ID for the close confirmation button.
	TicketCloseConfirmButtonID = "ticket_close_confirm"

	// TicketCloseCancelButtonID is the ID for the close cancellation button.
	TicketCloseCancelButtonID = "ticket_close_cancel"

	// TicketReopenButtonID is the ID for the reopen button on a closed ticket.
	TicketReopenButtonID = "ticket_reopen"

	// TicketModalID is the ID for the intake form modal. It carries the
	// panel index as its argument.
	TicketModalID = "ticket_modal"
)

const (
	// CloseEmoji is the emoji used for the close button. (Padlock)
	CloseEmoji = "\U0001F510"

	// ReopenEmoji is the emoji used for the reopen button. (Open padlock)
	ReopenEmoji = "\U0001F513"
)

const (
	// TicketCmdName is the command for controlling tickets.
	TicketCmdName = "ticket"

	// CloseCmdName is the sub command for closing a ticket.
	CloseCmdName = "close"

	// ReopenCmdName is the sub command for reopening a ticket.
	ReopenCmdName = "reopen"
)

// ticketCmd is the command for controlling tickets from inside a ticket
// channel or thread.
var ticketCmd = &discordgo.ApplicationCommand{
	Name:        TicketCmdName,
	Type:        discordgo.ChatApplicationCommand,
	Description: "This is the command for controlling tickets.",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Name:        CloseCmdName,
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Description: "This closes the ticket for the channel that the command was executed in.",
		},
		{
			Name:        ReopenCmdName,
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Description: "This reopens the ticket for the channel that the command was executed in.",
		},
	},
}

func ticketCmdController(a IApp, i *discordgo.InteractionCreate) (commandProcessor, error) {
	subCmd := i.ApplicationCommandData().Options[0].Name

	switch subCmd {
	case CloseCmdName:
		return func(a IApp, i *discordgo.InteractionCreate) error {
			return closeTicketProcessor(a, i, "")
		}, nil
	case ReopenCmdName:
		return func(a IApp, i *discordgo.InteractionCreate) error {
			return reopenTicketProcessor(a, i, "")
		}, nil
	default:
		return nil, fmt.Errorf("unhandled sub command %s", subCmd)
	}
}

// openTicketProcessor handles the intake button on a deployed panel
// message. The argument is the panel index the message was deployed for.
func openTicketProcessor(a IApp, i *discordgo.InteractionCreate, arg string) error {
	index, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("invalid panel index %q: %w", arg, err)
	}

	cfg, err := loadGuildConfig(a, context.Background(), i.GuildID)
	if err != nil {
		return fmt.Errorf("error getting guild configuration: %w", err)
	}

	if index < 0 || index >= len(cfg.Ticket.Panels) {
		return respondEphemeral(a, i, "This panel no longer exists.")
	}
	panel := cfg.Ticket.Panels[index]

	if !*panel.Enabled {
		return respondEphemeral(a, i, "This panel is not accepting new tickets at the moment.")
	}

	if max := *panel.Limits.MaxOpenPerUser; max > 0 {
		open, err := a.TicketDal().CountOpenForUser(context.Background(), i.GuildID, panel.PanelID, i.Member.User.ID)
		if err != nil {
			return fmt.Errorf("error counting open tickets: %w", err)
		}
		if open >= int64(max) {
			return respondEphemeral(a, i, messages.ErrTicketLimitReached)
		}
	}

	if cd := *panel.Limits.CooldownMinutes; cd > 0 {
		latest, err := a.TicketDal().GetLatestForUser(context.Background(), i.GuildID, panel.PanelID, i.Member.User.ID)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("error getting latest ticket: %w", err)
		}
		if latest != nil && time.Since(latest.CreatedAt.Time()) < time.Duration(cd)*time.Minute {
			return respondEphemeral(a, i, messages.ErrTicketCooldown)
		}
	}

	// An enabled form with fields collects answers through a modal first;
	// everything else opens the ticket straight away.
	if *panel.Form.Enabled && len(panel.Form.Fields) > 0 {
		return respondTicketModal(a, i, panel, index)
	}

	return openTicket(a, i, cfg, panel, index, nil)
}

// respondTicketModal shows the intake form for a panel. The platform caps
// modals at five inputs; extra fields are not shown.
func respondTicketModal(a IApp, i *discordgo.InteractionCreate, panel entities.Panel, index int) error {
	fields := panel.Form.Fields
	if len(fields) > 5 {
		fields = fields[:5]
	}

	rows := make([]discordgo.MessageComponent, 0, len(fields))
	for fi, f := range fields {
		label := f.Label
		if label == "" {
			label = fmt.Sprintf("Question %d", fi+1)
		}

		style := discordgo.TextInputParagraph
		if f.Type == entities.FieldTypeText || f.Type == entities.FieldTypeURL {
			style = discordgo.TextInputShort
		}

		rows = append(rows, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    fmt.Sprintf("field_%d", fi),
					Label:       label,
					Style:       style,
					Placeholder: f.Hint,
					Required:    f.Required,
				},
			},
		})
	}

	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   customID(TicketModalID, strconv.Itoa(index)),
			Title:      panel.PanelName,
			Components: rows,
		},
	})
}

// ticketModalProcessor handles a submitted intake form. The argument is
// the panel index the modal was shown for.
func ticketModalProcessor(a IApp, i *discordgo.InteractionCreate, arg string) error {
	index, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("invalid panel index %q: %w", arg, err)
	}

	cfg, err := loadGuildConfig(a, context.Background(), i.GuildID)
	if err != nil {
		return fmt.Errorf("error getting guild configuration: %w", err)
	}

	if index < 0 || index >= len(cfg.Ticket.Panels) {
		return respondEphemeral(a, i, "This panel no longer exists.")
	}
	panel := cfg.Ticket.Panels[index]

	return openTicket(a, i, cfg, panel, index, collectModalAnswers(i))
}

// collectModalAnswers extracts the submitted inputs in form order.
func collectModalAnswers(i *discordgo.InteractionCreate) []string {
	data := i.ModalSubmitData()

	answers := make([]string, 0, len(data.Components))
	for _, comp := range data.Components {
		row, ok := comp.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			input, ok := inner.(*discordgo.TextInput)
			if !ok {
				continue
			}
			answers = append(answers, input.Value)
		}
	}
	return answers
}

// openTicket creates the ticket record and its channel or thread, then
// hands the in-ticket setup off to a goroutine so the interaction can be
// answered quickly.
func openTicket(a IApp, i *discordgo.InteractionCreate, cfg *entities.GuildConfig, panel entities.Panel, index int, answers []string) error {
	latest, err := a.TicketDal().GetLatestTicket(context.Background(), i.GuildID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("error getting latest ticket: %w", err)
	}

	ticketID := 1
	if latest != nil {
		ticketID = latest.ID + 1
	}

	now := custom.Datetime(time.Now().UTC())
	ticket := &entities.Ticket{
		ID:             ticketID,
		GuildID:        i.GuildID,
		PanelIndex:     index,
		PanelID:        panel.PanelID,
		UserID:         i.Member.User.ID,
		Username:       i.Member.User.Username,
		Status:         entities.TicketStatusOpen,
		Answers:        answers,
		CreatedAt:      now,
		LastActivityAt: now,
	}

	name := ticket.Name(panel.NameTemplate)

	switch panel.Mode {
	case entities.PanelModeThread:
		thread, err := createTicketThread(a, i, panel, name)
		if err != nil {
			return fmt.Errorf("error creating ticket thread: %w", err)
		}
		ticket.ThreadID = thread.ID
	default:
		channel, err := createTicketChannel(a, i, panel, name)
		if err != nil {
			return fmt.Errorf("error creating ticket channel: %w", err)
		}
		ticket.ChannelID = channel.ID
	}

	if err := a.TicketDal().SaveTicket(context.Background(), ticket); err != nil {
		return fmt.Errorf("error saving ticket: %w", err)
	}

	monitoring.TotalTicketsOpened.WithLabelValues(string(panel.Mode)).Inc()

	go func() {
		if err := setupTicketLocation(a, ticket, panel); err != nil {
			a.Log().Error("Error setting up ticket",
				slog.String(logging.KeyGuild, ticket.GuildID),
				slog.String(logging.KeyError, err.Error()),
			)
		}
	}()

	err = a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
			Embeds: []*discordgo.MessageEmbed{
				{
					Title:       "Ticket Created",
					Description: fmt.Sprintf("<@%s>, %s", i.Member.User.ID, messages.TicketCreated),
					Color:       0x00ff00,
					Fields: []*discordgo.MessageEmbedField{
						{
							Name:   "Ticket Name",
							Value:  name,
							Inline: true,
						},
						{
							Name:   "Ticket Channel",
							Value:  fmt.Sprintf("<#%s>", ticket.LocationID()),
							Inline: true,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("error responding to interaction: %w", err)
	}
	return nil
}

func createTicketChannel(a IApp, i *discordgo.InteractionCreate, panel entities.Panel, name string) (*discordgo.Channel, error) {
	channel, err := a.Session().GuildChannelCreateComplex(i.GuildID, discordgo.GuildChannelCreateData{
		Name:                 name,
		Type:                 discordgo.ChannelTypeGuildText,
		Topic:                fmt.Sprintf("Ticket created by %s", i.Member.User.Username),
		PermissionOverwrites: ticketPermissionOverwrites(i, panel),
		ParentID:             panel.ParentCategoryID,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating channel: %w", err)
	}
	return channel, nil
}

func createTicketThread(a IApp, i *discordgo.InteractionCreate, panel entities.Panel, name string) (*discordgo.Channel, error) {
	thread, err := a.Session().ThreadStartComplex(panel.ThreadParentChannelID, &discordgo.ThreadStart{
		Name:                name,
		AutoArchiveDuration: 10080,
		Type:                discordgo.ChannelTypeGuildPrivateThread,
		Invitable:           false,
	})
	if err != nil {
		return nil, fmt.Errorf("error starting thread: %w", err)
	}

	if err := a.Session().ThreadMemberAdd(thread.ID, i.Member.User.ID); err != nil {
		return nil, fmt.Errorf("error adding member to thread: %w", err)
	}
	return thread, nil
}

// ticketPermissionOverwrites builds the channel permissions for a ticket.
// Everyone is shut out; the opener and staff get full text access, viewer
// roles can read but not write.
func ticketPermissionOverwrites(i *discordgo.InteractionCreate, panel entities.Panel) []*discordgo.PermissionOverwrite {
	overwrites := []*discordgo.PermissionOverwrite{
		{
			ID:    i.GuildID,
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: 0,
			Deny:  discordgo.PermissionAll,
		},
		{
			ID:    i.Member.User.ID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: discordgo.PermissionAllText,
			Deny:  discordgo.PermissionMentionEveryone,
		},
	}

	for _, roleID := range panel.Permissions.StaffRoleIDs {
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID:    roleID,
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: discordgo.PermissionAllText,
			Deny:  discordgo.PermissionMentionEveryone,
		})
	}

	for _, roleID := range panel.Permissions.ViewerRoleIDs {
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID:    roleID,
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: discordgo.PermissionViewChannel | discordgo.PermissionReadMessageHistory,
			Deny:  discordgo.PermissionSendMessages | discordgo.PermissionMentionEveryone,
		})
	}

	return overwrites
}

// setupTicketLocation posts the welcome, rules and intake answer messages
// into a freshly opened ticket.
func setupTicketLocation(a IApp, ticket *entities.Ticket, panel entities.Panel) error {
	location := ticket.LocationID()

	welcome := &discordgo.MessageSend{
		Content: fmt.Sprintf(`<@%s>, welcome to your ticket.
Please provide any additional info you deem relevant to help us answer faster.`, ticket.UserID),
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    fmt.Sprintf("%s Close", CloseEmoji),
						Style:    discordgo.SecondaryButton,
						Disabled: false,
						Emoji:    discordgo.ComponentEmoji{},
						URL:      "",
						CustomID: TicketCloseButtonID,
					},
				},
			},
		},
	}

	msg, err := a.Session().ChannelMessageSendComplex(location, welcome)
	if err != nil {
		return fmt.Errorf("error sending welcome message: %w", err)
	}

	if err := a.Session().ChannelMessagePin(location, msg.ID); err != nil {
		return fmt.Errorf("error pinning welcome message: %w", err)
	}

	if *panel.Rules.Enabled {
		if _, err := a.Session().ChannelMessageSendComplex(location, buildRulesMessage(ticket, panel)); err != nil {
			return fmt.Errorf("error sending rules message: %w", err)
		}
	}

	if len(ticket.Answers) > 0 {
		if _, err := a.Session().ChannelMessageSendComplex(location, buildAnswersMessage(ticket, panel)); err != nil {
			return fmt.Errorf("error sending answers message: %w", err)
		}
	}

	return nil
}

// buildRulesMessage builds the rules message for a fresh ticket. Stored
// documents can still carry a blank body from before the save-time
// substitution existed, so the default is applied here too.
func buildRulesMessage(ticket *entities.Ticket, panel entities.Panel) *discordgo.MessageSend {
	body := panel.Rules.Body
	if body == "" {
		body = entities.DefaultRulesBody
	}

	var content string
	if panel.Rules.Policy == entities.RulesPolicyEveryone {
		content = fmt.Sprintf("<@%s>", ticket.UserID)
	}

	var parse []discordgo.AllowedMentionType
	if panel.Rules.AllowEveryoneMention {
		parse = append(parse, discordgo.AllowedMentionTypeEveryone)
	}

	return &discordgo.MessageSend{
		Content: content,
		Embed: &discordgo.MessageEmbed{
			Title:       panel.Rules.Title,
			Description: body,
			Color:       0x5865F2,
		},
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Parse: parse,
			Roles: panel.Rules.AllowedRoleIDs,
			Users: []string{ticket.UserID},
		},
	}
}

// buildAnswersMessage builds the intake form answers embed. Answers are
// positional against the form fields as they were at open time.
func buildAnswersMessage(ticket *entities.Ticket, panel entities.Panel) *discordgo.MessageSend {
	fields := make([]*discordgo.MessageEmbedField, 0, len(ticket.Answers))
	for ai, answer := range ticket.Answers {
		name := fmt.Sprintf("Question %d", ai+1)
		if ai < len(panel.Form.Fields) && panel.Form.Fields[ai].Label != "" {
			name = panel.Form.Fields[ai].Label
		}
		if answer == "" {
			answer = "-"
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  name,
			Value: answer,
		})
	}

	return &discordgo.MessageSend{
		Embed: &discordgo.MessageEmbed{
			Title:  "Intake Form",
			Color:  0x5865F2,
			Fields: fields,
		},
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	}
}

// ticketForInteraction resolves the ticket behind the channel or thread
// an interaction was fired in.
func ticketForInteraction(a IApp, i *discordgo.InteractionCreate) (*entities.Ticket, error) {
	ticket, err := a.TicketDal().GetTicketByLocation(context.Background(), i.GuildID, i.ChannelID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting ticket: %w", err)
	}
	return ticket, nil
}

// panelForTicket resolves the panel a ticket was opened from. The stored
// panel ID is the durable link; the open-time index is the fallback for
// records from before panels carried IDs.
func panelForTicket(cfg *entities.GuildConfig, ticket *entities.Ticket) entities.Panel {
	if ticket.PanelID != "" {
		for _, p := range cfg.Ticket.Panels {
			if p.PanelID == ticket.PanelID {
				return p
			}
		}
	}
	if ticket.PanelIndex >= 0 && ticket.PanelIndex < len(cfg.Ticket.Panels) {
		return cfg.Ticket.Panels[ticket.PanelIndex]
	}
	return normalize.Panel(entities.Panel{})
}

// canManageTicket reports whether a member can close or reopen a ticket:
// the opener can, and so can anyone holding a staff role of the panel.
func canManageTicket(i *discordgo.InteractionCreate, ticket *entities.Ticket, panel entities.Panel) bool {
	if i.Member.User.ID == ticket.UserID {
		return true
	}
	return hasAnyRole(i.Member, panel.Permissions.StaffRoleIDs)
}

func closeTicketProcessor(a IApp, i *discordgo.InteractionCreate, _ string) error {
	ticket, err := ticketForInteraction(a, i)
	if err != nil {
		return err
	}
	if ticket == nil {
		return respondEphemeral(a, i, "This channel is not a ticket.")
	}

	cfg, err := loadGuildConfig(a, context.Background(), i.GuildID)
	if err != nil {
		return fmt.Errorf("error getting guild configuration: %w", err)
	}
	panel := panelForTicket(cfg, ticket)

	if !canManageTicket(i, ticket, panel) {
		return respondEphemeral(a, i, "Only the ticket creator or staff can close this ticket.")
	}

	if ticket.Status == entities.TicketStatusClosed {
		return respondEphemeral(a, i, "This ticket is already closed.")
	}

	if *panel.Close.ConfirmRequired {
		return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "Are you sure you want to close this ticket?",
				Flags:   discordgo.MessageFlagsEphemeral,
				Components: []discordgo.MessageComponent{
					discordgo.ActionsRow{
						Components: []discordgo.MessageComponent{
							discordgo.Button{
								Label:    fmt.Sprintf("%s Close", CloseEmoji),
								Style:    discordgo.DangerButton,
								Disabled: false,
								Emoji:    discordgo.ComponentEmoji{},
								URL:      "",
								CustomID: TicketCloseConfirmButtonID,
							},
							discordgo.Button{
								Label:    "Cancel",
								Style:    discordgo.SecondaryButton,
								Disabled: false,
								Emoji:    discordgo.ComponentEmoji{},
								URL:      "",
								CustomID: TicketCloseCancelButtonID,
							},
						},
					},
				},
			},
		})
	}

	return closeTicket(a, i, ticket, panel)
}

func closeTicketConfirmProcessor(a IApp, i *discordgo.InteractionCreate, _ string) error {
	ticket, err := ticketForInteraction(a, i)
	if err != nil {
		return err
	}
	if ticket == nil {
		return respondEphemeral(a, i, "This channel is not a ticket.")
	}

	if ticket.Status == entities.TicketStatusClosed {
		return respondEphemeral(a, i, "This ticket is already closed.")
	}

	cfg, err := loadGuildConfig(a, context.Background(), i.GuildID)
	if err != nil {
		return fmt.Errorf("error getting guild configuration: %w", err)
	}

	return closeTicket(a, i, ticket, panelForTicket(cfg, ticket))
}

func closeTicketCancelProcessor(a IApp, i *discordgo.InteractionCreate, _ string) error {
	return respondEphemeral(a, i, "Ticket close cancelled.")
}

// closeTicket marks the ticket closed and archives its location. Threads
// are archived in place, channels move to the closed category or are
// deleted outright when no closed category is configured.
func closeTicket(a IApp, i *discordgo.InteractionCreate, ticket *entities.Ticket, panel entities.Panel) error {
	ticket.Status = entities.TicketStatusClosed
	ticket.ClosedAt = custom.Datetime(time.Now().UTC())

	if err := a.TicketDal().SaveTicket(context.Background(), ticket); err != nil {
		return fmt.Errorf("error saving ticket: %w", err)
	}

	monitoring.TotalTicketsClosed.Inc()

	switch {
	case ticket.ThreadID != "":
		archived := true
		locked := !*panel.Close.AllowReopen
		if _, err := a.Session().ChannelEditComplex(ticket.ThreadID, &discordgo.ChannelEdit{
			Archived: &archived,
			Locked:   &locked,
		}); err != nil {
			return fmt.Errorf("error archiving thread: %w", err)
		}
	case panel.Close.ClosedCategoryID != "":
		if _, err := a.Session().ChannelEditComplex(ticket.ChannelID, &discordgo.ChannelEdit{
			ParentID: panel.Close.ClosedCategoryID,
		}); err != nil {
			return fmt.Errorf("error moving channel: %w", err)
		}
	default:
		// No closed category configured: the channel goes away with the
		// ticket record kept, so the interaction can only be answered
		// before the deletion.
		if err := respondEphemeral(a, i, messages.TicketClosed); err != nil {
			a.Log().Warn("Could not respond before deleting ticket channel", slog.String(logging.KeyError, err.Error()))
		}
		if _, err := a.Session().ChannelDelete(ticket.ChannelID); err != nil {
			return fmt.Errorf("error deleting channel: %w", err)
		}
		return nil
	}

	var components []discordgo.MessageComponent
	if *panel.Close.AllowReopen {
		components = []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    fmt.Sprintf("%s Reopen", ReopenEmoji),
						Style:    discordgo.SuccessButton,
						Disabled: false,
						Emoji:    discordgo.ComponentEmoji{},
						URL:      "",
						CustomID: TicketReopenButtonID,
					},
				},
			},
		}
	}

	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    fmt.Sprintf("<@%s>, %s", i.Member.User.ID, messages.TicketClosed),
			Components: components,
		},
	})
}

func reopenTicketProcessor(a IApp, i *discordgo.InteractionCreate, _ string) error {
	ticket, err := ticketForInteraction(a, i)
	if err != nil {
		return err
	}
	if ticket == nil {
		return respondEphemeral(a, i, "This channel is not a ticket.")
	}

	if ticket.Status != entities.TicketStatusClosed {
		return respondEphemeral(a, i, "This ticket is not closed.")
	}

	cfg, err := loadGuildConfig(a, context.Background(), i.GuildID)
	if err != nil {
		return fmt.Errorf("error getting guild configuration: %w", err)
	}
	panel := panelForTicket(cfg, ticket)

	if !*panel.Close.AllowReopen {
		return respondEphemeral(a, i, "This ticket cannot be reopened.")
	}

	if !canManageTicket(i, ticket, panel) {
		return respondEphemeral(a, i, "Only the ticket creator or staff can reopen this ticket.")
	}

	ticket.Status = entities.TicketStatusOpen
	ticket.ClosedAt = custom.Datetime{}

	if err := a.TicketDal().SaveTicket(context.Background(), ticket); err != nil {
		return fmt.Errorf("error saving ticket: %w", err)
	}

	switch {
	case ticket.ThreadID != "":
		archived := false
		locked := false
		if _, err := a.Session().ChannelEditComplex(ticket.ThreadID, &discordgo.ChannelEdit{
			Archived: &archived,
			Locked:   &locked,
		}); err != nil {
			return fmt.Errorf("error unarchiving thread: %w", err)
		}
	case panel.ParentCategoryID != "":
		if _, err := a.Session().ChannelEditComplex(ticket.ChannelID, &discordgo.ChannelEdit{
			ParentID: panel.ParentCategoryID,
		}); err != nil {
			return fmt.Errorf("error moving channel: %w", err)
		}
	}

	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("<@%s>, this ticket has been reopened.", i.Member.User.ID),
		},
	})
}
