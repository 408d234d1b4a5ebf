package main

import (
	"context"
	"fmt"

	"github.com/Jacobbrewer1/discordgo"

	"github.com/lobo-bot/lobo/cmd/dashboard/monitoring"
)

const (
	// setupCmdName is the command for all configuration commands.
	setupCmdName = "setup"

	// deployPanelCmdName is the sub command for deploying a panel intake
	// message from inside the guild.
	deployPanelCmdName = "deploy_panel"

	// disablePanelCmdName is the sub command for disabling a panel.
	disablePanelCmdName = "disable_panel"

	// channelOptName is the name of the channel option.
	channelOptName = "channel"

	// panelOptName is the name of the panel index option.
	panelOptName = "panel"
)

// setupCmd is the command for all configuration commands. The dashboard
// is the primary editor; these sub commands cover the common actions
// without leaving the guild.
var setupCmd = &discordgo.ApplicationCommand{
	Name:        setupCmdName,
	Type:        discordgo.ChatApplicationCommand,
	Description: "This is the command for all configuration commands.",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Name:        deployPanelCmdName,
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Description: "This deploys a ticket panel to the channel you specify.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        channelOptName,
					Type:        discordgo.ApplicationCommandOptionChannel,
					Description: "This is the channel you want the panel message in.",
					Required:    true,
				},
				{
					Name:        panelOptName,
					Type:        discordgo.ApplicationCommandOptionInteger,
					Description: "This is the number of the panel to deploy, starting at 1.",
					Required:    true,
				},
			},
		},
		{
			Name:        disablePanelCmdName,
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Description: "This disables a ticket panel so it stops accepting new tickets.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        panelOptName,
					Type:        discordgo.ApplicationCommandOptionInteger,
					Description: "This is the number of the panel to disable, starting at 1.",
					Required:    true,
				},
			},
		},
	},
}

func setupCmdController(a IApp, i *discordgo.InteractionCreate) (commandProcessor, error) {
	// Ensure the user is an administrator.
	if i.Member.Permissions&discordgo.PermissionAdministrator != discordgo.PermissionAdministrator {
		err := respondEphemeral(a, i, "You must be an administrator to use this command")
		if err != nil {
			return nil, nil
		}
		return nil, nil
	}

	subCmd := i.ApplicationCommandData().Options[0].Name

	switch subCmd {
	case deployPanelCmdName:
		return deployPanelCmdController, nil
	case disablePanelCmdName:
		return disablePanelCmdController, nil
	default:
		return nil, fmt.Errorf("unhandled sub command %s", subCmd)
	}
}

// deployPanelCmdController deploys a panel intake message to the chosen
// channel, editing the previously deployed message when one exists.
func deployPanelCmdController(a IApp, i *discordgo.InteractionCreate) error {
	opts := i.ApplicationCommandData().Options[0].Options

	channel := opts[0].ChannelValue(a.Session())
	index := int(opts[1].IntValue()) - 1

	if channel.Type != discordgo.ChannelTypeGuildText {
		return respondEphemeral(a, i, "You must provide a text channel for the panel message.")
	}

	cfg, err := loadGuildConfig(a, context.Background(), i.GuildID)
	if err != nil {
		return fmt.Errorf("error getting guild configuration: %w", err)
	}

	if index < 0 || index >= len(cfg.Ticket.Panels) {
		return respondEphemeral(a, i, "That panel does not exist.")
	}

	panel := &cfg.Ticket.Panels[index]
	panel.Deploy.ChannelID = channel.ID

	msg, err := deployMessage(a, channel.ID, panel.Deploy.MessageID, buildPanelIntakeMessage(*panel, index))
	if err != nil {
		return fmt.Errorf("error deploying panel: %w", err)
	}
	panel.Deploy.MessageID = msg.ID

	if err := a.GuildDal().SaveConfig(context.Background(), cfg); err != nil {
		return fmt.Errorf("error saving guild configuration: %w", err)
	}

	monitoring.TotalPanelDeploys.Inc()

	if err := respondEphemeral(a, i, fmt.Sprintf("Panel **%s** has been deployed in channel <#%s>", panel.PanelName, channel.ID)); err != nil {
		return fmt.Errorf("error responding to interaction: %w", err)
	}
	return nil
}

// disablePanelCmdController disables a panel. A deployed intake message
// is redeployed so its open button greys out straight away.
func disablePanelCmdController(a IApp, i *discordgo.InteractionCreate) error {
	opts := i.ApplicationCommandData().Options[0].Options

	index := int(opts[0].IntValue()) - 1

	cfg, err := loadGuildConfig(a, context.Background(), i.GuildID)
	if err != nil {
		return fmt.Errorf("error getting guild configuration: %w", err)
	}

	if index < 0 || index >= len(cfg.Ticket.Panels) {
		return respondEphemeral(a, i, "That panel does not exist.")
	}

	panel := &cfg.Ticket.Panels[index]
	disabled := false
	panel.Enabled = &disabled

	if panel.Deploy.ChannelID != "" && panel.Deploy.MessageID != "" {
		msg, err := deployMessage(a, panel.Deploy.ChannelID, panel.Deploy.MessageID, buildPanelIntakeMessage(*panel, index))
		if err != nil {
			return fmt.Errorf("error redeploying panel: %w", err)
		}
		panel.Deploy.MessageID = msg.ID
	}

	if err := a.GuildDal().SaveConfig(context.Background(), cfg); err != nil {
		return fmt.Errorf("error saving guild configuration: %w", err)
	}

	if err := respondEphemeral(a, i, fmt.Sprintf("Panel **%s** has been disabled", panel.PanelName)); err != nil {
		return fmt.Errorf("error responding to interaction: %w", err)
	}
	return nil
}
