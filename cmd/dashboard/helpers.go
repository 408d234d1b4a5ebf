package main

import (
	"strings"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/lobo-bot/lobo/pkg/messages"
)

func respondError(a IApp, i *discordgo.InteractionCreate) error {
	return respondEphemeral(a, i, messages.ErrUserErrorProcessing)
}

func respondEphemeral(a IApp, i *discordgo.InteractionCreate, content string) error {
	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// hasAnyRole reports whether the member carries at least one of the roles.
func hasAnyRole(member *discordgo.Member, roleIDs []string) bool {
	for _, want := range roleIDs {
		for _, have := range member.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// customID builds a component custom ID carrying an argument, such as the
// panel index an intake button belongs to.
func customID(name, arg string) string {
	if arg == "" {
		return name
	}
	return name + ":" + arg
}

// splitCustomID splits a component custom ID into its name and argument.
func splitCustomID(id string) (name, arg string) {
	name, arg, _ = strings.Cut(id, ":")
	return name, arg
}
