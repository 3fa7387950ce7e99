package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Discord refuses bulk deletes above this.
const purgeLimit = 100

func (b *Bot) handlePurge(s *discordgo.Session, i *discordgo.InteractionCreate) {
	count := int(optionMap(i)["count"].IntValue())

	if count <= 0 {
		respondEphemeral(s, i, "Please provide a positive number of messages to delete.")
		return
	}
	if count > purgeLimit {
		respondEphemeral(s, i, fmt.Sprintf("I cannot delete more than %d messages at a time.", purgeLimit))
		return
	}
	if i.Member == nil || i.Member.Permissions&discordgo.PermissionManageMessages == 0 {
		respondEphemeral(s, i, "You need the Manage Messages permission to do that.")
		return
	}

	msgs, err := s.ChannelMessages(i.ChannelID, count, "", "", "")
	if err != nil {
		respondEphemeral(s, i, fmt.Sprintf("Failed to fetch messages: %v", err))
		return
	}

	ids := make([]string, 0, len(msgs))
	for _, m := range msgs {
		ids = append(ids, m.ID)
	}
	if err := s.ChannelMessagesBulkDelete(i.ChannelID, ids); err != nil {
		respondEphemeral(s, i, "I could not delete messages in this channel. Make sure I have the Manage Messages permission.")
		return
	}

	respondEphemeral(s, i, fmt.Sprintf("Deleted **%d** messages in this channel.", len(ids)))
}
