package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) handleHelp(s *discordgo.Session, i *discordgo.InteractionCreate) {
	finance := []string{
		"`/add_expense <amount> <category> [description]` - Record a new expense.",
		"`/add_income <amount> <source> [description]` - Record a new income.",
		"`/add_category <name>` - Add a new expense category.",
		"`/categories` - List all your expense categories.",
		"`/del_category <name>` - Delete a category and its expenses.",
	}
	goals := []string{
		"`/create_goal <name> <target> [due_date]` - Create a new savings goal.",
		"`/contribute <goal_id> <amount>` - Add money to an existing goal.",
		"`/complete_goal <goal_id>` - Mark a goal as completed.",
		"`/delete_goal <goal_id>` - Delete an existing goal.",
	}
	reports := []string{
		"`/summary [month] [year]` - Monthly summary with an expense chart.",
		"`/goals` - List all your goals and their progress.",
		"`/export_pdf [month] [year]` - Generate a detailed monthly PDF report.",
	}
	admin := []string{
		"`/purge <count>` - Delete recent messages in this channel (max 100).",
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Finance Bot Command Guide 📈",
		Description: "Everything you can do to manage your finances. Type `/` in Discord to browse the commands.",
		Color:       0x3498db,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "💰 Finance", Value: strings.Join(finance, "\n")},
			{Name: "🎯 Savings Goals", Value: strings.Join(goals, "\n")},
			{Name: "📊 Reports", Value: strings.Join(reports, "\n")},
			{Name: "🛠️ Administration", Value: strings.Join(admin, "\n")},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Feel free to explore and manage your finances!"},
	}

	respondEmbed(s, i, embed)
}
