package discord

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/hugotakeda/FinanceManagarDiscord/internal/config"
	"github.com/hugotakeda/FinanceManagarDiscord/internal/storage"
)

type Bot struct {
	session    *discordgo.Session
	db         *storage.Database
	guildID    string
	healthAddr string
	startTime  time.Time

	registered []*discordgo.ApplicationCommand
}

type commandHandler func(s *discordgo.Session, i *discordgo.InteractionCreate)

func NewBot(cfg *config.Config) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	db, err := storage.NewDatabase(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize the database: %w", err)
	}

	bot := &Bot{
		session:    session,
		db:         db,
		guildID:    cfg.DiscordGuildID,
		healthAddr: cfg.HealthAddr,
		startTime:  time.Now(),
	}

	session.AddHandler(bot.onReady)
	session.AddHandler(bot.handleInteraction)
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentGuildMessages

	return bot, nil
}

func (b *Bot) Start() error {
	// Start health check server
	go b.startHealthServer()

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	for _, cmd := range commands() {
		created, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.guildID, cmd)
		if err != nil {
			return fmt.Errorf("failed to register command %q: %w", cmd.Name, err)
		}
		b.registered = append(b.registered, created)
	}
	slog.Info("slash commands registered", "count", len(b.registered))
	return nil
}

func (b *Bot) Stop() {
	for _, cmd := range b.registered {
		if err := b.session.ApplicationCommandDelete(b.session.State.User.ID, b.guildID, cmd.ID); err != nil {
			slog.Warn("failed to remove command", "command", cmd.Name, "error", err)
		}
	}
	b.session.Close()
	if err := b.db.Close(); err != nil {
		slog.Warn("failed to close database", "error", err)
	}
}

func (b *Bot) onReady(s *discordgo.Session, _ *discordgo.Ready) {
	slog.Info("bot is online", "user", s.State.User.Username)
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	handler, ok := b.handlers()[name]
	if !ok {
		slog.Warn("unknown command", "command", name)
		return
	}
	handler(s, i)
}

func (b *Bot) handlers() map[string]commandHandler {
	return map[string]commandHandler{
		"add_expense":   b.handleAddExpense,
		"add_income":    b.handleAddIncome,
		"add_category":  b.handleAddCategory,
		"categories":    b.handleCategories,
		"del_category":  b.handleDeleteCategory,
		"create_goal":   b.handleCreateGoal,
		"contribute":    b.handleContribute,
		"complete_goal": b.handleCompleteGoal,
		"delete_goal":   b.handleDeleteGoal,
		"goals":         b.handleGoals,
		"summary":       b.handleSummary,
		"export_pdf":    b.handleExportPDF,
		"purge":         b.handlePurge,
		"help":          b.handleHelp,
	}
}

func commands() []*discordgo.ApplicationCommand {
	managePerms := int64(discordgo.PermissionManageMessages)
	return []*discordgo.ApplicationCommand{
		{
			Name:        "add_expense",
			Description: "Record a new expense.",
			Options: []*discordgo.ApplicationCommandOption{
				numberOption("amount", "Amount spent", true),
				stringOption("category", "Expense category", true),
				stringOption("description", "Optional description", false),
			},
		},
		{
			Name:        "add_income",
			Description: "Record a new income.",
			Options: []*discordgo.ApplicationCommandOption{
				numberOption("amount", "Amount received", true),
				stringOption("source", "Income source", true),
				stringOption("description", "Optional description", false),
			},
		},
		{
			Name:        "add_category",
			Description: "Add a new expense category.",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("name", "Category name", true),
			},
		},
		{
			Name:        "categories",
			Description: "List your expense categories.",
		},
		{
			Name:        "del_category",
			Description: "Delete a category and every expense recorded under it.",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("name", "Category name", true),
			},
		},
		{
			Name:        "create_goal",
			Description: "Create a new savings goal.",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("name", "Goal name", true),
				numberOption("target", "Amount you want to reach", true),
				stringOption("due_date", "Deadline (DD/MM/YYYY, optional)", false),
			},
		},
		{
			Name:        "contribute",
			Description: "Add money to an existing goal.",
			Options: []*discordgo.ApplicationCommandOption{
				integerOption("goal_id", "Goal ID", true),
				numberOption("amount", "Amount to add", true),
			},
		},
		{
			Name:        "complete_goal",
			Description: "Mark a goal as fully completed.",
			Options: []*discordgo.ApplicationCommandOption{
				integerOption("goal_id", "Goal ID", true),
			},
		},
		{
			Name:        "delete_goal",
			Description: "Delete an existing goal.",
			Options: []*discordgo.ApplicationCommandOption{
				integerOption("goal_id", "Goal ID", true),
			},
		},
		{
			Name:        "goals",
			Description: "List your savings goals and their progress.",
		},
		{
			Name:        "summary",
			Description: "Show a financial summary for a month.",
			Options: []*discordgo.ApplicationCommandOption{
				integerOption("month", "Month (1-12, defaults to current)", false),
				integerOption("year", "Year (defaults to current)", false),
			},
		},
		{
			Name:        "export_pdf",
			Description: "Generate a monthly financial report as PDF.",
			Options: []*discordgo.ApplicationCommandOption{
				integerOption("month", "Month (1-12, defaults to current)", false),
				integerOption("year", "Year (defaults to current)", false),
			},
		},
		{
			Name:                     "purge",
			Description:              "Delete a number of recent messages in this channel.",
			DefaultMemberPermissions: &managePerms,
			Options: []*discordgo.ApplicationCommandOption{
				integerOption("count", "Number of messages to delete (max 100)", true),
			},
		},
		{
			Name:        "help",
			Description: "Show every command the bot understands.",
		},
	}
}

func stringOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        name,
		Description: description,
		Required:    required,
	}
}

func numberOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionNumber,
		Name:        name,
		Description: description,
		Required:    required,
	}
}

func integerOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        name,
		Description: description,
		Required:    required,
	}
}

func optionMap(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	opts := i.ApplicationCommandData().Options
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, o := range opts {
		m[o.Name] = o
	}
	return m
}

// interactionUserID covers both guild and DM invocations.
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
	if err != nil {
		slog.Error("failed to respond to interaction", "error", err)
	}
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		slog.Error("failed to respond to interaction", "error", err)
	}
}

func respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, files ...*discordgo.File) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Files:  files,
		},
	})
	if err != nil {
		slog.Error("failed to respond to interaction", "error", err)
	}
}

func respondFile(s *discordgo.Session, i *discordgo.InteractionCreate, content string, file *discordgo.File) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Files:   []*discordgo.File{file},
		},
	})
	if err != nil {
		slog.Error("failed to respond to interaction", "error", err)
	}
}

// replyStorageError is the catch-all for unexpected persistence failures:
// log the detail, tell the user something generic, never retry.
func replyStorageError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	slog.Error("storage operation failed", "command", i.ApplicationCommandData().Name, "error", err)
	respond(s, i, "Something went wrong while saving your data. Please try again.")
}

func (b *Bot) startHealthServer() {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		connected := b.session != nil && b.session.State != nil
		status := "healthy"
		code := http.StatusOK
		if !connected {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]any{
			"status":            status,
			"uptime":            time.Since(b.startTime).String(),
			"discord_connected": connected,
			"timestamp":         time.Now().Format(time.RFC3339),
		})
	})

	if err := http.ListenAndServe(b.healthAddr, mux); err != nil {
		slog.Error("health server stopped", "error", err)
	}
}
