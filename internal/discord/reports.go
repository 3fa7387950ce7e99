package discord

import (
	"bytes"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/hugotakeda/FinanceManagarDiscord/internal/chart"
	"github.com/hugotakeda/FinanceManagarDiscord/internal/pdfreport"
	"github.com/hugotakeda/FinanceManagarDiscord/internal/report"
	"github.com/hugotakeda/FinanceManagarDiscord/internal/storage"
)

// monthYearArgs resolves the optional month/year options, defaulting to the
// current month.
func monthYearArgs(i *discordgo.InteractionCreate) (time.Month, int, error) {
	opts := optionMap(i)
	now := time.Now()
	month := int(now.Month())
	year := now.Year()
	if o, ok := opts["month"]; ok {
		month = int(o.IntValue())
	}
	if o, ok := opts["year"]; ok {
		year = int(o.IntValue())
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("month %d out of range", month)
	}
	return time.Month(month), year, nil
}

func (b *Bot) handleSummary(s *discordgo.Session, i *discordgo.InteractionCreate) {
	month, year, err := monthYearArgs(i)
	if err != nil {
		respond(s, i, "The month must be between 1 and 12.")
		return
	}

	user, err := b.db.GetOrCreateUser(interactionUserID(i))
	if err != nil {
		replyStorageError(s, i, err)
		return
	}

	txs, err := b.db.TransactionsByMonth(user, year, month)
	if err != nil {
		replyStorageError(s, i, err)
		return
	}
	goals, err := b.db.Goals(user)
	if err != nil {
		replyStorageError(s, i, err)
		return
	}

	sum := report.MonthlySummary(txs)

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Financial Summary - %s %d", month.String(), year),
		Description: "Here is how your finances look for this period.",
		Color:       0x1abc9c,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Total Income", Value: fmt.Sprintf("$%.2f", sum.TotalIncome), Inline: true},
			{Name: "Total Expenses", Value: fmt.Sprintf("$%.2f", sum.TotalExpense), Inline: true},
			{Name: "Balance", Value: fmt.Sprintf("$%.2f", sum.Balance), Inline: true},
			{Name: "Expenses by Category", Value: categoryBreakdown(sum), Inline: false},
			{Name: "Goal Progress", Value: goalLines(goals), Inline: false},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Data from your finance bot."},
	}

	var files []*discordgo.File
	if len(sum.ExpenseByCategory) > 0 {
		png, err := chart.Pie(sum.ExpenseByCategory, fmt.Sprintf("Expense Breakdown - %s %d", month.String(), year))
		if err != nil {
			slog.Warn("failed to render expense chart", "error", err)
		} else {
			files = append(files, &discordgo.File{
				Name:        "expenses.png",
				ContentType: "image/png",
				Reader:      bytes.NewReader(png),
			})
		}
	}

	respondEmbed(s, i, embed, files...)
}

func (b *Bot) handleGoals(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user, err := b.db.GetOrCreateUser(interactionUserID(i))
	if err != nil {
		replyStorageError(s, i, err)
		return
	}

	goals, err := b.db.Goals(user)
	if err != nil {
		replyStorageError(s, i, err)
		return
	}
	if len(goals) == 0 {
		respond(s, i, "You have no goals yet.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "Your Savings Goals",
		Color: 0x3498db,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Use /contribute to add money, /complete_goal to finish, or /delete_goal to remove.",
		},
	}
	for _, g := range goals {
		status := fmt.Sprintf("%.1f%%", report.GoalProgress(g))
		if report.GoalDone(g) {
			status = "Completed ✅"
		}
		due := "Not set"
		if g.DueDate != nil {
			due = g.DueDate.Format(dueDateLayout)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: fmt.Sprintf("%s (ID: %d)", g.Name, g.ID),
			Value: fmt.Sprintf("Target: $%.2f\nCurrent: $%.2f\nProgress: %s\nDue: %s",
				g.TargetAmount, g.CurrentAmount, status, due),
		})
	}

	respondEmbed(s, i, embed)
}

func (b *Bot) handleExportPDF(s *discordgo.Session, i *discordgo.InteractionCreate) {
	month, year, err := monthYearArgs(i)
	if err != nil {
		respond(s, i, "The month must be between 1 and 12.")
		return
	}

	user, err := b.db.GetOrCreateUser(interactionUserID(i))
	if err != nil {
		replyStorageError(s, i, err)
		return
	}

	txs, err := b.db.TransactionsByMonth(user, year, month)
	if err != nil {
		replyStorageError(s, i, err)
		return
	}
	goals, err := b.db.Goals(user)
	if err != nil {
		replyStorageError(s, i, err)
		return
	}

	sum := report.MonthlySummary(txs)

	var chartPNG []byte
	if len(sum.ExpenseByCategory) > 0 {
		chartPNG, err = chart.Pie(sum.ExpenseByCategory, fmt.Sprintf("Expense Breakdown - %s %d", month.String(), year))
		if err != nil {
			slog.Warn("failed to render expense chart", "error", err)
			chartPNG = nil
		}
	}

	doc, err := pdfreport.Render(pdfreport.Report{
		Title:        fmt.Sprintf("Financial Report - %s %d", month.String(), year),
		Summary:      sum,
		Goals:        goals,
		Transactions: txs,
		ChartPNG:     chartPNG,
	})
	if err != nil {
		slog.Error("failed to render pdf report", "error", err)
		respond(s, i, "Something went wrong while generating your report. Please try again.")
		return
	}

	respondFile(s, i, "Your PDF report is ready!", &discordgo.File{
		Name:        fmt.Sprintf("financial_report_%d_%02d.pdf", year, int(month)),
		ContentType: "application/pdf",
		Reader:      bytes.NewReader(doc),
	})
}

func categoryBreakdown(sum report.Summary) string {
	if len(sum.ExpenseByCategory) == 0 {
		return "No expenses recorded this month."
	}
	names := make([]string, 0, len(sum.ExpenseByCategory))
	for name := range sum.ExpenseByCategory {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		fmt.Fprintf(&sb, "- %s: $%.2f\n", name, sum.ExpenseByCategory[name])
	}
	return sb.String()
}

func goalLines(goals []storage.Goal) string {
	if len(goals) == 0 {
		return "No goals recorded."
	}
	var sb strings.Builder
	for _, g := range goals {
		status := fmt.Sprintf("%.1f%% complete", report.GoalProgress(g))
		if report.GoalDone(g) {
			status = "Completed ✅"
		}
		fmt.Fprintf(&sb, "- %s: %s\n", g.Name, status)
	}
	return sb.String()
}
