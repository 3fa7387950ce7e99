package discord

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/hugotakeda/FinanceManagarDiscord/internal/storage"
)

func (b *Bot) handleAddExpense(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	amount := opts["amount"].FloatValue()
	category := opts["category"].StringValue()
	description := ""
	if o, ok := opts["description"]; ok {
		description = o.StringValue()
	}

	user, err := b.db.GetOrCreateUser(interactionUserID(i))
	if err != nil {
		replyStorageError(s, i, err)
		return
	}

	// An unseen category is created on the fly; a duplicate is fine.
	if _, err := b.db.AddCategory(user, category); err != nil && !errors.Is(err, storage.ErrCategoryExists) {
		replyStorageError(s, i, err)
		return
	}

	tx, err := b.db.AddTransaction(user, storage.KindExpense, amount, category, "", description, time.Time{})
	if err != nil {
		if errors.Is(err, storage.ErrInvalidAmount) {
			respond(s, i, "The amount must be greater than zero.")
			return
		}
		replyStorageError(s, i, err)
		return
	}

	respond(s, i, fmt.Sprintf("Recorded expense of $%.2f in '%s'.", tx.Amount, tx.Category))
}

func (b *Bot) handleAddIncome(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	amount := opts["amount"].FloatValue()
	source := opts["source"].StringValue()
	description := ""
	if o, ok := opts["description"]; ok {
		description = o.StringValue()
	}

	user, err := b.db.GetOrCreateUser(interactionUserID(i))
	if err != nil {
		replyStorageError(s, i, err)
		return
	}

	tx, err := b.db.AddTransaction(user, storage.KindIncome, amount, "", source, description, time.Time{})
	if err != nil {
		if errors.Is(err, storage.ErrInvalidAmount) {
			respond(s, i, "The amount must be greater than zero.")
			return
		}
		replyStorageError(s, i, err)
		return
	}

	respond(s, i, fmt.Sprintf("Recorded income of $%.2f from '%s'.", tx.Amount, tx.Source))
}

func (b *Bot) handleAddCategory(s *discordgo.Session, i *discordgo.InteractionCreate) {
	name := optionMap(i)["name"].StringValue()

	user, err := b.db.GetOrCreateUser(interactionUserID(i))
	if err != nil {
		replyStorageError(s, i, err)
		return
	}

	cat, err := b.db.AddCategory(user, name)
	if errors.Is(err, storage.ErrCategoryExists) {
		respond(s, i, fmt.Sprintf("The category '%s' already exists.", strings.ToLower(name)))
		return
	}
	if err != nil {
		replyStorageError(s, i, err)
		return
	}

	respond(s, i, fmt.Sprintf("Category '%s' added.", cat.Name))
}

func (b *Bot) handleCategories(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user, err := b.db.GetOrCreateUser(interactionUserID(i))
	if err != nil {
		replyStorageError(s, i, err)
		return
	}

	cats, err := b.db.Categories(user)
	if err != nil {
		replyStorageError(s, i, err)
		return
	}
	if len(cats) == 0 {
		respond(s, i, "You have no categories yet.")
		return
	}

	var sb strings.Builder
	for _, c := range cats {
		sb.WriteString("- " + c.Name + "\n")
	}

	respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "Your Expense Categories",
		Description: sb.String(),
		Color:       0x9b59b6,
	})
}

func (b *Bot) handleDeleteCategory(s *discordgo.Session, i *discordgo.InteractionCreate) {
	name := optionMap(i)["name"].StringValue()

	user, err := b.db.GetOrCreateUser(interactionUserID(i))
	if err != nil {
		replyStorageError(s, i, err)
		return
	}

	err = b.db.DeleteCategory(user, name)
	if errors.Is(err, storage.ErrNotFound) {
		respond(s, i, fmt.Sprintf("The category '%s' was not found.", strings.ToLower(name)))
		return
	}
	if err != nil {
		replyStorageError(s, i, err)
		return
	}

	respond(s, i, fmt.Sprintf("Category '%s' and its expenses were deleted.", strings.ToLower(name)))
}
