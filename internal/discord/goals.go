package discord

import (
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/hugotakeda/FinanceManagarDiscord/internal/storage"
)

const dueDateLayout = "02/01/2006"

func (b *Bot) handleCreateGoal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	name := opts["name"].StringValue()
	target := opts["target"].FloatValue()

	var dueDate *time.Time
	if o, ok := opts["due_date"]; ok {
		parsed, err := time.Parse(dueDateLayout, o.StringValue())
		if err != nil {
			respond(s, i, "Invalid date format. Use DD/MM/YYYY.")
			return
		}
		dueDate = &parsed
	}

	user, err := b.db.GetOrCreateUser(interactionUserID(i))
	if err != nil {
		replyStorageError(s, i, err)
		return
	}

	goal, err := b.db.CreateGoal(user, name, target, dueDate)
	switch {
	case errors.Is(err, storage.ErrGoalExists):
		respond(s, i, fmt.Sprintf("A goal named '%s' already exists.", name))
		return
	case errors.Is(err, storage.ErrInvalidAmount):
		respond(s, i, "The target amount must be greater than zero.")
		return
	case err != nil:
		replyStorageError(s, i, err)
		return
	}

	respond(s, i, fmt.Sprintf("Goal '%s' of $%.2f created (ID: %d).", goal.Name, goal.TargetAmount, goal.ID))
}

func (b *Bot) handleContribute(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	goalID := uint(opts["goal_id"].IntValue())
	amount := opts["amount"].FloatValue()

	user, err := b.db.GetOrCreateUser(interactionUserID(i))
	if err != nil {
		replyStorageError(s, i, err)
		return
	}

	goal, completedNow, err := b.db.ContributeToGoal(user, goalID, amount)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		respond(s, i, "Goal not found, or it does not belong to you.")
		return
	case errors.Is(err, storage.ErrInvalidAmount):
		respond(s, i, "The contribution must be greater than zero.")
		return
	case err != nil:
		replyStorageError(s, i, err)
		return
	}

	if completedNow {
		respond(s, i, fmt.Sprintf("You contributed $%.2f to '%s'. Goal completed! 🎉", amount, goal.Name))
		return
	}
	respond(s, i, fmt.Sprintf("You contributed $%.2f to '%s'. Progress: $%.2f of $%.2f.",
		amount, goal.Name, goal.CurrentAmount, goal.TargetAmount))
}

func (b *Bot) handleCompleteGoal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	goalID := uint(optionMap(i)["goal_id"].IntValue())

	user, err := b.db.GetOrCreateUser(interactionUserID(i))
	if err != nil {
		replyStorageError(s, i, err)
		return
	}

	goal, err := b.db.CompleteGoal(user, goalID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		respond(s, i, "Goal not found, or it does not belong to you.")
		return
	case errors.Is(err, storage.ErrGoalCompleted):
		respond(s, i, "That goal is already marked as completed.")
		return
	case err != nil:
		replyStorageError(s, i, err)
		return
	}

	respond(s, i, fmt.Sprintf("Goal '%s' marked as completed! ✅", goal.Name))
}

func (b *Bot) handleDeleteGoal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	goalID := uint(optionMap(i)["goal_id"].IntValue())

	user, err := b.db.GetOrCreateUser(interactionUserID(i))
	if err != nil {
		replyStorageError(s, i, err)
		return
	}

	goal, err := b.db.DeleteGoal(user, goalID)
	if errors.Is(err, storage.ErrNotFound) {
		respond(s, i, "Goal not found, or it does not belong to you.")
		return
	}
	if err != nil {
		replyStorageError(s, i, err)
		return
	}

	respond(s, i, fmt.Sprintf("Goal '%s' deleted.", goal.Name))
}
