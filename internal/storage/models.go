package storage

import (
	"time"

	"gorm.io/gorm"
)

// Transaction kinds.
const (
	KindExpense = "expense"
	KindIncome  = "income"
)

// User is one Discord account tracked by the bot, created lazily on first
// interaction and keyed by the opaque Discord user ID.
type User struct {
	gorm.Model
	DiscordID string `gorm:"uniqueIndex;not null"`

	Transactions []Transaction
	Categories   []Category
	Goals        []Goal
}

// Transaction is a single recorded expense or income. Category is set for
// expenses, Source for income; the two never appear together. Transactions
// are immutable once written.
type Transaction struct {
	gorm.Model
	UserID      uint   `gorm:"index;not null"`
	Kind        string `gorm:"size:16;not null"`
	Amount      float64
	Category    string `gorm:"index"`
	Source      string
	Description string
	Date        time.Time `gorm:"index"`
}

// Category is a per-user expense category. Names are stored lowercase and
// must be unique per user.
type Category struct {
	gorm.Model
	UserID uint   `gorm:"index;not null"`
	Name   string `gorm:"not null"`
}

// Goal is a savings goal. CurrentAmount only grows through contributions;
// it may exceed TargetAmount once the goal is completed.
type Goal struct {
	gorm.Model
	UserID        uint   `gorm:"index;not null"`
	Name          string `gorm:"not null"`
	TargetAmount  float64
	CurrentAmount float64
	DueDate       *time.Time
	Completed     bool
}
