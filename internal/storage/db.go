package storage

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Database struct {
	db *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&User{}, &Transaction{}, &Category{}, &Goal{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &Database{db: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetOrCreateUser returns the user for a Discord ID, creating the record on
// first sight. Idempotent.
func (d *Database) GetOrCreateUser(discordID string) (*User, error) {
	var user User
	if err := d.db.Where(User{DiscordID: discordID}).FirstOrCreate(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to get or create user: %w", err)
	}
	return &user, nil
}

// AddTransaction records one expense or income for a user. Expenses keep
// their category (lowercased), income keeps its source. A zero date means
// "now".
func (d *Database) AddTransaction(user *User, kind string, amount float64, category, source, description string, date time.Time) (*Transaction, error) {
	if kind != KindExpense && kind != KindIncome {
		return nil, ErrInvalidKind
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if date.IsZero() {
		date = time.Now()
	}

	tx := Transaction{
		UserID:      user.ID,
		Kind:        kind,
		Amount:      amount,
		Description: description,
		Date:        date,
	}
	switch kind {
	case KindExpense:
		tx.Category = normalizeName(category)
	case KindIncome:
		tx.Source = source
	}

	if err := d.db.Create(&tx).Error; err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}
	return &tx, nil
}

// TransactionsByMonth returns the user's transactions with a date in the
// half-open range [first of month, first of next month), oldest first.
func (d *Database) TransactionsByMonth(user *User, year int, month time.Month) ([]Transaction, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	var end time.Time
	if month == time.December {
		end = time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.Local)
	} else {
		end = time.Date(year, month+1, 1, 0, 0, 0, 0, time.Local)
	}

	var txs []Transaction
	err := d.db.
		Where("user_id = ? AND date >= ? AND date < ?", user.ID, start, end).
		Order("date asc").
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}

// AddCategory creates a category for the user. Names are compared
// case-insensitively; a duplicate returns ErrCategoryExists, which callers
// may treat as informational.
func (d *Database) AddCategory(user *User, name string) (*Category, error) {
	name = normalizeName(name)
	var cat Category
	err := d.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Category{}).Where("user_id = ? AND name = ?", user.ID, name).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to look up category: %w", err)
		}
		if count > 0 {
			return ErrCategoryExists
		}
		cat = Category{UserID: user.ID, Name: name}
		if err := tx.Create(&cat).Error; err != nil {
			return fmt.Errorf("failed to save category: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// Categories lists the user's categories ordered by name for stable display.
func (d *Database) Categories(user *User) ([]Category, error) {
	var cats []Category
	if err := d.db.Where("user_id = ?", user.ID).Order("name asc").Find(&cats).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return cats, nil
}

// DeleteCategory removes a category and every expense transaction of the
// user that references it. Both deletes happen in one transaction so a
// partial cascade is never observable.
func (d *Database) DeleteCategory(user *User, name string) error {
	name = normalizeName(name)
	return d.db.Transaction(func(tx *gorm.DB) error {
		var cat Category
		if err := tx.Where("user_id = ? AND name = ?", user.ID, name).First(&cat).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to look up category: %w", err)
		}
		if err := tx.Where("user_id = ? AND kind = ? AND category = ?", user.ID, KindExpense, name).
			Delete(&Transaction{}).Error; err != nil {
			return fmt.Errorf("failed to delete category transactions: %w", err)
		}
		if err := tx.Delete(&cat).Error; err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		return nil
	})
}

// CreateGoal creates a savings goal. Goal names are unique per user.
func (d *Database) CreateGoal(user *User, name string, targetAmount float64, dueDate *time.Time) (*Goal, error) {
	if targetAmount <= 0 {
		return nil, ErrInvalidAmount
	}
	var goal Goal
	err := d.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Goal{}).Where("user_id = ? AND name = ?", user.ID, name).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to look up goal: %w", err)
		}
		if count > 0 {
			return ErrGoalExists
		}
		goal = Goal{
			UserID:       user.ID,
			Name:         name,
			TargetAmount: targetAmount,
			DueDate:      dueDate,
		}
		if err := tx.Create(&goal).Error; err != nil {
			return fmt.Errorf("failed to save goal: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// Goals lists the user's goals in creation order.
func (d *Database) Goals(user *User) ([]Goal, error) {
	var goals []Goal
	if err := d.db.Where("user_id = ?", user.ID).Order("id asc").Find(&goals).Error; err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, nil
}

// ContributeToGoal adds amount to a goal's current value. The returned flag
// is true only when this contribution crossed the target; a completed goal
// keeps accepting contributions and may overshoot its target.
func (d *Database) ContributeToGoal(user *User, goalID uint, amount float64) (*Goal, bool, error) {
	if amount <= 0 {
		return nil, false, ErrInvalidAmount
	}
	var goal Goal
	completedNow := false
	err := d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", goalID, user.ID).First(&goal).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to look up goal: %w", err)
		}
		goal.CurrentAmount += amount
		if !goal.Completed && goal.CurrentAmount >= goal.TargetAmount {
			goal.Completed = true
			completedNow = true
		}
		if err := tx.Save(&goal).Error; err != nil {
			return fmt.Errorf("failed to update goal: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &goal, completedNow, nil
}

// CompleteGoal marks a goal as done, forcing its current value up to the
// target.
func (d *Database) CompleteGoal(user *User, goalID uint) (*Goal, error) {
	var goal Goal
	err := d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", goalID, user.ID).First(&goal).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to look up goal: %w", err)
		}
		if goal.Completed {
			return ErrGoalCompleted
		}
		goal.CurrentAmount = goal.TargetAmount
		goal.Completed = true
		if err := tx.Save(&goal).Error; err != nil {
			return fmt.Errorf("failed to update goal: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// DeleteGoal removes one of the user's goals. The deleted goal is returned
// so callers can name it in their reply.
func (d *Database) DeleteGoal(user *User, goalID uint) (*Goal, error) {
	var goal Goal
	err := d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", goalID, user.ID).First(&goal).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to look up goal: %w", err)
		}
		if err := tx.Delete(&goal).Error; err != nil {
			return fmt.Errorf("failed to delete goal: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
