package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// DatabaseTestSuite exercises the data store against a throwaway sqlite file.
type DatabaseTestSuite struct {
	suite.Suite
	db *Database
}

func (s *DatabaseTestSuite) SetupTest() {
	db, err := NewDatabase(filepath.Join(s.T().TempDir(), "test.db"))
	require.NoError(s.T(), err, "failed to create test database")
	s.db = db
}

func (s *DatabaseTestSuite) TearDownTest() {
	if s.db != nil {
		s.db.Close()
	}
}

func (s *DatabaseTestSuite) TestGetOrCreateUserIdempotent() {
	first, err := s.db.GetOrCreateUser("123456")
	require.NoError(s.T(), err)

	second, err := s.db.GetOrCreateUser("123456")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), first.ID, second.ID, "same discord id must map to the same user")

	other, err := s.db.GetOrCreateUser("654321")
	require.NoError(s.T(), err)
	assert.NotEqual(s.T(), first.ID, other.ID)
}

func (s *DatabaseTestSuite) TestAddTransactionValidation() {
	user, err := s.db.GetOrCreateUser("u1")
	require.NoError(s.T(), err)

	_, err = s.db.AddTransaction(user, KindExpense, 0, "food", "", "", time.Time{})
	assert.ErrorIs(s.T(), err, ErrInvalidAmount)

	_, err = s.db.AddTransaction(user, KindExpense, -5, "food", "", "", time.Time{})
	assert.ErrorIs(s.T(), err, ErrInvalidAmount)

	_, err = s.db.AddTransaction(user, "transfer", 10, "", "", "", time.Time{})
	assert.ErrorIs(s.T(), err, ErrInvalidKind)
}

func (s *DatabaseTestSuite) TestAddTransactionNormalizesFields() {
	user, err := s.db.GetOrCreateUser("u1")
	require.NoError(s.T(), err)

	expense, err := s.db.AddTransaction(user, KindExpense, 12.50, "FOOD", "ignored", "lunch", time.Time{})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "food", expense.Category)
	assert.Empty(s.T(), expense.Source, "expenses must not carry a source")
	assert.False(s.T(), expense.Date.IsZero(), "zero date defaults to now")

	income, err := s.db.AddTransaction(user, KindIncome, 100, "ignored", "salary", "", time.Time{})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "salary", income.Source)
	assert.Empty(s.T(), income.Category, "income must not carry a category")
}

func (s *DatabaseTestSuite) TestTransactionsByMonthHalfOpenRange() {
	user, err := s.db.GetOrCreateUser("u1")
	require.NoError(s.T(), err)

	// Amounts double as markers so order can be checked regardless of how
	// the driver round-trips timezones.
	entries := []struct {
		amount float64
		date   time.Time
	}{
		{1, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local)},
		{3, time.Date(2025, time.January, 31, 23, 59, 59, 0, time.Local)},
		{2, time.Date(2025, time.January, 15, 12, 0, 0, 0, time.Local)},
		{4, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.Local)},
		{5, time.Date(2024, time.December, 31, 23, 59, 59, 0, time.Local)},
	}
	for _, e := range entries {
		_, err := s.db.AddTransaction(user, KindExpense, e.amount, "food", "", "", e.date)
		require.NoError(s.T(), err)
	}

	txs, err := s.db.TransactionsByMonth(user, 2025, time.January)
	require.NoError(s.T(), err)
	require.Len(s.T(), txs, 3, "only January transactions are in range")

	// Ordered by date ascending.
	assert.Equal(s.T(), 1.0, txs[0].Amount)
	assert.Equal(s.T(), 2.0, txs[1].Amount)
	assert.Equal(s.T(), 3.0, txs[2].Amount)
}

func (s *DatabaseTestSuite) TestTransactionsByMonthDecemberRollover() {
	user, err := s.db.GetOrCreateUser("u1")
	require.NoError(s.T(), err)

	_, err = s.db.AddTransaction(user, KindExpense, 10, "gifts", "", "",
		time.Date(2024, time.December, 31, 22, 0, 0, 0, time.Local))
	require.NoError(s.T(), err)
	_, err = s.db.AddTransaction(user, KindExpense, 20, "gifts", "", "",
		time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local))
	require.NoError(s.T(), err)

	txs, err := s.db.TransactionsByMonth(user, 2024, time.December)
	require.NoError(s.T(), err)
	require.Len(s.T(), txs, 1)
	assert.Equal(s.T(), 10.0, txs[0].Amount, "January 1st falls outside December")
}

func (s *DatabaseTestSuite) TestAddCategoryCaseInsensitiveDuplicate() {
	user, err := s.db.GetOrCreateUser("u1")
	require.NoError(s.T(), err)

	cat, err := s.db.AddCategory(user, "Food")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "food", cat.Name, "names are stored lowercase")

	_, err = s.db.AddCategory(user, "FOOD")
	assert.ErrorIs(s.T(), err, ErrCategoryExists)

	// The same name is fine for a different user.
	other, err := s.db.GetOrCreateUser("u2")
	require.NoError(s.T(), err)
	_, err = s.db.AddCategory(other, "food")
	assert.NoError(s.T(), err)
}

func (s *DatabaseTestSuite) TestCategoriesOrderedByName() {
	user, err := s.db.GetOrCreateUser("u1")
	require.NoError(s.T(), err)

	for _, name := range []string{"travel", "food", "rent"} {
		_, err := s.db.AddCategory(user, name)
		require.NoError(s.T(), err)
	}

	cats, err := s.db.Categories(user)
	require.NoError(s.T(), err)
	require.Len(s.T(), cats, 3)
	assert.Equal(s.T(), "food", cats[0].Name)
	assert.Equal(s.T(), "rent", cats[1].Name)
	assert.Equal(s.T(), "travel", cats[2].Name)
}

func (s *DatabaseTestSuite) TestDeleteCategoryCascadesExactly() {
	u1, err := s.db.GetOrCreateUser("u1")
	require.NoError(s.T(), err)
	u2, err := s.db.GetOrCreateUser("u2")
	require.NoError(s.T(), err)

	_, err = s.db.AddCategory(u1, "food")
	require.NoError(s.T(), err)
	_, err = s.db.AddCategory(u2, "food")
	require.NoError(s.T(), err)

	jan := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.Local)
	_, err = s.db.AddTransaction(u1, KindExpense, 50, "food", "", "", jan)
	require.NoError(s.T(), err)
	_, err = s.db.AddTransaction(u1, KindExpense, 20, "food", "", "", jan)
	require.NoError(s.T(), err)
	_, err = s.db.AddTransaction(u1, KindExpense, 30, "travel", "", "", jan)
	require.NoError(s.T(), err)
	_, err = s.db.AddTransaction(u1, KindIncome, 100, "", "salary", "", jan)
	require.NoError(s.T(), err)
	_, err = s.db.AddTransaction(u2, KindExpense, 75, "food", "", "", jan)
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.db.DeleteCategory(u1, "Food"))

	txs, err := s.db.TransactionsByMonth(u1, 2025, time.January)
	require.NoError(s.T(), err)
	require.Len(s.T(), txs, 2, "only u1's food expenses are removed")
	for _, tx := range txs {
		assert.NotEqual(s.T(), "food", tx.Category)
	}

	otherTxs, err := s.db.TransactionsByMonth(u2, 2025, time.January)
	require.NoError(s.T(), err)
	assert.Len(s.T(), otherTxs, 1, "the other user's data is untouched")

	cats, err := s.db.Categories(u1)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), cats)

	err = s.db.DeleteCategory(u1, "food")
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *DatabaseTestSuite) TestCreateGoalDuplicateName() {
	user, err := s.db.GetOrCreateUser("u1")
	require.NoError(s.T(), err)

	goal, err := s.db.CreateGoal(user, "vacation", 1000, nil)
	require.NoError(s.T(), err)

	_, err = s.db.CreateGoal(user, "vacation", 2000, nil)
	assert.ErrorIs(s.T(), err, ErrGoalExists)

	goals, err := s.db.Goals(user)
	require.NoError(s.T(), err)
	require.Len(s.T(), goals, 1)
	assert.Equal(s.T(), goal.TargetAmount, goals[0].TargetAmount, "existing goal is unchanged")
}

func (s *DatabaseTestSuite) TestCreateGoalRequiresPositiveTarget() {
	user, err := s.db.GetOrCreateUser("u1")
	require.NoError(s.T(), err)

	_, err = s.db.CreateGoal(user, "vacation", 0, nil)
	assert.ErrorIs(s.T(), err, ErrInvalidAmount)
}

func (s *DatabaseTestSuite) TestContributeToGoal() {
	user, err := s.db.GetOrCreateUser("u1")
	require.NoError(s.T(), err)

	goal, err := s.db.CreateGoal(user, "vacation", 100, nil)
	require.NoError(s.T(), err)

	updated, completedNow, err := s.db.ContributeToGoal(user, goal.ID, 60)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 60.0, updated.CurrentAmount)
	assert.False(s.T(), completedNow)
	assert.False(s.T(), updated.Completed)

	updated, completedNow, err = s.db.ContributeToGoal(user, goal.ID, 50)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 110.0, updated.CurrentAmount, "overshoot is allowed")
	assert.True(s.T(), completedNow)
	assert.True(s.T(), updated.Completed)

	// Further contributions stack but no longer report completion.
	updated, completedNow, err = s.db.ContributeToGoal(user, goal.ID, 10)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 120.0, updated.CurrentAmount)
	assert.False(s.T(), completedNow)
}

func (s *DatabaseTestSuite) TestContributeToGoalInvalidAmount() {
	user, err := s.db.GetOrCreateUser("u1")
	require.NoError(s.T(), err)

	goal, err := s.db.CreateGoal(user, "vacation", 100, nil)
	require.NoError(s.T(), err)

	_, _, err = s.db.ContributeToGoal(user, goal.ID, 0)
	assert.ErrorIs(s.T(), err, ErrInvalidAmount)
	_, _, err = s.db.ContributeToGoal(user, goal.ID, -10)
	assert.ErrorIs(s.T(), err, ErrInvalidAmount)

	goals, err := s.db.Goals(user)
	require.NoError(s.T(), err)
	require.Len(s.T(), goals, 1)
	assert.Equal(s.T(), 0.0, goals[0].CurrentAmount, "rejected contribution leaves state unchanged")
}

func (s *DatabaseTestSuite) TestContributeToGoalNotFound() {
	u1, err := s.db.GetOrCreateUser("u1")
	require.NoError(s.T(), err)
	u2, err := s.db.GetOrCreateUser("u2")
	require.NoError(s.T(), err)

	goal, err := s.db.CreateGoal(u1, "vacation", 100, nil)
	require.NoError(s.T(), err)

	_, _, err = s.db.ContributeToGoal(u1, goal.ID+999, 10)
	assert.ErrorIs(s.T(), err, ErrNotFound)

	// Another user's goal id must look absent, not forbidden.
	_, _, err = s.db.ContributeToGoal(u2, goal.ID, 10)
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *DatabaseTestSuite) TestCompleteGoal() {
	user, err := s.db.GetOrCreateUser("u1")
	require.NoError(s.T(), err)

	goal, err := s.db.CreateGoal(user, "vacation", 100, nil)
	require.NoError(s.T(), err)

	completed, err := s.db.CompleteGoal(user, goal.ID)
	require.NoError(s.T(), err)
	assert.True(s.T(), completed.Completed)
	assert.Equal(s.T(), 100.0, completed.CurrentAmount, "completion jumps current to target")

	_, err = s.db.CompleteGoal(user, goal.ID)
	assert.ErrorIs(s.T(), err, ErrGoalCompleted)
}

func (s *DatabaseTestSuite) TestDeleteGoal() {
	user, err := s.db.GetOrCreateUser("u1")
	require.NoError(s.T(), err)

	goal, err := s.db.CreateGoal(user, "vacation", 100, nil)
	require.NoError(s.T(), err)

	deleted, err := s.db.DeleteGoal(user, goal.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "vacation", deleted.Name)

	goals, err := s.db.Goals(user)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), goals)

	_, err = s.db.DeleteGoal(user, goal.ID)
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func TestDatabaseTestSuite(t *testing.T) {
	suite.Run(t, new(DatabaseTestSuite))
}
