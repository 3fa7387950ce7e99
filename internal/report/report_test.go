package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hugotakeda/FinanceManagarDiscord/internal/storage"
)

func TestMonthlySummary(t *testing.T) {
	txs := []storage.Transaction{
		{Kind: storage.KindExpense, Amount: 50.00, Category: "food"},
		{Kind: storage.KindExpense, Amount: 20.00, Category: "food"},
		{Kind: storage.KindExpense, Amount: 30.00, Category: "travel"},
		{Kind: storage.KindIncome, Amount: 200.00, Source: "salary"},
	}

	s := MonthlySummary(txs)

	assert.Equal(t, 100.00, s.TotalExpense)
	assert.Equal(t, 200.00, s.TotalIncome)
	assert.Equal(t, 100.00, s.Balance)
	assert.Equal(t, map[string]float64{"food": 70.00, "travel": 30.00}, s.ExpenseByCategory)
}

func TestMonthlySummaryNormalizesCategoryCase(t *testing.T) {
	txs := []storage.Transaction{
		{Kind: storage.KindExpense, Amount: 10, Category: "Food"},
		{Kind: storage.KindExpense, Amount: 15, Category: "food"},
	}

	s := MonthlySummary(txs)

	assert.Equal(t, map[string]float64{"food": 25.0}, s.ExpenseByCategory)
}

func TestMonthlySummaryEmpty(t *testing.T) {
	s := MonthlySummary(nil)

	assert.Zero(t, s.TotalExpense)
	assert.Zero(t, s.TotalIncome)
	assert.Zero(t, s.Balance)
	assert.Empty(t, s.ExpenseByCategory)
}

func TestGoalProgress(t *testing.T) {
	cases := []struct {
		name string
		goal storage.Goal
		want float64
		done bool
	}{
		{"partial", storage.Goal{TargetAmount: 100, CurrentAmount: 60}, 60, false},
		{"reached", storage.Goal{TargetAmount: 100, CurrentAmount: 100}, 100, true},
		{"overshoot", storage.Goal{TargetAmount: 100, CurrentAmount: 110}, 110, true},
		{"zero target", storage.Goal{TargetAmount: 0, CurrentAmount: 50}, 0, false},
		{"flagged complete", storage.Goal{TargetAmount: 100, CurrentAmount: 10, Completed: true}, 10, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.InDelta(t, c.want, GoalProgress(c.goal), 1e-9)
			assert.Equal(t, c.done, GoalDone(c.goal))
		})
	}
}
