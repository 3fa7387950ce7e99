package report

import (
	"strings"

	"github.com/hugotakeda/FinanceManagarDiscord/internal/storage"
)

// Summary aggregates one month of transactions.
type Summary struct {
	TotalExpense      float64
	TotalIncome       float64
	Balance           float64
	ExpenseByCategory map[string]float64
}

// MonthlySummary folds already-loaded transactions into totals and a
// per-category expense breakdown. Pure; no I/O.
func MonthlySummary(transactions []storage.Transaction) Summary {
	s := Summary{ExpenseByCategory: make(map[string]float64)}
	for _, t := range transactions {
		switch t.Kind {
		case storage.KindExpense:
			s.TotalExpense += t.Amount
			s.ExpenseByCategory[strings.ToLower(t.Category)] += t.Amount
		case storage.KindIncome:
			s.TotalIncome += t.Amount
		}
	}
	s.Balance = s.TotalIncome - s.TotalExpense
	return s
}

// GoalProgress reports a goal's completion percentage. A non-positive
// target reads as zero progress.
func GoalProgress(g storage.Goal) float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	return g.CurrentAmount / g.TargetAmount * 100
}

// GoalDone reports whether a goal counts as completed, either by flag or
// by reaching 100% progress.
func GoalDone(g storage.Goal) bool {
	return g.Completed || GoalProgress(g) >= 100
}
