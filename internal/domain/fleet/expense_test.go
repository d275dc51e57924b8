package fleet

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewExpense_Validation(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	_, err := NewExpense(uuid.Nil, ExpenseFuel, date, decimal.NewFromInt(500))
	assert.Error(t, err)

	_, err = NewExpense(uuid.New(), ExpenseType("LODGING"), date, decimal.NewFromInt(500))
	assert.Error(t, err)

	_, err = NewExpense(uuid.New(), ExpenseFuel, date, decimal.Zero)
	assert.Error(t, err)

	_, err = NewExpense(uuid.New(), ExpenseFuel, date, decimal.NewFromInt(-10))
	assert.Error(t, err)

	expense, err := NewExpense(uuid.New(), ExpenseFuel, date, decimal.NewFromInt(500))
	assert.NoError(t, err)
	assert.False(t, expense.PaidByAdmin)
}

func TestExpenseClassification(t *testing.T) {
	tests := []struct {
		name            string
		expenseType     ExpenseType
		paidByAdmin     bool
		wantDeductible  bool
		wantReimbursed  bool
	}{
		{"fine paid by driver", ExpenseFine, false, true, false},
		{"fine paid by admin is still deducted", ExpenseFine, true, true, false},
		{"fuel paid by driver", ExpenseFuel, false, false, true},
		{"fuel paid by admin", ExpenseFuel, true, false, false},
		{"per diem paid by driver", ExpensePerDiem, false, false, true},
		{"repair paid by admin", ExpenseRepair, true, false, false},
		{"toll paid by driver", ExpenseToll, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expense, err := NewExpense(uuid.New(), tt.expenseType, time.Now(), decimal.NewFromInt(100))
			assert.NoError(t, err)
			expense.PaidByAdmin = tt.paidByAdmin

			assert.Equal(t, tt.wantDeductible, expense.Deductible())
			assert.Equal(t, tt.wantReimbursed, expense.Reimbursable())
		})
	}
}
