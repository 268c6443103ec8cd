package entity

// Budget caps spending for a category in one month (YYYY-MM).
type Budget struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Amount    float64   `json:"amount"`
	Month     string    `json:"month"`
	CreatedAt Timestamp `json:"createdAt"`
}

type Expense struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Date        Timestamp `json:"date"`
	CreatedAt   Timestamp `json:"createdAt"`
}

type Income struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Source      string    `json:"source"`
	Date        Timestamp `json:"date"`
	CreatedAt   Timestamp `json:"createdAt"`
}

// FinancialGoal is a savings target.
type FinancialGoal struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	TargetAmount  float64    `json:"targetAmount"`
	CurrentAmount float64    `json:"currentAmount"`
	TargetDate    *Timestamp `json:"targetDate,omitempty"`
	Category      string     `json:"category"`
	CreatedAt     Timestamp  `json:"createdAt"`
}

// DefaultExpenseCategories seeds the expense category list.
func DefaultExpenseCategories() []string {
	return []string{
		"Food",
		"Transportation",
		"Shopping",
		"Entertainment",
		"Bills",
		"Healthcare",
		"Education",
		"Other",
	}
}

// MonthKeyLayout formats budget months.
const MonthKeyLayout = "2006-01"
