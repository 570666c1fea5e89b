package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vkoskivuori/taskupankki/internal/model"
)

// Seed is the initial state a store is constructed from.
type Seed struct {
	AccountNumber     string
	AccountHolderName string
	CompanyName       string
	Transactions      []model.Transaction
	OpeningBalance    decimal.Decimal
	NextID            int64
}

// DefaultSeed returns the demo account the app ships with: a Finnish
// checking account with a handful of recent transactions. State always
// resets to this seed when no persistence is configured.
func DefaultSeed() Seed {
	return Seed{
		OpeningBalance:    decimal.RequireFromString("14574.32"),
		AccountNumber:     "FI21 1234 5678 9012 34",
		AccountHolderName: "Aku Ankka",
		CompanyName:       "Firma Oy",
		NextID:            1000,
		Transactions: []model.Transaction{
			{
				ID:        "1",
				Title:     "eBike Rental - Day Pass",
				Amount:    decimal.RequireFromString("-15.90"),
				Date:      time.Date(2025, 11, 5, 14, 30, 0, 0, time.UTC),
				Category:  "Transport",
				Status:    model.StatusCompleted,
				Recipient: "Helsinki eBike Service",
				Type:      model.TypeDebit,
			},
			{
				ID:        "2",
				Title:     "Salary",
				Amount:    decimal.RequireFromString("3500.00"),
				Date:      time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC),
				Category:  "Income",
				Status:    model.StatusCompleted,
				Recipient: "Employer Ltd",
				Type:      model.TypeCredit,
			},
			{
				ID:        "3",
				Title:     "eBike Monthly Subscription",
				Amount:    decimal.RequireFromString("-49.90"),
				Date:      time.Date(2025, 10, 28, 12, 15, 0, 0, time.UTC),
				Category:  "Transport",
				Status:    model.StatusCompleted,
				Recipient: "Helsinki eBike Service",
				Type:      model.TypeDebit,
			},
			{
				ID:        "4",
				Title:     "Grocery Store",
				Amount:    decimal.RequireFromString("-87.35"),
				Date:      time.Date(2025, 10, 27, 16, 45, 0, 0, time.UTC),
				Category:  "Shopping",
				Status:    model.StatusCompleted,
				Recipient: "K-Market",
				Type:      model.TypeDebit,
			},
			{
				ID:        "5",
				Title:     "Restaurant",
				Amount:    decimal.RequireFromString("-42.50"),
				Date:      time.Date(2025, 10, 26, 19, 30, 0, 0, time.UTC),
				Category:  "Food",
				Status:    model.StatusCompleted,
				Recipient: "Ravintola Nokka",
				Type:      model.TypeDebit,
			},
		},
	}
}
