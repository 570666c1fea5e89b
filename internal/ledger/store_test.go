package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkoskivuori/taskupankki/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func emptySeed(balance string) Seed {
	return Seed{
		OpeningBalance:    dec(balance),
		AccountNumber:     "FI21 1234 5678 9012 34",
		AccountHolderName: "Aku Ankka",
		CompanyName:       "Firma Oy",
		NextID:            1000,
	}
}

// ledgerSum is the seed balance plus the net of all mutations applied since
// construction, which must equal the live balance after any sequence of
// ledger mutations.
func ledgerSum(seed Seed, snap Snapshot) decimal.Decimal {
	sum := seed.OpeningBalance
	seeded := make(map[string]decimal.Decimal, len(seed.Transactions))
	for _, txn := range seed.Transactions {
		seeded[txn.ID] = txn.Amount
	}
	for _, txn := range snap.Transactions {
		if _, ok := seeded[txn.ID]; ok {
			continue
		}
		sum = sum.Add(txn.Amount)
	}
	for id, amt := range seeded {
		found := false
		for _, txn := range snap.Transactions {
			if txn.ID == id {
				found = true
				if !txn.Amount.Equal(amt) {
					sum = sum.Add(txn.Amount.Sub(amt))
				}
				break
			}
		}
		if !found {
			sum = sum.Sub(amt)
		}
	}
	return sum
}

func TestCreatePayment(t *testing.T) {
	store := NewStore(emptySeed("100.00"))

	store.CreatePayment("25", "Coffee", "", "")

	snap := store.Snapshot()
	require.Len(t, snap.Transactions, 1)

	txn := snap.Transactions[0]
	assert.Equal(t, "-25", txn.Amount.String())
	assert.Equal(t, model.TypeDebit, txn.Type)
	assert.Equal(t, model.StatusCompleted, txn.Status)
	assert.Equal(t, "Coffee", txn.Title)
	assert.Equal(t, PaymentCategory, txn.Category)
	assert.Equal(t, "75", snap.Balance.String())
}

func TestCreatePayment_InvalidAmount(t *testing.T) {
	store := NewStore(emptySeed("100.00"))
	store.CreatePayment("25", "Coffee", "", "")

	assert.NotPanics(t, func() {
		store.CreatePayment("abc", "", "", "")
	})

	snap := store.Snapshot()
	require.Len(t, snap.Transactions, 2)
	assert.True(t, snap.Transactions[0].Amount.IsZero(), "invalid input should become a zero-amount payment")
	assert.Equal(t, DefaultPaymentTitle, snap.Transactions[0].Title)
	assert.Equal(t, "75", snap.Balance.String(), "balance is unchanged when subtracting zero")
}

func TestCreatePayment_NegativeInputStillDebits(t *testing.T) {
	store := NewStore(emptySeed("100.00"))

	store.CreatePayment("-25", "Refund attempt", "", "")

	snap := store.Snapshot()
	assert.Equal(t, "-25", snap.Transactions[0].Amount.String())
	assert.Equal(t, "75", snap.Balance.String())
}

func TestCreatePayment_Prepends(t *testing.T) {
	store := NewStore(DefaultSeed())

	store.CreatePayment("10", "First", "", "")
	store.CreatePayment("20", "Second", "", "")

	snap := store.Snapshot()
	assert.Equal(t, "Second", snap.Transactions[0].Title, "newest transaction must sit at index 0")
	assert.Equal(t, "First", snap.Transactions[1].Title)
}

func TestCreatePayment_RecipientAndIBAN(t *testing.T) {
	store := NewStore(emptySeed("100.00"))

	store.CreatePayment("12.50", "Rent", "Vuokranantaja Oy", "FI49 5000 9420 0287 30")

	txn := store.Snapshot().Transactions[0]
	assert.Equal(t, "Vuokranantaja Oy", txn.Recipient)
	assert.Equal(t, "FI49 5000 9420 0287 30", txn.IBAN)
}

func TestAddTransaction_CreditDelta(t *testing.T) {
	tests := []struct {
		name   string
		amount string
	}{
		{name: "positive amount", amount: "1000"},
		{name: "negative amount, type still governs", amount: "-1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(emptySeed("0.00"))

			store.AddTransaction(model.Transaction{
				Title:  "Salary",
				Amount: dec(tt.amount),
				Type:   model.TypeCredit,
			})

			snap := store.Snapshot()
			assert.Equal(t, "1000", snap.Balance.String())
			assert.Equal(t, "1000", snap.Transactions[0].Amount.String(),
				"stored amount is normalized to agree with the credit type")
		})
	}
}

func TestAddTransaction_DebitDelta(t *testing.T) {
	store := NewStore(emptySeed("100.00"))

	store.AddTransaction(model.Transaction{
		Title:  "Groceries",
		Amount: dec("40"), // unsigned from the caller
		Type:   model.TypeDebit,
	})

	snap := store.Snapshot()
	assert.Equal(t, "60", snap.Balance.String())
	assert.Equal(t, "-40", snap.Transactions[0].Amount.String())
}

func TestAddTransaction_Defaults(t *testing.T) {
	store := NewStore(emptySeed("0.00"))

	store.AddTransaction(model.Transaction{Title: "Mystery", Amount: dec("-5")})

	txn := store.Snapshot().Transactions[0]
	assert.Equal(t, model.TypeDebit, txn.Type, "missing type falls back to the amount sign")
	assert.Equal(t, FallbackCategory, txn.Category)
	assert.Equal(t, model.StatusCompleted, txn.Status)
	assert.False(t, txn.Date.IsZero())
}

func TestAddTransaction_IgnoresCallerID(t *testing.T) {
	store := NewStore(emptySeed("0.00"))

	store.AddTransaction(model.Transaction{ID: "sneaky", Title: "X", Amount: dec("1"), Type: model.TypeCredit})

	assert.Equal(t, "1001", store.Snapshot().Transactions[0].ID)
}

func TestUpdateTransaction_AmountDelta(t *testing.T) {
	seed := emptySeed("50.00")
	seed.Transactions = []model.Transaction{
		{ID: "1", Title: "Old", Amount: dec("-10"), Type: model.TypeDebit, Status: model.StatusCompleted},
	}
	store := NewStore(seed)

	amt := dec("-30")
	store.UpdateTransaction("1", TransactionPatch{Amount: &amt})

	snap := store.Snapshot()
	assert.Equal(t, "30", snap.Balance.String(), "balance absorbs exactly the -20 delta")
	assert.Equal(t, "-30", snap.Transactions[0].Amount.String())
	assert.Equal(t, "Old", snap.Transactions[0].Title, "untouched fields survive the patch")
}

func TestUpdateTransaction_PartialMerge(t *testing.T) {
	seed := emptySeed("50.00")
	seed.Transactions = []model.Transaction{
		{ID: "1", Title: "Old", Amount: dec("-10"), Category: "Food", Type: model.TypeDebit},
	}
	store := NewStore(seed)

	title := "Renamed"
	status := model.StatusPending
	store.UpdateTransaction("1", TransactionPatch{Title: &title, Status: &status})

	snap := store.Snapshot()
	txn := snap.Transactions[0]
	assert.Equal(t, "Renamed", txn.Title)
	assert.Equal(t, model.StatusPending, txn.Status)
	assert.Equal(t, "Food", txn.Category)
	assert.Equal(t, "-10", txn.Amount.String())
	assert.Equal(t, "50", snap.Balance.String(), "no amount in the patch, no balance change")
}

func TestUpdateTransaction_SameAmountNoDelta(t *testing.T) {
	seed := emptySeed("50.00")
	seed.Transactions = []model.Transaction{
		{ID: "1", Amount: dec("-10"), Type: model.TypeDebit},
	}
	store := NewStore(seed)

	amt := dec("-10.00") // equal value, different representation
	store.UpdateTransaction("1", TransactionPatch{Amount: &amt})

	assert.Equal(t, "50", store.Snapshot().Balance.String())
}

func TestUpdateTransaction_UnknownIDIsNoOp(t *testing.T) {
	store := NewStore(DefaultSeed())
	before := store.Snapshot()

	amt := dec("999")
	store.UpdateTransaction("nonexistent", TransactionPatch{Amount: &amt})

	after := store.Snapshot()
	assert.True(t, before.Balance.Equal(after.Balance))
	assert.Equal(t, before.Transactions, after.Transactions)
}

func TestDeleteTransaction_ReversesContribution(t *testing.T) {
	seed := emptySeed("50.00")
	seed.Transactions = []model.Transaction{
		{ID: "1", Amount: dec("-10"), Type: model.TypeDebit},
	}
	store := NewStore(seed)

	store.DeleteTransaction("1")

	snap := store.Snapshot()
	assert.Equal(t, "60", snap.Balance.String())
	assert.Empty(t, snap.Transactions)
}

func TestDeleteTransaction_CreditRemoval(t *testing.T) {
	seed := emptySeed("50.00")
	seed.Transactions = []model.Transaction{
		{ID: "1", Amount: dec("20"), Type: model.TypeCredit},
	}
	store := NewStore(seed)

	store.DeleteTransaction("1")

	assert.Equal(t, "30", store.Snapshot().Balance.String())
}

func TestDeleteTransaction_UnknownIDIsNoOp(t *testing.T) {
	store := NewStore(DefaultSeed())
	before := store.Snapshot()

	assert.NotPanics(t, func() {
		store.DeleteTransaction("nonexistent")
	})

	after := store.Snapshot()
	assert.True(t, before.Balance.Equal(after.Balance))
	assert.Equal(t, before.Transactions, after.Transactions)
}

func TestUpdateBalance_Override(t *testing.T) {
	store := NewStore(DefaultSeed())

	store.UpdateBalance(dec("9999.999"))

	assert.Equal(t, "10000", store.Snapshot().Balance.String(), "override rounds to cents")
}

func TestMetadataSetters(t *testing.T) {
	store := NewStore(DefaultSeed())

	store.UpdateAccountHolderName("Iines Ankka")
	store.UpdateCompanyName("Uusi Firma Oy")
	store.UpdateAccountNumber("FI49 5000 9420 0287 30")

	snap := store.Snapshot()
	assert.Equal(t, "Iines Ankka", snap.AccountHolderName)
	assert.Equal(t, "Uusi Firma Oy", snap.CompanyName)
	assert.Equal(t, "FI49 5000 9420 0287 30", snap.AccountNumber)
	assert.Equal(t, "14574.32", snap.Balance.String(), "metadata edits never touch balance")
}

func TestIDUniqueness_AfterDeletions(t *testing.T) {
	store := NewStore(emptySeed("1000.00"))

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		store.CreatePayment("1", "p", "", "")
	}
	for _, txn := range store.Snapshot().Transactions {
		seen[txn.ID] = true
	}

	// Delete everything, then add more; ids must not be reused.
	for _, txn := range store.Snapshot().Transactions {
		store.DeleteTransaction(txn.ID)
	}
	require.Empty(t, store.Snapshot().Transactions)

	for i := 0; i < 5; i++ {
		store.CreatePayment("1", "p", "", "")
	}
	for _, txn := range store.Snapshot().Transactions {
		assert.False(t, seen[txn.ID], "id %s reused after deletion", txn.ID)
	}
}

func TestLedgerSumInvariant(t *testing.T) {
	seed := DefaultSeed()
	store := NewStore(seed)

	store.CreatePayment("25.55", "Coffee", "", "")
	store.AddTransaction(model.Transaction{Title: "Bonus", Amount: dec("120.50"), Type: model.TypeCredit})
	store.AddTransaction(model.Transaction{Title: "Fee", Amount: dec("3.90"), Type: model.TypeDebit})

	snap := store.Snapshot()
	var editable string
	for _, txn := range snap.Transactions {
		if txn.Title == "Fee" {
			editable = txn.ID
		}
	}
	amt := dec("-7.80")
	store.UpdateTransaction(editable, TransactionPatch{Amount: &amt})
	store.DeleteTransaction("4") // seeded grocery debit

	snap = store.Snapshot()
	assert.True(t, snap.Balance.Equal(ledgerSum(seed, snap)),
		"balance %s diverged from ledger sum %s", snap.Balance, ledgerSum(seed, snap))
}

func TestUpdateBalance_BreaksLedgerSumUntilNextMutation(t *testing.T) {
	seed := emptySeed("100.00")
	store := NewStore(seed)

	store.UpdateBalance(dec("500.00"))
	assert.Equal(t, "500", store.Snapshot().Balance.String())

	// The next ledger mutation re-bases on the overridden value.
	store.CreatePayment("100", "", "", "")
	assert.Equal(t, "400", store.Snapshot().Balance.String())
}

func TestRounding_NoResidueAccumulates(t *testing.T) {
	store := NewStore(emptySeed("100.00"))

	// The balance is rounded after each mutation, so an exact half-cent
	// payment rounds away at the balance boundary: 100.00 - 0.005 rounds
	// back up to 100.00 and the balance never moves.
	for i := 0; i < 100; i++ {
		store.CreatePayment("0.005", "sliver", "", "")
	}
	assert.Equal(t, "100", store.Snapshot().Balance.String())

	// Just past the half-cent, each payment costs a full cent.
	for i := 0; i < 100; i++ {
		store.CreatePayment("0.006", "sliver", "", "")
	}

	snap := store.Snapshot()
	assert.GreaterOrEqual(t, snap.Balance.Exponent(), int32(-2), "balance must carry at most 2 decimals")
	assert.Equal(t, "99", snap.Balance.String())
}

func TestSubscribers_SynchronousAndConsistent(t *testing.T) {
	store := NewStore(emptySeed("100.00"))

	var got []Snapshot
	unsubscribe := store.Subscribe(func(snap Snapshot) {
		got = append(got, snap)
	})

	store.CreatePayment("25", "Coffee", "", "")
	require.Len(t, got, 1, "notification fires synchronously with the mutation")
	assert.Equal(t, "75", got[0].Balance.String(), "subscriber sees the post-mutation state")
	require.Len(t, got[0].Transactions, 1)

	unsubscribe()
	store.CreatePayment("25", "Tea", "", "")
	assert.Len(t, got, 1, "no notifications after unsubscribe")
}

func TestSubscribers_SnapshotIsDetached(t *testing.T) {
	store := NewStore(emptySeed("100.00"))
	store.CreatePayment("10", "a", "", "")

	snap := store.Snapshot()
	snap.Transactions[0].Title = "tampered"

	assert.Equal(t, "a", store.Snapshot().Transactions[0].Title)
}

func TestZeroValueStorePanics(t *testing.T) {
	var store Store

	assert.PanicsWithValue(t,
		"ledger: Store used before initialization; construct it with NewStore",
		func() { _ = store.Snapshot() })
	assert.Panics(t, func() { store.CreatePayment("1", "", "", "") })
}

func TestSeedDate_UsesInjectedClock(t *testing.T) {
	store := NewStore(emptySeed("0.00"))
	fixed := time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	store.CreatePayment("5", "", "", "")

	assert.Equal(t, fixed, store.Snapshot().Transactions[0].Date)
}
