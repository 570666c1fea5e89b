// Package ledger implements the account ledger store: a single mutable
// ledger of transactions with a derived balance and account metadata.
//
// The store keeps one invariant: balance equals the opening balance plus the
// sum of all transaction amounts currently in the list, to the cent. Every
// list mutation adjusts balance by exactly the delta it introduces. The one
// exception is UpdateBalance, a manual override that intentionally
// desynchronizes balance from the transaction history.
//
// Operations never fail under normal conditions: malformed numeric input
// degrades to zero and unknown transaction ids degrade to no-ops. That
// permissiveness is part of the contract with the form layer, not an
// oversight.
package ledger

import (
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vkoskivuori/taskupankki/internal/model"
	"github.com/vkoskivuori/taskupankki/internal/money"
)

// DefaultPaymentTitle is used when a payment is created without a
// description. The original app labels such payments "Maksu".
const DefaultPaymentTitle = "Maksu"

// PaymentCategory is assigned to every transaction created through
// CreatePayment.
const PaymentCategory = "Payment"

// FallbackCategory is assigned when a transaction is added without one.
const FallbackCategory = "Muu"

// Snapshot is the readable state of the store handed to consumers. The
// transaction slice is a copy; holders never observe later mutations
// through it.
type Snapshot struct {
	AccountNumber     string
	AccountHolderName string
	CompanyName       string
	Transactions      []model.Transaction
	Balance           decimal.Decimal
	NextID            int64
}

// Subscriber receives the post-mutation snapshot. Subscribers are invoked
// synchronously after the state has settled, so dependent views stay
// consistent within the same logical update.
type Subscriber func(Snapshot)

// Store owns the account state. Create instances with NewStore; a zero
// value panics on use, since reading the store outside its valid lifetime
// is a wiring bug rather than bad user input.
type Store struct {
	mu sync.Mutex

	balance           decimal.Decimal
	transactions      []model.Transaction
	accountNumber     string
	accountHolderName string
	companyName       string
	nextID            int64

	subscribers map[int]Subscriber
	nextSubID   int

	now func() time.Time

	initialized bool
}

// NewStore builds a store from a seed. The seed's transactions are copied.
func NewStore(seed Seed) *Store {
	txns := make([]model.Transaction, len(seed.Transactions))
	copy(txns, seed.Transactions)

	return &Store{
		balance:           money.RoundCents(seed.OpeningBalance),
		transactions:      txns,
		accountNumber:     seed.AccountNumber,
		accountHolderName: seed.AccountHolderName,
		companyName:       seed.CompanyName,
		nextID:            seed.NextID,
		subscribers:       make(map[int]Subscriber),
		now:               time.Now,
		initialized:       true,
	}
}

func (s *Store) mustInit() {
	if !s.initialized {
		panic("ledger: Store used before initialization; construct it with NewStore")
	}
}

// Snapshot returns the current readable state.
func (s *Store) Snapshot() Snapshot {
	s.mustInit()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	txns := make([]model.Transaction, len(s.transactions))
	copy(txns, s.transactions)
	return Snapshot{
		Balance:           s.balance,
		Transactions:      txns,
		AccountNumber:     s.accountNumber,
		AccountHolderName: s.accountHolderName,
		CompanyName:       s.companyName,
		NextID:            s.nextID,
	}
}

// Subscribe registers a subscriber and returns a function that removes it.
// The subscriber is called after every mutation with the fresh snapshot.
func (s *Store) Subscribe(fn Subscriber) (unsubscribe func()) {
	s.mustInit()
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// notify is called with the lock held; it snapshots and releases before
// invoking subscribers so a subscriber may read the store again.
func (s *Store) notifyLocked() (Snapshot, []Subscriber) {
	snap := s.snapshotLocked()
	subs := make([]Subscriber, 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	return snap, subs
}

func dispatch(snap Snapshot, subs []Subscriber) {
	for _, fn := range subs {
		fn(snap)
	}
}

func (s *Store) newIDLocked() string {
	s.nextID++
	return strconv.FormatInt(s.nextID, 10)
}

// CreatePayment records an outgoing payment. The raw amount comes straight
// from the payment form and is parsed leniently: non-numeric input becomes a
// zero-amount payment. The new transaction is prepended (the list is ordered
// most-recent-first) and balance drops by the payment magnitude, rounded to
// cents.
func (s *Store) CreatePayment(rawAmount, description, recipient, iban string) {
	s.mustInit()

	amount := money.ParseAmountOrZero(rawAmount).Abs()

	title := description
	if title == "" {
		title = DefaultPaymentTitle
	}

	s.mu.Lock()
	txn := model.NewDebit(title, amount)
	txn.ID = s.newIDLocked()
	txn.Date = s.now().UTC()
	txn.Category = PaymentCategory
	txn.Recipient = recipient
	txn.IBAN = iban

	s.transactions = append([]model.Transaction{txn}, s.transactions...)
	s.balance = money.RoundCents(s.balance.Sub(amount))

	snap, subs := s.notifyLocked()
	s.mu.Unlock()
	dispatch(snap, subs)
}

// AddTransaction records an arbitrary ledger entry. The id is assigned by
// the store; any id on the argument is ignored. The balance delta is derived
// from the transaction type, never from the sign the caller put on the
// amount, and the stored amount is normalized to agree with the type
// (credit non-negative, debit non-positive) so the ledger-sum invariant
// holds for every entry.
func (s *Store) AddTransaction(txn model.Transaction) {
	s.mustInit()

	magnitude := txn.Amount.Abs()
	switch txn.Type {
	case model.TypeCredit:
		txn.Amount = magnitude
	case model.TypeDebit:
		txn.Amount = magnitude.Neg()
	default:
		// No usable type: fall back to the sign already on the amount.
		if txn.Amount.IsNegative() {
			txn.Type = model.TypeDebit
		} else {
			txn.Type = model.TypeCredit
		}
	}
	if txn.Category == "" {
		txn.Category = FallbackCategory
	}
	if txn.Status == "" {
		txn.Status = model.StatusCompleted
	}

	s.mu.Lock()
	txn.ID = s.newIDLocked()
	if txn.Date.IsZero() {
		txn.Date = s.now().UTC()
	}

	s.transactions = append([]model.Transaction{txn}, s.transactions...)
	s.balance = money.RoundCents(s.balance.Add(txn.Amount))

	snap, subs := s.notifyLocked()
	s.mu.Unlock()
	dispatch(snap, subs)
}

// UpdateTransaction applies a partial patch to the transaction with the
// given id. Fields absent from the patch are unchanged. When the patch
// changes the amount, balance is corrected by exactly the difference against
// the stored value; this is the one operation that diffs prior state instead
// of re-deriving from type, since a patch may change amount without touching
// type. An unknown id is a no-op.
func (s *Store) UpdateTransaction(id string, patch TransactionPatch) {
	s.mustInit()

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}

	txn := s.transactions[idx]
	if patch.Amount != nil && !patch.Amount.Equal(txn.Amount) {
		diff := patch.Amount.Sub(txn.Amount)
		s.balance = money.RoundCents(s.balance.Add(diff))
	}
	patch.applyTo(&txn)
	s.transactions[idx] = txn

	snap, subs := s.notifyLocked()
	s.mu.Unlock()
	dispatch(snap, subs)
}

// DeleteTransaction removes the transaction with the given id, reversing its
// exact contribution to balance first. An unknown id is a no-op and leaves
// balance untouched.
func (s *Store) DeleteTransaction(id string) {
	s.mustInit()

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}

	s.balance = money.RoundCents(s.balance.Sub(s.transactions[idx].Amount))
	s.transactions = append(s.transactions[:idx], s.transactions[idx+1:]...)

	snap, subs := s.notifyLocked()
	s.mu.Unlock()
	dispatch(snap, subs)
}

// UpdateBalance overrides the balance directly without touching the
// transaction list. This is a manual-correction operation: it deliberately
// breaks the balance-equals-ledger-sum relationship until the next ledger
// mutation re-bases on the overridden value.
func (s *Store) UpdateBalance(newBalance decimal.Decimal) {
	s.mustInit()

	s.mu.Lock()
	s.balance = money.RoundCents(newBalance)

	snap, subs := s.notifyLocked()
	s.mu.Unlock()
	dispatch(snap, subs)
}

// UpdateAccountHolderName sets the account holder name.
func (s *Store) UpdateAccountHolderName(name string) {
	s.mustInit()
	s.mu.Lock()
	s.accountHolderName = name
	snap, subs := s.notifyLocked()
	s.mu.Unlock()
	dispatch(snap, subs)
}

// UpdateCompanyName sets the company name.
func (s *Store) UpdateCompanyName(company string) {
	s.mustInit()
	s.mu.Lock()
	s.companyName = company
	snap, subs := s.notifyLocked()
	s.mu.Unlock()
	dispatch(snap, subs)
}

// UpdateAccountNumber sets the account number (IBAN).
func (s *Store) UpdateAccountNumber(iban string) {
	s.mustInit()
	s.mu.Lock()
	s.accountNumber = iban
	snap, subs := s.notifyLocked()
	s.mu.Unlock()
	dispatch(snap, subs)
}

func (s *Store) indexLocked(id string) int {
	for i, txn := range s.transactions {
		if txn.ID == id {
			return i
		}
	}
	return -1
}
