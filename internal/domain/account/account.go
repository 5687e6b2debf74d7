package account

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmelo/finledger/internal/domain/errors"
)

// AccountStatus gates an account's eligibility for transfers.
type AccountStatus string

const (
	StatusUnspecified AccountStatus = "unspecified"
	StatusActive      AccountStatus = "active"
	StatusFrozen      AccountStatus = "frozen"
)

// AccountType carries no invariants; it exists for reporting.
type AccountType string

const (
	TypeUnspecified AccountType = "unspecified"
	TypeChecking    AccountType = "checking"
	TypeSaving      AccountType = "saving"
)

// Customer is immutable after creation and never deleted.
type Customer struct {
	ID      uuid.UUID
	Name    string
	Address string
}

// Account holds a non-negative balance mutated only through the transfer
// engine. CreatedAt is assigned by the store at commit and must stay zero
// until then.
type Account struct {
	ID        uuid.UUID
	Type      AccountType
	Status    AccountStatus
	Balance   decimal.Decimal
	CreatedAt time.Time
}

// CustomerRole grants a customer a named relationship to an account.
// The referenced rows are not verified here; referential integrity is the
// store's concern.
type CustomerRole struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	AccountID  uuid.UUID
	Name       string
}

// NewCustomer validates presence of both fields and assigns an opaque id.
func NewCustomer(name, address string) (*Customer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.InvalidArgument("customer name is required")
	}
	if strings.TrimSpace(address) == "" {
		return nil, errors.InvalidArgument("customer address is required")
	}
	return &Customer{ID: uuid.New(), Name: name, Address: address}, nil
}

// NewAccount assigns an opaque id and rejects a negative opening balance.
func NewAccount(accountType AccountType, status AccountStatus, balance decimal.Decimal) (*Account, error) {
	id := uuid.New()
	if balance.IsNegative() {
		return nil, errors.InvalidArgument(
			"Account balance cannot be negative. accountId: %s, balance: %s", id, balance)
	}
	return &Account{ID: id, Type: accountType, Status: status, Balance: balance}, nil
}

// NewCustomerRole assigns an opaque id to the association.
func NewCustomerRole(customerID, accountID uuid.UUID, name string) (*CustomerRole, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.InvalidArgument("role name is required")
	}
	return &CustomerRole{
		ID:         uuid.New(),
		CustomerID: customerID,
		AccountID:  accountID,
		Name:       name,
	}, nil
}

// Eligible reports whether the account may participate in a transfer under
// the strict eligibility rule.
func (a *Account) Eligible() bool {
	return a.Status == StatusActive
}
