// Package seed loads fixture data into the emulator store from a YAML
// file.
package seed

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lazyspender/lazyspender-go/internal/emulator/store"
	"github.com/lazyspender/lazyspender-go/pkg/lazyspender"
)

// Data is the root of a seed file.
type Data struct {
	Users           []userSeed           `yaml:"users"`
	Transactions    []transactionSeed    `yaml:"transactions"`
	PlannedPayments []plannedPaymentSeed `yaml:"plannedPayments"`
}

type userSeed struct {
	Owner    string   `yaml:"owner"`
	Accounts []string `yaml:"accounts"`
}

// transactionSeed mirrors the transaction wire format. Dates accept
// RFC 3339 timestamps or plain dates.
type transactionSeed struct {
	Owner             string                      `yaml:"owner"`
	Account           string                      `yaml:"account"`
	Category          string                      `yaml:"category"`
	Amount            float64                     `yaml:"amount"`
	Note              string                      `yaml:"note"`
	Date              string                      `yaml:"date"`
	Currency          string                      `yaml:"currency"`
	RefCurrencyAmount float64                     `yaml:"refCurrencyAmount"`
	Type              lazyspender.TransactionType `yaml:"type"`
}

type plannedPaymentSeed struct {
	Owner            string                       `yaml:"owner"`
	Account          string                       `yaml:"account"`
	Category         string                       `yaml:"category"`
	Amount           float64                      `yaml:"amount"`
	Description      string                       `yaml:"description"`
	Currency         string                       `yaml:"currency"`
	StartDate        string                       `yaml:"startDate"`
	RecurrenceType   lazyspender.RecurrenceType   `yaml:"recurrenceType"`
	RecurrenceValue  string                       `yaml:"recurrenceValue"`
	EndType          lazyspender.EndType          `yaml:"endType"`
	EndValue         string                       `yaml:"endValue"`
	ConfirmationType lazyspender.ConfirmationType `yaml:"confirmationType"`
}

// Load parses a seed file.
func Load(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &data, nil
}

// Apply inserts the seed data into the store. It returns the number of
// records created.
func Apply(st *store.Store, data *Data) (int, error) {
	count := 0

	for _, user := range data.Users {
		req := lazyspender.UserRequest{Owner: user.Owner, Accounts: user.Accounts}
		if _, err := st.CreateUser(&req); err != nil {
			return count, fmt.Errorf("failed to seed user %s: %w", user.Owner, err)
		}
		count++
	}

	for i, seed := range data.Transactions {
		req, err := seed.toRequest()
		if err != nil {
			return count, fmt.Errorf("invalid seed transaction %d: %w", i, err)
		}
		if _, err := st.CreateTransaction(req); err != nil {
			return count, fmt.Errorf("failed to seed transaction %d: %w", i, err)
		}
		count++
	}

	for i, seed := range data.PlannedPayments {
		req, err := seed.toRequest()
		if err != nil {
			return count, fmt.Errorf("invalid seed planned payment %d: %w", i, err)
		}
		if _, err := st.CreatePlannedPayment(req); err != nil {
			return count, fmt.Errorf("failed to seed planned payment %d: %w", i, err)
		}
		count++
	}

	return count, nil
}

func (s *transactionSeed) toRequest() (*lazyspender.CreateTransactionRequest, error) {
	date, err := parseDate(s.Date)
	if err != nil {
		return nil, err
	}

	refAmount := s.RefCurrencyAmount
	if refAmount == 0 {
		refAmount = s.Amount
	}

	return &lazyspender.CreateTransactionRequest{
		Owner:             s.Owner,
		Account:           s.Account,
		Category:          s.Category,
		Amount:            s.Amount,
		Note:              s.Note,
		Date:              date,
		Currency:          s.Currency,
		RefCurrencyAmount: refAmount,
		Type:              s.Type,
	}, nil
}

func (s *plannedPaymentSeed) toRequest() (*lazyspender.PlannedPaymentRequest, error) {
	start, err := parseDate(s.StartDate)
	if err != nil {
		return nil, err
	}

	return &lazyspender.PlannedPaymentRequest{
		Owner:            s.Owner,
		Account:          s.Account,
		Category:         s.Category,
		Amount:           s.Amount,
		Description:      s.Description,
		Currency:         s.Currency,
		StartDate:        start,
		RecurrenceType:   s.RecurrenceType,
		RecurrenceValue:  s.RecurrenceValue,
		EndType:          s.EndType,
		EndValue:         s.EndValue,
		ConfirmationType: s.ConfirmationType,
	}, nil
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", value)
	}
	return t, nil
}
