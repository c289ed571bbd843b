// Package lazyspender provides a LazySpender API client and types.
package lazyspender

import "time"

// TransactionType determines the direction of a transaction amount.
type TransactionType string

const (
	TypeIncome  TransactionType = "INCOME"
	TypeExpense TransactionType = "EXPENSE"
)

// Transaction represents a single money movement on an account.
type Transaction struct {
	ID                string          `json:"id"`
	Owner             string          `json:"owner"`
	Account           string          `json:"account"`
	Category          string          `json:"category"`
	Amount            float64         `json:"amount"`
	Note              string          `json:"note,omitempty"`
	Date              time.Time       `json:"date"`
	Currency          string          `json:"currency"`
	RefCurrencyAmount float64         `json:"refCurrencyAmount"`
	PlannedPaymentID  string          `json:"plannedPaymentId,omitempty"`
	Type              TransactionType `json:"type"`
}

// CreateTransactionRequest is the request body for creating or updating a transaction.
type CreateTransactionRequest struct {
	Owner             string          `json:"owner"`
	Account           string          `json:"account"`
	Category          string          `json:"category"`
	Amount            float64         `json:"amount"`
	Note              string          `json:"note,omitempty"`
	Date              time.Time       `json:"date"`
	Currency          string          `json:"currency"`
	RefCurrencyAmount float64         `json:"refCurrencyAmount"`
	PlannedPaymentID  string          `json:"plannedPaymentId,omitempty"`
	Type              TransactionType `json:"type"`
}

// Page is one page of a paginated listing. Metadata is authoritative
// from the server.
type Page[T any] struct {
	Content       []T   `json:"content"`
	PageNumber    int   `json:"pageNumber"`
	PageSize      int   `json:"pageSize"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	HasNext       bool  `json:"hasNext"`
	HasPrevious   bool  `json:"hasPrevious"`
}

// TrendPeriod selects the window and bucketing of a balance trend.
type TrendPeriod string

const (
	PeriodLast12Weeks TrendPeriod = "LAST_12_WEEKS"
	PeriodLastYear    TrendPeriod = "LAST_YEAR"
	PeriodFromStart   TrendPeriod = "FROM_START"
)

// BalanceTrendParams identifies one balance-trend query.
type BalanceTrendParams struct {
	Owner    string
	Accounts []string
	Period   TrendPeriod
}

// BalanceTrendDataPoint is one bucket of the balance trend.
type BalanceTrendDataPoint struct {
	Label     string    `json:"label"`
	Timestamp time.Time `json:"timestamp"`
	Balance   float64   `json:"balance"`
	Income    float64   `json:"income"`
	Expense   float64   `json:"expense"`
}

// YAxisConfig is the suggested chart axis for a trend response.
type YAxisConfig struct {
	MinValue float64 `json:"minValue"`
	MaxValue float64 `json:"maxValue"`
	Interval float64 `json:"interval"`
}

// BalanceTrendResponse is the response from /api/balance-trend.
type BalanceTrendResponse struct {
	TotalBalance float64                 `json:"totalBalance"`
	Currency     string                  `json:"currency"`
	DataPoints   []BalanceTrendDataPoint `json:"dataPoints"`
	YAxisConfig  YAxisConfig             `json:"yaxisConfig"`
}

// RecurrenceType is how a planned payment repeats.
type RecurrenceType string

const (
	RecurrenceWeekly  RecurrenceType = "WEEKLY"
	RecurrenceMonthly RecurrenceType = "MONTHLY"
)

// EndType is how a planned payment's recurrence ends.
type EndType string

const (
	EndOccurrence EndType = "OCCURRENCE"
	EndDate       EndType = "DATE"
	EndNever      EndType = "NEVER"
)

// ConfirmationType is whether a due payment posts automatically or manually.
type ConfirmationType string

const (
	ConfirmAuto   ConfirmationType = "AUTO"
	ConfirmManual ConfirmationType = "MANUAL"
)

// PaymentStatus is the lifecycle state of a planned payment.
type PaymentStatus string

const (
	StatusActive    PaymentStatus = "ACTIVE"
	StatusPaused    PaymentStatus = "PAUSED"
	StatusCompleted PaymentStatus = "COMPLETED"
	StatusCancelled PaymentStatus = "CANCELLED"
)

// PlannedPayment represents a recurring payment definition.
type PlannedPayment struct {
	ID               string           `json:"id"`
	Owner            string           `json:"owner"`
	Account          string           `json:"account"`
	Category         string           `json:"category"`
	Amount           float64          `json:"amount"`
	Description      string           `json:"description"`
	Currency         string           `json:"currency"`
	StartDate        time.Time        `json:"startDate"`
	RecurrenceType   RecurrenceType   `json:"recurrenceType"`
	RecurrenceValue  string           `json:"recurrenceValue"`
	EndType          EndType          `json:"endType"`
	EndValue         string           `json:"endValue,omitempty"`
	ConfirmationType ConfirmationType `json:"confirmationType"`
	Status           PaymentStatus    `json:"status"`
	NextDueDate      time.Time        `json:"nextDueDate"`
}

// PlannedPaymentRequest is the request body for creating or updating a
// planned payment. RecurrenceValue is a weekday name for WEEKLY and a
// day-of-month for MONTHLY; EndValue is an occurrence count for OCCURRENCE
// and an RFC 3339 date for DATE.
type PlannedPaymentRequest struct {
	Owner            string           `json:"owner"`
	Account          string           `json:"account"`
	Category         string           `json:"category"`
	Amount           float64          `json:"amount"`
	Description      string           `json:"description"`
	Currency         string           `json:"currency"`
	StartDate        time.Time        `json:"startDate"`
	RecurrenceType   RecurrenceType   `json:"recurrenceType"`
	RecurrenceValue  string           `json:"recurrenceValue"`
	EndType          EndType          `json:"endType"`
	EndValue         string           `json:"endValue,omitempty"`
	ConfirmationType ConfirmationType `json:"confirmationType"`
}

// User represents an application user and the accounts they track.
type User struct {
	ID       string   `json:"id"`
	Owner    string   `json:"owner"`
	Accounts []string `json:"accounts"`
}

// UserRequest is the request body for creating or updating a user.
type UserRequest struct {
	Owner    string   `json:"owner"`
	Accounts []string `json:"accounts"`
}

// ErrorResponse is the error body returned by the LazySpender API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
