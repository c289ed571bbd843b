package store

import (
	"encoding/json"
	"sort"

	"github.com/google/uuid"

	"github.com/lazyspender/lazyspender-go/pkg/lazyspender"
)

// CreatePlannedPayment stores a new planned payment. The payment starts
// ACTIVE with its first due date at the start date.
func (s *Store) CreatePlannedPayment(req *lazyspender.PlannedPaymentRequest) (*lazyspender.PlannedPayment, error) {
	payment := &lazyspender.PlannedPayment{
		ID:               uuid.New().String(),
		Owner:            req.Owner,
		Account:          req.Account,
		Category:         req.Category,
		Amount:           req.Amount,
		Description:      req.Description,
		Currency:         req.Currency,
		StartDate:        req.StartDate,
		RecurrenceType:   req.RecurrenceType,
		RecurrenceValue:  req.RecurrenceValue,
		EndType:          req.EndType,
		EndValue:         req.EndValue,
		ConfirmationType: req.ConfirmationType,
		Status:           lazyspender.StatusActive,
		NextDueDate:      req.StartDate,
	}

	if err := s.put(BucketPlannedPayments, payment.ID, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// GetPlannedPayment retrieves a planned payment by ID.
func (s *Store) GetPlannedPayment(id string) (*lazyspender.PlannedPayment, error) {
	var payment lazyspender.PlannedPayment
	if err := s.get(BucketPlannedPayments, id, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// PutPlannedPayment stores a planned payment under its existing ID.
func (s *Store) PutPlannedPayment(payment *lazyspender.PlannedPayment) error {
	return s.put(BucketPlannedPayments, payment.ID, payment)
}

// UpdatePlannedPayment replaces the definition fields of an existing
// planned payment. Status and next due date are managed by the server
// and left untouched.
func (s *Store) UpdatePlannedPayment(id string, req *lazyspender.PlannedPaymentRequest) (*lazyspender.PlannedPayment, error) {
	payment, err := s.GetPlannedPayment(id)
	if err != nil {
		return nil, err
	}

	payment.Owner = req.Owner
	payment.Account = req.Account
	payment.Category = req.Category
	payment.Amount = req.Amount
	payment.Description = req.Description
	payment.Currency = req.Currency
	payment.StartDate = req.StartDate
	payment.RecurrenceType = req.RecurrenceType
	payment.RecurrenceValue = req.RecurrenceValue
	payment.EndType = req.EndType
	payment.EndValue = req.EndValue
	payment.ConfirmationType = req.ConfirmationType

	if err := s.put(BucketPlannedPayments, id, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// DeletePlannedPayment removes a planned payment by ID.
func (s *Store) DeletePlannedPayment(id string) error {
	return s.delete(BucketPlannedPayments, id)
}

// ListPlannedPayments returns one owner's planned payments ordered by
// next due date. An empty status matches all statuses.
func (s *Store) ListPlannedPayments(owner string, status lazyspender.PaymentStatus) ([]lazyspender.PlannedPayment, error) {
	raws, err := s.list(BucketPlannedPayments)
	if err != nil {
		return nil, err
	}

	payments := make([]lazyspender.PlannedPayment, 0, len(raws))
	for _, raw := range raws {
		var payment lazyspender.PlannedPayment
		if err := json.Unmarshal(raw, &payment); err != nil {
			return nil, err
		}
		if payment.Owner != owner {
			continue
		}
		if status != "" && payment.Status != status {
			continue
		}
		payments = append(payments, payment)
	}

	sort.Slice(payments, func(i, j int) bool {
		return payments[i].NextDueDate.Before(payments[j].NextDueDate)
	})
	return payments, nil
}
