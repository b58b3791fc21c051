package handler

import (
	"encoding/json"
	"time"

	"github.com/fintrack/finance-api/internal/core/domain"
	"github.com/fintrack/finance-api/internal/core/ports"
)

// --- Request types ---

type recurrenceRequest struct {
	Pattern string    `json:"pattern"  validate:"required,oneof=daily weekly monthly yearly"`
	EndDate time.Time `json:"end_date" validate:"required"`
}

type createTransactionRequest struct {
	Type         string             `json:"type"        validate:"required,oneof=income expense"`
	Amount       float64            `json:"amount"      validate:"gte=0"`
	Category     string             `json:"category"    validate:"required"`
	Description  string             `json:"description" validate:"required"`
	Date         time.Time          `json:"date"`
	Tags         []string           `json:"tags"`
	Recurring    *recurrenceRequest `json:"recurring"`
	Currency     string             `json:"currency"`
	ExchangeRate float64            `json:"exchange_rate"`
}

// optionalRecurrence distinguishes an absent recurring field (leave
// unchanged) from an explicit null (clear the schedule).
type optionalRecurrence struct {
	set   bool
	value *recurrenceRequest
}

func (o *optionalRecurrence) UnmarshalJSON(b []byte) error {
	o.set = true
	if string(b) == "null" {
		o.value = nil
		return nil
	}
	return json.Unmarshal(b, &o.value)
}

type updateTransactionRequest struct {
	Type         *string            `json:"type" validate:"omitempty,oneof=income expense"`
	Amount       *float64           `json:"amount"`
	Category     *string            `json:"category"`
	Description  *string            `json:"description"`
	Date         *time.Time         `json:"date"`
	Tags         *[]string          `json:"tags"`
	Recurring    optionalRecurrence `json:"recurring"`
	Currency     *string            `json:"currency"`
	ExchangeRate *float64           `json:"exchange_rate"`
}

func (r *updateTransactionRequest) toUpdate() ports.TransactionUpdate {
	upd := ports.TransactionUpdate{
		Amount:       r.Amount,
		Category:     r.Category,
		Description:  r.Description,
		Date:         r.Date,
		Tags:         r.Tags,
		Currency:     r.Currency,
		ExchangeRate: r.ExchangeRate,
	}
	if r.Type != nil {
		t := domain.TransactionType(*r.Type)
		upd.Type = &t
	}
	if r.Recurring.set {
		var rec *domain.Recurrence
		if r.Recurring.value != nil {
			rec = &domain.Recurrence{
				Pattern: r.Recurring.value.Pattern,
				EndDate: r.Recurring.value.EndDate,
			}
		}
		upd.Recurring = &rec
	}
	return upd
}
