package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zakat-calculator/backend/internal/domain/entity"
)

// CreateLiabilityRequest represents POST /liabilities.
type CreateLiabilityRequest struct {
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	Description      string          `json:"description" binding:"required"`
	DueDate          *time.Time      `json:"due_date"`
	IsImmediatelyDue bool            `json:"is_immediately_due"`
}

// LiabilityResponse represents a liability in API responses.
type LiabilityResponse struct {
	ID               string        `json:"id"`
	Amount           MoneyResponse `json:"amount"`
	Description      string        `json:"description"`
	DueDate          *time.Time    `json:"due_date,omitempty"`
	IsImmediatelyDue bool          `json:"is_immediately_due"`
	IsDeductible     bool          `json:"is_deductible"`
	CreatedAt        time.Time     `json:"created_at"`
}

// ToLiabilityResponse converts a domain Liability entity.
func ToLiabilityResponse(l *entity.Liability) LiabilityResponse {
	return LiabilityResponse{
		ID:               l.ID.String(),
		Amount:           ToMoneyResponse(l.Amount),
		Description:      l.Description,
		DueDate:          l.DueDate,
		IsImmediatelyDue: l.IsImmediatelyDue,
		IsDeductible:     l.IsDeductible(),
		CreatedAt:        l.CreatedAt,
	}
}

// ToLiabilityResponses converts a slice of liabilities.
func ToLiabilityResponses(liabilities []*entity.Liability) []LiabilityResponse {
	out := make([]LiabilityResponse, 0, len(liabilities))
	for _, l := range liabilities {
		out = append(out, ToLiabilityResponse(l))
	}
	return out
}
