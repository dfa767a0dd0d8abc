// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

// Liability represents a debt that may reduce a user's zakatable wealth.
type Liability struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Amount           valueobject.Money
	Description      string
	DueDate          *time.Time
	IsImmediatelyDue bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewLiability creates a new Liability entity.
func NewLiability(userID uuid.UUID, amount valueobject.Money, description string, dueDate *time.Time, immediatelyDue bool) *Liability {
	now := time.Now().UTC()

	return &Liability{
		ID:               uuid.New(),
		UserID:           userID,
		Amount:           amount,
		Description:      description,
		DueDate:          dueDate,
		IsImmediatelyDue: immediatelyDue,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// UpdateAmount replaces the outstanding amount.
func (l *Liability) UpdateAmount(amount valueobject.Money) {
	l.Amount = amount
	l.UpdatedAt = time.Now().UTC()
}

// UpdateDetails replaces the description and due date.
func (l *Liability) UpdateDetails(description string, dueDate *time.Time) {
	l.Description = description
	l.DueDate = dueDate
	l.UpdatedAt = time.Now().UTC()
}

// MarkAsImmediatelyDue makes the liability deductible.
func (l *Liability) MarkAsImmediatelyDue() {
	l.IsImmediatelyDue = true
	l.UpdatedAt = time.Now().UTC()
}

// IsDeductible reports whether the liability is subtracted from zakatable wealth.
// Only immediately due debts are deducted.
func (l *Liability) IsDeductible() bool {
	return l.IsImmediatelyDue
}
