package valueobject

import (
	"strings"

	"github.com/shopspring/decimal"

	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
)

// NisabMethod selects the metal used to price the nisab threshold.
type NisabMethod string

const (
	NisabMethodGold   NisabMethod = "GOLD"
	NisabMethodSilver NisabMethod = "SILVER"
)

var (
	goldNisabGrams   = decimal.NewFromInt(85)
	silverNisabGrams = decimal.NewFromInt(595)
)

// ParseNisabMethod validates a nisab method. Values are case-insensitive.
func ParseNisabMethod(value string) (NisabMethod, error) {
	switch NisabMethod(strings.ToUpper(strings.TrimSpace(value))) {
	case NisabMethodGold:
		return NisabMethodGold, nil
	case NisabMethodSilver:
		return NisabMethodSilver, nil
	}
	return "", domainerror.NewZakatError(
		domainerror.ErrCodeInvalidNisabMethod,
		"invalid nisab method "+value,
		domainerror.ErrInvalidNisabMethod,
	)
}

// ReferenceGrams returns the weight of metal that defines the threshold:
// 85 g for gold, 595 g for silver.
func (m NisabMethod) ReferenceGrams() decimal.Decimal {
	if m == NisabMethodSilver {
		return silverNisabGrams
	}
	return goldNisabGrams
}

// ReferenceMetal returns the asset type whose price drives the threshold.
func (m NisabMethod) ReferenceMetal() AssetType {
	if m == NisabMethodSilver {
		return AssetTypeSilver
	}
	return AssetTypeGold
}

// DisplayName returns "Gold (85g)" or "Silver (595g)".
func (m NisabMethod) DisplayName() string {
	if m == NisabMethodSilver {
		return "Silver (595g)"
	}
	return "Gold (85g)"
}

func (m NisabMethod) String() string {
	return string(m)
}
