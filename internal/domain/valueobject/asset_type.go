package valueobject

import (
	"strings"

	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
)

// AssetType is a zakatable asset category.
type AssetType string

const (
	AssetTypeCash                 AssetType = "CASH"
	AssetTypeGold                 AssetType = "GOLD"
	AssetTypeSilver               AssetType = "SILVER"
	AssetTypeStocks               AssetType = "STOCKS"
	AssetTypeBonds                AssetType = "BONDS"
	AssetTypeMutualFunds          AssetType = "MUTUAL_FUNDS"
	AssetTypeBusinessInventory    AssetType = "BUSINESS_INVENTORY"
	AssetTypeBusinessAssets       AssetType = "BUSINESS_ASSETS"
	AssetTypeInvestmentRealEstate AssetType = "INVESTMENT_REAL_ESTATE"
	AssetTypeReceivableDebts      AssetType = "RECEIVABLE_DEBTS"
)

var zakatableTypes = []AssetType{
	AssetTypeCash,
	AssetTypeGold,
	AssetTypeSilver,
	AssetTypeStocks,
	AssetTypeBonds,
	AssetTypeMutualFunds,
	AssetTypeBusinessInventory,
	AssetTypeBusinessAssets,
	AssetTypeInvestmentRealEstate,
	AssetTypeReceivableDebts,
}

// ParseAssetType validates an asset type code. Codes are case-insensitive.
func ParseAssetType(value string) (AssetType, error) {
	t := AssetType(strings.ToUpper(strings.TrimSpace(value)))
	if !t.IsValid() {
		return "", domainerror.NewZakatError(
			domainerror.ErrCodeInvalidAssetType,
			"invalid asset type "+value,
			domainerror.ErrInvalidAssetType,
		)
	}
	return t, nil
}

// AllZakatableTypes returns every asset type in declaration order.
func AllZakatableTypes() []AssetType {
	out := make([]AssetType, len(zakatableTypes))
	copy(out, zakatableTypes)
	return out
}

// IsValid reports whether t belongs to the vocabulary.
func (t AssetType) IsValid() bool {
	for _, z := range zakatableTypes {
		if z == t {
			return true
		}
	}
	return false
}

// IsZakatable reports whether assets of this type are liable for zakat.
// Every member of the vocabulary is zakatable.
func (t AssetType) IsZakatable() bool {
	return t.IsValid()
}

// DisplayName returns e.g. "Investment Real Estate" for INVESTMENT_REAL_ESTATE.
func (t AssetType) DisplayName() string {
	words := strings.Split(string(t), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = w[:1] + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

func (t AssetType) String() string {
	return string(t)
}
