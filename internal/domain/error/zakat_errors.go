// Package error defines domain-specific errors for the Zakat Calculator application.
package error

import (
	"errors"
	"strings"
)

// Validation errors: a value object or entity could not be constructed.
var (
	// ErrInvalidAssetType is returned when an asset type is not in the zakatable vocabulary.
	ErrInvalidAssetType = errors.New("invalid asset type")

	// ErrUnsupportedCurrency is returned when a currency code is not supported.
	ErrUnsupportedCurrency = errors.New("unsupported currency")

	// ErrInvalidHijriDate is returned when a Hijri year, month or day is out of range.
	ErrInvalidHijriDate = errors.New("invalid hijri date")

	// ErrInvalidHijriDateFormat is returned when a Hijri date string does not match YYYY-MM-DDH.
	ErrInvalidHijriDateFormat = errors.New("invalid hijri date format, expected YYYY-MM-DDH")

	// ErrNegativeAmount is returned when a monetary amount is negative.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidMoneyFormat is returned when a money string does not match "CUR AMOUNT".
	ErrInvalidMoneyFormat = errors.New("invalid money format, expected \"CURRENCY AMOUNT\"")

	// ErrNegativeFactor is returned when money is multiplied by a negative factor.
	ErrNegativeFactor = errors.New("factor cannot be negative")

	// ErrInvalidPercentage is returned when a percentage is outside [0, 100].
	ErrInvalidPercentage = errors.New("percentage must be between 0 and 100")

	// ErrInvalidNisabMethod is returned when a nisab method is neither GOLD nor SILVER.
	ErrInvalidNisabMethod = errors.New("invalid nisab method")

	// ErrInvalidAssetDetails is returned when kind-specific asset fields are inconsistent.
	ErrInvalidAssetDetails = errors.New("invalid asset details")

	// ErrInvalidReminderFrequency is returned when a reminder frequency is not weekly, monthly or quarterly.
	ErrInvalidReminderFrequency = errors.New("invalid reminder frequency")

	// ErrMissingFields is returned when a request omits required fields.
	ErrMissingFields = errors.New("required fields are missing")

	// ErrInvalidSnoozeTime is returned when a reminder is snoozed to a past instant.
	ErrInvalidSnoozeTime = errors.New("snooze time must be in the future")
)

// Invariant violations: a well-formed operation would break a domain rule.
var (
	// ErrCurrencyMismatch is returned when money in different currencies is combined or compared.
	ErrCurrencyMismatch = errors.New("currency mismatch")

	// ErrNegativeResult is returned when a subtraction would produce a negative amount.
	ErrNegativeResult = errors.New("result cannot be negative")

	// ErrZakatAlreadyPaid is returned when zakat is recorded twice for the same Hijri year.
	ErrZakatAlreadyPaid = errors.New("zakat already paid for this hijri year")

	// ErrDuplicateAsset is returned when an asset id is already present in a portfolio.
	ErrDuplicateAsset = errors.New("asset already exists in portfolio")

	// ErrDuplicateLiability is returned when a liability id is already present in a portfolio.
	ErrDuplicateLiability = errors.New("liability already exists in portfolio")

	// ErrForeignOwner is returned when an asset or liability belongs to another user.
	ErrForeignOwner = errors.New("entity does not belong to this user")

	// ErrNoAssets is returned when wealth is computed over an empty asset list.
	ErrNoAssets = errors.New("no assets provided")

	// ErrDerivedValue is returned when a derived asset value is set directly.
	ErrDerivedValue = errors.New("asset value is derived and cannot be set directly")

	// ErrInvalidReminderTransition is returned when a reminder status change is not allowed.
	ErrInvalidReminderTransition = errors.New("invalid reminder status transition")

	// ErrEmailAlreadyExists is returned when a user registers with an email already in use.
	ErrEmailAlreadyExists = errors.New("email already registered")

	// ErrPriceUnavailable is returned when no market price is known for a commodity/currency pair.
	ErrPriceUnavailable = errors.New("price unavailable")
)

// Not-found errors, raised by collaborators and propagated unchanged.
var (
	// ErrUserNotFound is returned when a user is not found in the system.
	ErrUserNotFound = errors.New("user not found")

	// ErrAssetNotFound is returned when an asset is not found.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrLiabilityNotFound is returned when a liability is not found.
	ErrLiabilityNotFound = errors.New("liability not found")

	// ErrReminderNotFound is returned when a reminder is not found.
	ErrReminderNotFound = errors.New("reminder not found")

	// ErrZakatPaymentNotFound is returned when no payment exists for the requested Hijri year.
	ErrZakatPaymentNotFound = errors.New("no zakat payment recorded for this hijri year")
)

// ZakatErrorCode defines error codes for zakat domain errors.
// Format: ZKT-XXYYYY where XX is the family and YYYY is the specific error.
type ZakatErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAssetType         ZakatErrorCode = "ZKT-010001"
	ErrCodeUnsupportedCurrency      ZakatErrorCode = "ZKT-010002"
	ErrCodeInvalidHijriDate         ZakatErrorCode = "ZKT-010003"
	ErrCodeNegativeAmount           ZakatErrorCode = "ZKT-010004"
	ErrCodeInvalidPercentage        ZakatErrorCode = "ZKT-010005"
	ErrCodeInvalidNisabMethod       ZakatErrorCode = "ZKT-010006"
	ErrCodeInvalidAssetDetails      ZakatErrorCode = "ZKT-010007"
	ErrCodeInvalidReminderFrequency ZakatErrorCode = "ZKT-010008"
	ErrCodeMissingFields            ZakatErrorCode = "ZKT-010009"
	ErrCodeInvalidMoneyFormat       ZakatErrorCode = "ZKT-010010"
	ErrCodeInvalidSnoozeTime        ZakatErrorCode = "ZKT-010011"

	// Invariant violations (02XXXX)
	ErrCodeCurrencyMismatch          ZakatErrorCode = "ZKT-020001"
	ErrCodeNegativeResult            ZakatErrorCode = "ZKT-020002"
	ErrCodeZakatAlreadyPaid          ZakatErrorCode = "ZKT-020003"
	ErrCodeDuplicateEntity           ZakatErrorCode = "ZKT-020004"
	ErrCodeForeignOwner              ZakatErrorCode = "ZKT-020005"
	ErrCodeNoAssets                  ZakatErrorCode = "ZKT-020006"
	ErrCodeDerivedValue              ZakatErrorCode = "ZKT-020007"
	ErrCodeInvalidReminderTransition ZakatErrorCode = "ZKT-020008"
	ErrCodeEmailAlreadyExists        ZakatErrorCode = "ZKT-020009"
	ErrCodePriceUnavailable          ZakatErrorCode = "ZKT-020010"

	// Not found (03XXXX)
	ErrCodeUserNotFound         ZakatErrorCode = "ZKT-030001"
	ErrCodeAssetNotFound        ZakatErrorCode = "ZKT-030002"
	ErrCodeLiabilityNotFound    ZakatErrorCode = "ZKT-030003"
	ErrCodeReminderNotFound     ZakatErrorCode = "ZKT-030004"
	ErrCodeZakatPaymentNotFound ZakatErrorCode = "ZKT-030005"
)

const (
	validationPrefix = "ZKT-01"
	invariantPrefix  = "ZKT-02"
	notFoundPrefix   = "ZKT-03"
)

// ZakatError represents a zakat domain error with code and message.
type ZakatError struct {
	Code    ZakatErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ZakatError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ZakatError) Unwrap() error {
	return e.Err
}

// NewZakatError creates a new ZakatError with the given code and message.
func NewZakatError(code ZakatErrorCode, message string, err error) *ZakatError {
	return &ZakatError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsValidation reports whether err is a malformed-construction error.
func IsValidation(err error) bool {
	return hasCodePrefix(err, validationPrefix)
}

// IsInvariantViolation reports whether err breaks a domain invariant.
func IsInvariantViolation(err error) bool {
	return hasCodePrefix(err, invariantPrefix)
}

// IsNotFound reports whether err refers to a missing entity.
func IsNotFound(err error) bool {
	return hasCodePrefix(err, notFoundPrefix)
}

func hasCodePrefix(err error, prefix string) bool {
	var zakatErr *ZakatError
	if !errors.As(err, &zakatErr) {
		return false
	}
	return strings.HasPrefix(string(zakatErr.Code), prefix)
}
