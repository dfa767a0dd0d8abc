package persistence

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
)

// notFoundOr maps gorm.ErrRecordNotFound to a coded not-found error and
// returns any other error unchanged.
func notFoundOr(err error, code domainerror.ZakatErrorCode, sentinel error, what string, key any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainerror.NewZakatError(code, fmt.Sprintf("%s %v not found", what, key), sentinel)
	}
	return err
}
