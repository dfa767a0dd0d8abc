package controller

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
	"github.com/zakat-calculator/backend/internal/integration/entrypoint/dto"
	"github.com/zakat-calculator/backend/internal/integration/entrypoint/middleware"
)

// handleError maps domain errors onto HTTP responses: validation 400,
// invariant violations 409 (price gaps 503), not found 404 and auth
// failures by code. Anything else is logged and hidden behind a 500.
func handleError(ctx *gin.Context, err error) {
	var zakatErr *domainerror.ZakatError
	if errors.As(err, &zakatErr) {
		ctx.JSON(statusForZakatError(zakatErr), dto.ErrorResponse{
			Error: zakatErr.Error(),
			Code:  string(zakatErr.Code),
		})
		return
	}

	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		ctx.JSON(statusForAuthError(authErr.Code), dto.ErrorResponse{
			Error: authErr.Message,
			Code:  string(authErr.Code),
		})
		return
	}

	slog.Error("Request failed",
		"method", ctx.Request.Method,
		"path", ctx.FullPath(),
		"error", err,
	)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

func statusForZakatError(err *domainerror.ZakatError) int {
	switch {
	case err.Code == domainerror.ErrCodePriceUnavailable:
		return http.StatusServiceUnavailable
	case domainerror.IsValidation(err):
		return http.StatusBadRequest
	case domainerror.IsNotFound(err):
		return http.StatusNotFound
	case domainerror.IsInvariantViolation(err):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func statusForAuthError(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeWeakPassword,
		domainerror.ErrCodeInvalidEmail:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeInvalidToken,
		domainerror.ErrCodeExpiredToken,
		domainerror.ErrCodeMissingToken:
		return http.StatusUnauthorized
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(ctx *gin.Context, err error) {
	resp := dto.ErrorResponse{
		Error: "Invalid request body",
		Code:  string(domainerror.ErrCodeMissingFields),
	}
	if err != nil {
		resp.Details = err.Error()
	}
	ctx.JSON(http.StatusBadRequest, resp)
}

// currentUser returns the authenticated user id or writes a 401.
func currentUser(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Unauthorized",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return userID, true
}

// pathID parses a uuid path parameter or writes a 400.
func pathID(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + name,
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return uuid.Nil, false
	}
	return id, true
}

// pathYear parses the :year path parameter as a positive Hijri year or writes a 400.
func pathYear(ctx *gin.Context) (int, bool) {
	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil || year < 1 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid hijri year",
			Code:  string(domainerror.ErrCodeInvalidHijriDate),
		})
		return 0, false
	}
	return year, true
}

// bindOptionalJSON binds the body when one is present. An empty body leaves
// req at its zero value.
func bindOptionalJSON(ctx *gin.Context, req interface{}) bool {
	if err := ctx.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(ctx, err)
		return false
	}
	return true
}
