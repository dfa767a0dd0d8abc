package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zakat-calculator/backend/internal/application/usecase/zakat"
	"github.com/zakat-calculator/backend/internal/integration/entrypoint/dto"
)

// ZakatController handles calculation, nisab and yearly payment endpoints.
type ZakatController struct {
	calculateUseCase   *zakat.CalculateZakatUseCase
	nisabUseCase       *zakat.GetNisabThresholdUseCase
	summaryUseCase     *zakat.GetPortfolioSummaryUseCase
	markAllPaidUseCase *zakat.MarkAllZakatPaidUseCase
	resetYearUseCase   *zakat.ResetZakatYearUseCase
}

// NewZakatController creates a new zakat controller instance.
func NewZakatController(
	calculateUseCase *zakat.CalculateZakatUseCase,
	nisabUseCase *zakat.GetNisabThresholdUseCase,
	summaryUseCase *zakat.GetPortfolioSummaryUseCase,
	markAllPaidUseCase *zakat.MarkAllZakatPaidUseCase,
	resetYearUseCase *zakat.ResetZakatYearUseCase,
) *ZakatController {
	return &ZakatController{
		calculateUseCase:   calculateUseCase,
		nisabUseCase:       nisabUseCase,
		summaryUseCase:     summaryUseCase,
		markAllPaidUseCase: markAllPaidUseCase,
		resetYearUseCase:   resetYearUseCase,
	}
}

// Calculate handles POST /zakat/calculate requests.
func (c *ZakatController) Calculate(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.CalculateZakatRequest
	if !bindOptionalJSON(ctx, &req) {
		return
	}
	assetIDs := make([]uuid.UUID, 0, len(req.AssetIDs))
	for _, raw := range req.AssetIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			badRequest(ctx, err)
			return
		}
		assetIDs = append(assetIDs, id)
	}

	output, err := c.calculateUseCase.Execute(ctx.Request.Context(), zakat.CalculateZakatInput{
		UserID:   userID,
		AssetIDs: assetIDs,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCalculateZakatResponse(output))
}

// Nisab handles GET /zakat/nisab requests. ?method= and ?currency=
// override the user's preferences.
func (c *ZakatController) Nisab(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.nisabUseCase.Execute(ctx.Request.Context(), zakat.GetNisabThresholdInput{
		UserID:   userID,
		Method:   ctx.Query("method"),
		Currency: ctx.Query("currency"),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToNisabResponse(output))
}

// Summary handles GET /zakat/summary requests.
func (c *ZakatController) Summary(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), zakat.GetPortfolioSummaryInput{UserID: userID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPortfolioSummaryResponse(output))
}

// MarkAllPaid handles POST /zakat/payments requests.
func (c *ZakatController) MarkAllPaid(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.MarkAllPaidRequest
	if !bindOptionalJSON(ctx, &req) {
		return
	}
	paidDate := time.Now().UTC()
	if req.PaidDate != nil {
		paidDate = *req.PaidDate
	}

	output, err := c.markAllPaidUseCase.Execute(ctx.Request.Context(), zakat.MarkAllZakatPaidInput{
		UserID:   userID,
		PaidDate: paidDate,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MarkAllPaidResponse{
		HijriYear: output.HijriYear,
		Assets:    dto.ToAssetResponses(output.Assets),
	})
}

// ResetYear handles DELETE /zakat/payments/:year requests.
func (c *ZakatController) ResetYear(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	year, ok := pathYear(ctx)
	if !ok {
		return
	}

	reset, err := c.resetYearUseCase.Execute(ctx.Request.Context(), zakat.ResetZakatYearInput{
		UserID:    userID,
		HijriYear: year,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ResetZakatYearResponse{HijriYear: year, Reset: reset})
}
