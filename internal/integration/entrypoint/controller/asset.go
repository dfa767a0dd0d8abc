package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zakat-calculator/backend/internal/application/usecase/asset"
	"github.com/zakat-calculator/backend/internal/integration/entrypoint/dto"
)

// AssetController handles asset endpoints.
type AssetController struct {
	createUseCase      *asset.CreateAssetUseCase
	listUseCase        *asset.ListAssetsUseCase
	getUseCase         *asset.GetAssetUseCase
	updateValueUseCase *asset.UpdateAssetValueUseCase
	markPaidUseCase    *asset.MarkAssetZakatPaidUseCase
	resetPaidUseCase   *asset.ResetAssetZakatPaymentUseCase
	deleteUseCase      *asset.DeleteAssetUseCase
}

// NewAssetController creates a new asset controller instance.
func NewAssetController(
	createUseCase *asset.CreateAssetUseCase,
	listUseCase *asset.ListAssetsUseCase,
	getUseCase *asset.GetAssetUseCase,
	updateValueUseCase *asset.UpdateAssetValueUseCase,
	markPaidUseCase *asset.MarkAssetZakatPaidUseCase,
	resetPaidUseCase *asset.ResetAssetZakatPaymentUseCase,
	deleteUseCase *asset.DeleteAssetUseCase,
) *AssetController {
	return &AssetController{
		createUseCase:      createUseCase,
		listUseCase:        listUseCase,
		getUseCase:         getUseCase,
		updateValueUseCase: updateValueUseCase,
		markPaidUseCase:    markPaidUseCase,
		resetPaidUseCase:   resetPaidUseCase,
		deleteUseCase:      deleteUseCase,
	}
}

// Create handles POST /assets requests.
func (c *AssetController) Create(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateAssetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	input := asset.CreateAssetInput{
		UserID:          userID,
		Kind:            req.Kind,
		Type:            req.Type,
		Currency:        req.Currency,
		Value:           req.Value,
		AcquisitionDate: req.AcquisitionDate,
		Description:     req.Description,
	}
	if s := req.Stock; s != nil {
		input.Stock = &asset.StockInput{Symbol: s.Symbol, Shares: s.Shares, PricePerShare: s.PricePerShare}
	}
	if m := req.Metal; m != nil {
		input.Metal = &asset.MetalInput{
			Weight:       m.Weight,
			Unit:         m.Unit,
			Karat:        m.Karat,
			SilverPurity: m.SilverPurity,
			PricePerGram: m.PricePerGram,
		}
	}
	if p := req.Property; p != nil {
		input.Property = &asset.PropertyInput{
			Address:           p.Address,
			Appraisal:         p.Appraisal,
			LastValuationDate: p.LastValuationDate,
		}
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToAssetResponse(output.Asset))
}

// List handles GET /assets requests, optionally filtered by ?type=.
func (c *AssetController) List(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), asset.ListAssetsInput{
		UserID: userID,
		Type:   ctx.Query("type"),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAssetResponses(output.Assets))
}

// Get handles GET /assets/:id requests.
func (c *AssetController) Get(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	assetID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), asset.GetAssetInput{UserID: userID, AssetID: assetID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAssetResponse(output.Asset))
}

// UpdateValue handles PATCH /assets/:id/value requests.
func (c *AssetController) UpdateValue(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	assetID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateAssetValueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	output, err := c.updateValueUseCase.Execute(ctx.Request.Context(), asset.UpdateAssetValueInput{
		UserID:         userID,
		AssetID:        assetID,
		Value:          req.Value,
		Shares:         req.Shares,
		PricePerShare:  req.PricePerShare,
		PricePerGram:   req.PricePerGram,
		UseMarketPrice: req.UseMarketPrice,
		ValuedAt:       req.ValuedAt,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAssetResponse(output.Asset))
}

// MarkZakatPaid handles POST /assets/:id/zakat-payments requests.
func (c *AssetController) MarkZakatPaid(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	assetID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.MarkZakatPaidRequest
	if !bindOptionalJSON(ctx, &req) {
		return
	}
	paidDate := time.Now().UTC()
	if req.PaidDate != nil {
		paidDate = *req.PaidDate
	}

	output, err := c.markPaidUseCase.Execute(ctx.Request.Context(), asset.MarkAssetZakatPaidInput{
		UserID:    userID,
		AssetID:   assetID,
		HijriYear: req.HijriYear,
		Amount:    req.Amount,
		PaidDate:  paidDate,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToAssetResponse(output.Asset))
}

// ResetZakatPayment handles DELETE /assets/:id/zakat-payments/:year requests.
func (c *AssetController) ResetZakatPayment(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	assetID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	year, ok := pathYear(ctx)
	if !ok {
		return
	}

	a, err := c.resetPaidUseCase.Execute(ctx.Request.Context(), asset.ResetAssetZakatPaymentInput{
		UserID:    userID,
		AssetID:   assetID,
		HijriYear: year,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAssetResponse(a))
}

// Delete handles DELETE /assets/:id requests.
func (c *AssetController) Delete(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	assetID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), asset.DeleteAssetInput{UserID: userID, AssetID: assetID}); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
