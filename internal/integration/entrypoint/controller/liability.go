package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zakat-calculator/backend/internal/application/usecase/liability"
	"github.com/zakat-calculator/backend/internal/integration/entrypoint/dto"
)

// LiabilityController handles liability endpoints.
type LiabilityController struct {
	createUseCase *liability.CreateLiabilityUseCase
	listUseCase   *liability.ListLiabilitiesUseCase
	deleteUseCase *liability.DeleteLiabilityUseCase
}

// NewLiabilityController creates a new liability controller instance.
func NewLiabilityController(
	createUseCase *liability.CreateLiabilityUseCase,
	listUseCase *liability.ListLiabilitiesUseCase,
	deleteUseCase *liability.DeleteLiabilityUseCase,
) *LiabilityController {
	return &LiabilityController{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// Create handles POST /liabilities requests.
func (c *LiabilityController) Create(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateLiabilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), liability.CreateLiabilityInput{
		UserID:           userID,
		Amount:           req.Amount,
		Currency:         req.Currency,
		Description:      req.Description,
		DueDate:          req.DueDate,
		IsImmediatelyDue: req.IsImmediatelyDue,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToLiabilityResponse(output.Liability))
}

// List handles GET /liabilities requests. ?deductible=true keeps only
// liabilities that reduce zakatable wealth.
func (c *LiabilityController) List(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), liability.ListLiabilitiesInput{
		UserID:         userID,
		DeductibleOnly: ctx.Query("deductible") == "true",
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLiabilityResponses(output.Liabilities))
}

// Delete handles DELETE /liabilities/:id requests.
func (c *LiabilityController) Delete(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	liabilityID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), liability.DeleteLiabilityInput{
		UserID:      userID,
		LiabilityID: liabilityID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
