package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zakat-calculator/backend/internal/application/usecase/user"
	"github.com/zakat-calculator/backend/internal/integration/entrypoint/dto"
)

// UserController handles the authenticated user's profile.
type UserController struct {
	getUserUseCase           *user.GetUserUseCase
	updatePreferencesUseCase *user.UpdateUserPreferencesUseCase
}

// NewUserController creates a new user controller instance.
func NewUserController(
	getUserUseCase *user.GetUserUseCase,
	updatePreferencesUseCase *user.UpdateUserPreferencesUseCase,
) *UserController {
	return &UserController{
		getUserUseCase:           getUserUseCase,
		updatePreferencesUseCase: updatePreferencesUseCase,
	}
}

// Me handles GET /users/me requests.
func (c *UserController) Me(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.getUserUseCase.Execute(ctx.Request.Context(), user.GetUserInput{UserID: userID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(output.User))
}

// UpdatePreferences handles PATCH /users/me requests.
func (c *UserController) UpdatePreferences(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.UpdatePreferencesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	input := user.UpdateUserPreferencesInput{
		UserID:      userID,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Currency:    req.Currency,
		NisabMethod: req.NisabMethod,
	}
	if n := req.Notifications; n != nil {
		input.Notifications = &user.NotificationPreferencesInput{
			EnablePush:             n.EnablePush,
			EnableEmail:            n.EnableEmail,
			EnableSMS:              n.EnableSMS,
			ReminderFrequency:      n.ReminderFrequency,
			PreRamadanReminder:     n.PreRamadanReminder,
			HawlCompletionReminder: n.HawlCompletionReminder,
			NisabThresholdAlert:    n.NisabThresholdAlert,
		}
	}

	output, err := c.updatePreferencesUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(output.User))
}
