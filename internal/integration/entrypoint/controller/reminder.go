package controller

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zakat-calculator/backend/internal/application/adapter"
	"github.com/zakat-calculator/backend/internal/application/usecase/reminder"
	"github.com/zakat-calculator/backend/internal/integration/entrypoint/dto"
)

// NotificationInbox reads a user's delivered push notifications.
type NotificationInbox interface {
	Inbox(ctx context.Context, userID uuid.UUID, limit int) ([]adapter.PushNotification, error)
}

// ReminderController handles reminder endpoints.
type ReminderController struct {
	listUseCase     *reminder.ListRemindersUseCase
	scheduleUseCase *reminder.ScheduleRecurringRemindersUseCase
	customUseCase   *reminder.CreateCustomReminderUseCase
	snoozeUseCase   *reminder.SnoozeReminderUseCase
	dismissUseCase  *reminder.DismissReminderUseCase
	inbox           NotificationInbox
}

// NewReminderController creates a new reminder controller instance.
func NewReminderController(
	listUseCase *reminder.ListRemindersUseCase,
	scheduleUseCase *reminder.ScheduleRecurringRemindersUseCase,
	customUseCase *reminder.CreateCustomReminderUseCase,
	snoozeUseCase *reminder.SnoozeReminderUseCase,
	dismissUseCase *reminder.DismissReminderUseCase,
	inbox NotificationInbox,
) *ReminderController {
	return &ReminderController{
		listUseCase:     listUseCase,
		scheduleUseCase: scheduleUseCase,
		customUseCase:   customUseCase,
		snoozeUseCase:   snoozeUseCase,
		dismissUseCase:  dismissUseCase,
		inbox:           inbox,
	}
}

// List handles GET /reminders requests with optional ?status= and ?type=.
func (c *ReminderController) List(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	reminders, err := c.listUseCase.Execute(ctx.Request.Context(), reminder.ListRemindersInput{
		UserID: userID,
		Status: ctx.Query("status"),
		Type:   ctx.Query("type"),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReminderResponses(reminders))
}

// Schedule handles POST /reminders/schedule requests.
func (c *ReminderController) Schedule(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.ScheduleRemindersRequest
	if !bindOptionalJSON(ctx, &req) {
		return
	}

	output, err := c.scheduleUseCase.Execute(ctx.Request.Context(), reminder.ScheduleRecurringRemindersInput{
		UserID:    userID,
		Frequency: req.Frequency,
		StartDate: req.StartDate,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToReminderResponses(output.Reminders))
}

// Create handles POST /reminders requests.
func (c *ReminderController) Create(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.CustomReminderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	input := reminder.CreateCustomReminderInput{
		UserID:  userID,
		Date:    req.Date,
		Message: req.Message,
	}
	if req.AssetID != nil && *req.AssetID != "" {
		assetID, err := uuid.Parse(*req.AssetID)
		if err != nil {
			badRequest(ctx, err)
			return
		}
		input.AssetID = &assetID
	}

	r, err := c.customUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToReminderResponse(r))
}

// Snooze handles POST /reminders/:id/snooze requests.
func (c *ReminderController) Snooze(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	reminderID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.SnoozeReminderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	r, err := c.snoozeUseCase.Execute(ctx.Request.Context(), reminder.SnoozeReminderInput{
		UserID:     userID,
		ReminderID: reminderID,
		Until:      req.Until,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReminderResponse(r))
}

// Dismiss handles POST /reminders/:id/dismiss requests.
func (c *ReminderController) Dismiss(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	reminderID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	r, err := c.dismissUseCase.Execute(ctx.Request.Context(), reminder.DismissReminderInput{
		UserID:     userID,
		ReminderID: reminderID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReminderResponse(r))
}

// Notifications handles GET /notifications requests. ?limit= caps the result.
func (c *ReminderController) Notifications(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	items, err := c.inbox.Inbox(ctx.Request.Context(), userID, limit)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToNotificationResponses(items))
}
