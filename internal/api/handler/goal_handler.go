package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fintrack/finance-api/internal/core/domain"
	"github.com/fintrack/finance-api/internal/core/ports"
)

// GoalHandler handles HTTP requests for financial goal operations.
type GoalHandler struct {
	service ports.GoalService
}

func NewGoalHandler(service ports.GoalService) *GoalHandler {
	return &GoalHandler{service: service}
}

type createGoalRequest struct {
	Name                string    `json:"name"          validate:"required"`
	TargetAmount        float64   `json:"target_amount" validate:"required,gt=0"`
	CurrentAmount       float64   `json:"current_amount" validate:"gte=0"`
	StartDate           time.Time `json:"start_date"`
	TargetDate          time.Time `json:"target_date" validate:"required"`
	Category            string    `json:"category"    validate:"required"`
	Priority            string    `json:"priority"    validate:"omitempty,oneof=Low Medium High"`
	Currency            string    `json:"currency"`
	AutoAllocatePercent float64   `json:"auto_allocate_percent" validate:"gte=0,lte=100"`
	Notes               string    `json:"notes"`
}

type updateGoalRequest struct {
	Name                *string    `json:"name"`
	TargetAmount        *float64   `json:"target_amount" validate:"omitempty,gt=0"`
	CurrentAmount       *float64   `json:"current_amount" validate:"omitempty,gte=0"`
	StartDate           *time.Time `json:"start_date"`
	TargetDate          *time.Time `json:"target_date"`
	Category            *string    `json:"category"`
	Priority            *string    `json:"priority" validate:"omitempty,oneof=Low Medium High"`
	Status              *string    `json:"status"   validate:"omitempty,oneof='Not Started' 'In Progress' Completed Abandoned"`
	Currency            *string    `json:"currency"`
	AutoAllocatePercent *float64   `json:"auto_allocate_percent" validate:"omitempty,gte=0,lte=100"`
	Notes               *string    `json:"notes"`
}

func (r *updateGoalRequest) toUpdate() ports.GoalUpdate {
	upd := ports.GoalUpdate{
		Name:                r.Name,
		TargetAmount:        r.TargetAmount,
		CurrentAmount:       r.CurrentAmount,
		StartDate:           r.StartDate,
		TargetDate:          r.TargetDate,
		Category:            r.Category,
		Priority:            r.Priority,
		Currency:            r.Currency,
		AutoAllocatePercent: r.AutoAllocatePercent,
		Notes:               r.Notes,
	}
	if r.Status != nil {
		s := domain.GoalStatus(*r.Status)
		upd.Status = &s
	}
	return upd
}

type updateGoalProgressRequest struct {
	CurrentAmount float64 `json:"current_amount" validate:"gte=0"`
}

// List returns the authenticated user's goals sorted by target date.
//
// @Summary      List goals
// @Tags         goals
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Router       /goals [get]
func (h *GoalHandler) List(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	goals, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, goals, len(goals))
}

// Create defines a new financial goal.
//
// @Summary      Create a goal
// @Tags         goals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createGoalRequest  true  "Goal details"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Router       /goals [post]
func (h *GoalHandler) Create(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createGoalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	g, err := h.service.Create(c.Request().Context(), userID, ports.CreateGoalInput{
		Name:                req.Name,
		TargetAmount:        req.TargetAmount,
		CurrentAmount:       req.CurrentAmount,
		StartDate:           req.StartDate,
		TargetDate:          req.TargetDate,
		Category:            req.Category,
		Priority:            req.Priority,
		Currency:            req.Currency,
		AutoAllocatePercent: req.AutoAllocatePercent,
		Notes:               req.Notes,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, g)
}

// Get returns one goal owned by the authenticated user.
//
// @Summary      Get a goal
// @Tags         goals
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Goal id"
// @Success      200  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /goals/{id} [get]
func (h *GoalHandler) Get(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	g, err := h.service.Get(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, g)
}

// Update applies a partial update to an owned goal.
//
// @Summary      Update a goal
// @Tags         goals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Goal id"
// @Param        body  body      updateGoalRequest  true  "Fields to update"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /goals/{id} [put]
func (h *GoalHandler) Update(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateGoalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	g, err := h.service.Update(c.Request().Context(), c.Param("id"), userID, req.toUpdate())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, g)
}

// Delete removes an owned goal.
//
// @Summary      Delete a goal
// @Tags         goals
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Goal id"
// @Success      200  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /goals/{id} [delete]
func (h *GoalHandler) Delete(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), userID); err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, "goal deleted")
}

// UpdateProgress sets the saved amount and recomputes the goal status.
//
// @Summary      Update goal progress
// @Tags         goals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                     true  "Goal id"
// @Param        body  body      updateGoalProgressRequest  true  "Current amount"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /goals/{id}/progress [put]
func (h *GoalHandler) UpdateProgress(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateGoalProgressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	g, err := h.service.UpdateProgress(c.Request().Context(), c.Param("id"), userID, req.CurrentAmount)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, g)
}
