package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fintrack/finance-api/internal/core/domain"
	"github.com/fintrack/finance-api/internal/core/ports"
)

// BudgetHandler handles HTTP requests for budget operations.
type BudgetHandler struct {
	service ports.BudgetService
}

func NewBudgetHandler(service ports.BudgetService) *BudgetHandler {
	return &BudgetHandler{service: service}
}

type createBudgetRequest struct {
	Category       string     `json:"category" validate:"required"`
	Amount         float64    `json:"amount"   validate:"required,gt=0"`
	Period         string     `json:"period"   validate:"omitempty,oneof=daily weekly monthly yearly"`
	StartDate      time.Time  `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	Currency       string     `json:"currency"`
	AlertThreshold *float64   `json:"alert_threshold" validate:"omitempty,gte=0,lte=100"`
}

// optionalTime distinguishes an absent end_date (leave unchanged) from an
// explicit null (remove the end date).
type optionalTime struct {
	set   bool
	value *time.Time
}

func (o *optionalTime) UnmarshalJSON(b []byte) error {
	o.set = true
	if string(b) == "null" {
		o.value = nil
		return nil
	}
	return json.Unmarshal(b, &o.value)
}

type updateBudgetRequest struct {
	Category       *string      `json:"category"`
	Amount         *float64     `json:"amount" validate:"omitempty,gt=0"`
	Period         *string      `json:"period" validate:"omitempty,oneof=daily weekly monthly yearly"`
	StartDate      *time.Time   `json:"start_date"`
	EndDate        optionalTime `json:"end_date"`
	Currency       *string      `json:"currency"`
	AlertThreshold *float64     `json:"alert_threshold" validate:"omitempty,gte=0,lte=100"`
}

func (r *updateBudgetRequest) toUpdate() ports.BudgetUpdate {
	upd := ports.BudgetUpdate{
		Category:       r.Category,
		Amount:         r.Amount,
		StartDate:      r.StartDate,
		Currency:       r.Currency,
		AlertThreshold: r.AlertThreshold,
	}
	if r.Period != nil {
		p := domain.BudgetPeriod(*r.Period)
		upd.Period = &p
	}
	if r.EndDate.set {
		upd.EndDate = &r.EndDate.value
	}
	return upd
}

// List returns the authenticated user's budgets.
//
// @Summary      List budgets
// @Tags         budgets
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Router       /budgets [get]
func (h *BudgetHandler) List(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	budgets, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, budgets, len(budgets))
}

// Create defines a new spending cap for one expense category.
//
// @Summary      Create a budget
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBudgetRequest  true  "Budget details"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Router       /budgets [post]
func (h *BudgetHandler) Create(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createBudgetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	b, err := h.service.Create(c.Request().Context(), userID, ports.CreateBudgetInput{
		Category:       req.Category,
		Amount:         req.Amount,
		Period:         req.Period,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Currency:       req.Currency,
		AlertThreshold: req.AlertThreshold,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, b)
}

// Get returns one budget owned by the authenticated user.
//
// @Summary      Get a budget
// @Tags         budgets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Budget id"
// @Success      200  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /budgets/{id} [get]
func (h *BudgetHandler) Get(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	b, err := h.service.Get(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, b)
}

// Update applies a partial update to an owned budget.
//
// @Summary      Update a budget
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Budget id"
// @Param        body  body      updateBudgetRequest  true  "Fields to update"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /budgets/{id} [put]
func (h *BudgetHandler) Update(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	b, err := h.service.Update(c.Request().Context(), c.Param("id"), userID, req.toUpdate())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, b)
}

// Delete removes an owned budget.
//
// @Summary      Delete a budget
// @Tags         budgets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Budget id"
// @Success      200  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /budgets/{id} [delete]
func (h *BudgetHandler) Delete(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), userID); err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, "budget deleted")
}

// Progress returns spend-to-date against the budget for the current period.
//
// @Summary      Budget progress for the active period
// @Tags         budgets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Budget id"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /budgets/{id}/progress [get]
func (h *BudgetHandler) Progress(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	p, err := h.service.Progress(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, p)
}
