package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fintrack/finance-api/internal/api/metrics"
	"github.com/fintrack/finance-api/internal/core/ports"
)

// TransactionHandler handles HTTP requests for transaction operations.
type TransactionHandler struct {
	service ports.TransactionService
}

func NewTransactionHandler(service ports.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: service}
}

// List returns the authenticated user's transactions, newest first.
//
// @Summary      List transactions
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Router       /transactions [get]
func (h *TransactionHandler) List(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	txs, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, txs, len(txs))
}

// Create records a new income or expense transaction.
//
// @Summary      Create a transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTransactionRequest  true  "Transaction details"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Router       /transactions [post]
func (h *TransactionHandler) Create(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createTransactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	in := ports.CreateTransactionInput{
		Type:         req.Type,
		Amount:       req.Amount,
		Category:     req.Category,
		Description:  req.Description,
		Date:         req.Date,
		Tags:         req.Tags,
		Currency:     req.Currency,
		ExchangeRate: req.ExchangeRate,
	}
	if req.Recurring != nil {
		in.Recurring = &ports.RecurrenceInput{
			Pattern: req.Recurring.Pattern,
			EndDate: req.Recurring.EndDate,
		}
	}

	tx, err := h.service.Create(c.Request().Context(), userID, in)
	if err != nil {
		return err
	}

	metrics.TransactionsCreatedTotal.WithLabelValues(string(tx.Type)).Inc()
	return respond(c, http.StatusCreated, tx)
}

// Get returns one transaction owned by the authenticated user.
//
// @Summary      Get a transaction
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Transaction id"
// @Success      200  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /transactions/{id} [get]
func (h *TransactionHandler) Get(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	tx, err := h.service.Get(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, tx)
}

// Update applies a partial update to an owned transaction.
//
// @Summary      Update a transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Transaction id"
// @Param        body  body      updateTransactionRequest  true  "Fields to update"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /transactions/{id} [put]
func (h *TransactionHandler) Update(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tx, err := h.service.Update(c.Request().Context(), c.Param("id"), userID, req.toUpdate())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, tx)
}

// Delete removes an owned transaction.
//
// @Summary      Delete a transaction
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Transaction id"
// @Success      200  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /transactions/{id} [delete]
func (h *TransactionHandler) Delete(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), userID); err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, "transaction deleted")
}

// MonthlyStats returns per-month income and expense totals.
//
// @Summary      Monthly transaction statistics
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Router       /transactions/stats/monthly [get]
func (h *TransactionHandler) MonthlyStats(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	stats, err := h.service.MonthlyStats(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, stats, len(stats))
}
