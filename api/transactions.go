package api

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Candratama/Floo/db"
	"github.com/Candratama/Floo/models"
)

const dateLayout = "2006-01-02"

// CreateTransaction godoc
// @Summary Post a transaction
// @Description Applies the signed amount to the bank's running balance in
// @Description the same unit of work as the transaction insert.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body models.CreateTransaction true "New transaction"
// @Success 201 {object} models.CreateTransactionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /transactions [post]
func (h *Handler) CreateTransaction(c *gin.Context) {
	var in models.CreateTransaction
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if in.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
		return
	}
	if in.CategoryID == 0 || in.BankID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category_id and bank_id are required"})
		return
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}

	transaction, bank, err := h.maintainer.Create(c.Request.Context(), currentUser(c).ID, in)
	if err != nil {
		ledgerError(c, err)
		return
	}

	log.Printf("transaction created: %d", transaction.ID)
	c.JSON(http.StatusCreated, models.CreateTransactionResponse{
		Transaction: *transaction,
		Bank:        *bank,
	})
}

// GetTransactions godoc
// @Summary List the user's transactions, newest first
// @Tags transactions
// @Produce json
// @Param skip query int false "Rows to skip"
// @Param limit query int false "Max rows"
// @Param start_date query string false "Earliest date (YYYY-MM-DD)"
// @Param end_date query string false "Latest date (YYYY-MM-DD)"
// @Param category_id query int false "Filter by category"
// @Param bank_id query int false "Filter by bank"
// @Success 200 {object} models.GetTransactionsResponse
// @Failure 400 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /transactions [get]
func (h *Handler) GetTransactions(c *gin.Context) {
	filter, err := transactionFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	transactions, total, err := h.storage.GetTransactions(currentUser(c).ID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.GetTransactionsResponse{
		Transactions: transactions,
		Total:        total,
	})
}

// GetTransaction godoc
// @Summary Get a transaction by id
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction id"
// @Success 200 {object} models.Transaction
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /transactions/{id} [get]
func (h *Handler) GetTransaction(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	transaction, err := h.storage.GetTransaction(id, currentUser(c).ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if transaction == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
		return
	}
	c.JSON(http.StatusOK, transaction)
}

// UpdateTransaction godoc
// @Summary Amend a transaction
// @Description Changing amount and/or bank reverses the old effect and
// @Description applies the new one; other fields leave balances alone.
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path int true "Transaction id"
// @Param changes body models.UpdateTransaction true "Fields to change"
// @Success 200 {object} models.UpdateTransactionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /transactions/{id} [patch]
func (h *Handler) UpdateTransaction(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var changes models.UpdateTransaction
	if err := c.ShouldBindJSON(&changes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if changes.Amount != nil && *changes.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
		return
	}

	transaction, banks, err := h.maintainer.Amend(c.Request.Context(), currentUser(c).ID, id, changes)
	if err != nil {
		ledgerError(c, err)
		return
	}

	resp := models.UpdateTransactionResponse{Transaction: *transaction, Banks: []models.Bank{}}
	for _, b := range banks {
		resp.Banks = append(resp.Banks, *b)
	}

	log.Printf("transaction updated: %d", transaction.ID)
	c.JSON(http.StatusOK, resp)
}

// DeleteTransaction godoc
// @Summary Delete a transaction
// @Description Reverses the transaction's effect on the bank balance before
// @Description removing it.
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction id"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /transactions/{id} [delete]
func (h *Handler) DeleteTransaction(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	_, err = h.maintainer.Remove(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		ledgerError(c, err)
		return
	}

	log.Printf("transaction deleted: %d", id)
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Transaction deleted successfully"})
}

func transactionFilter(c *gin.Context) (db.TransactionFilter, error) {
	var filter db.TransactionFilter

	skip, limit, err := paginationParams(c)
	if err != nil {
		return filter, err
	}
	filter.Skip, filter.Limit = skip, limit

	if raw := c.Query("start_date"); raw != "" {
		date, err := time.Parse(dateLayout, raw)
		if err != nil {
			return filter, fmt.Errorf("invalid start_date: must be YYYY-MM-DD")
		}
		filter.StartDate = &date
	}
	if raw := c.Query("end_date"); raw != "" {
		date, err := time.Parse(dateLayout, raw)
		if err != nil {
			return filter, fmt.Errorf("invalid end_date: must be YYYY-MM-DD")
		}
		filter.EndDate = &date
	}
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return filter, fmt.Errorf("invalid category_id parameter")
		}
		filter.CategoryID = id
	}
	if raw := c.Query("bank_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return filter, fmt.Errorf("invalid bank_id parameter")
		}
		filter.BankID = id
	}
	return filter, nil
}
