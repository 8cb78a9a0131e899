package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Candratama/Floo/db"
	"github.com/Candratama/Floo/models"
)

// CreateBank godoc
// @Summary Create a bank account
// @Tags banks
// @Accept json
// @Produce json
// @Param bank body models.CreateBank true "New bank"
// @Success 201 {object} models.Bank
// @Failure 400 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /banks [post]
func (h *Handler) CreateBank(c *gin.Context) {
	var in models.CreateBank
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if in.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	bank, err := h.storage.CreateBank(currentUser(c).ID, in)
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bank with this name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Printf("bank created: %s", bank.Name)
	c.JSON(http.StatusCreated, bank)
}

// GetBanks godoc
// @Summary List the user's banks
// @Tags banks
// @Produce json
// @Param skip query int false "Rows to skip"
// @Param limit query int false "Max rows"
// @Success 200 {array} models.Bank
// @Security ApiKeyAuth
// @Router /banks [get]
func (h *Handler) GetBanks(c *gin.Context) {
	skip, limit, err := paginationParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	banks, err := h.storage.GetBanks(currentUser(c).ID, skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, banks)
}

// GetBank godoc
// @Summary Get a bank by id
// @Tags banks
// @Produce json
// @Param id path int true "Bank id"
// @Success 200 {object} models.Bank
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /banks/{id} [get]
func (h *Handler) GetBank(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	bank, err := h.storage.GetBank(id, currentUser(c).ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if bank == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "bank not found"})
		return
	}
	c.JSON(http.StatusOK, bank)
}

// UpdateBank godoc
// @Summary Update a bank's name, color or start balance
// @Description The running balance can only move through transactions; a
// @Description start balance change shifts it by the same delta.
// @Tags banks
// @Accept json
// @Produce json
// @Param id path int true "Bank id"
// @Param changes body models.UpdateBank true "Fields to change"
// @Success 200 {object} models.Bank
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /banks/{id} [patch]
func (h *Handler) UpdateBank(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var changes models.UpdateBank
	if err := c.ShouldBindJSON(&changes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bank, err := h.storage.UpdateBank(id, currentUser(c).ID, changes)
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bank with this name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if bank == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "bank not found"})
		return
	}

	log.Printf("bank updated: %s", bank.Name)
	c.JSON(http.StatusOK, bank)
}

// DeleteBank godoc
// @Summary Delete a bank
// @Tags banks
// @Produce json
// @Param id path int true "Bank id"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /banks/{id} [delete]
func (h *Handler) DeleteBank(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	deleted, err := h.storage.DeleteBank(id, currentUser(c).ID)
	if err != nil {
		if errors.Is(err, db.ErrInUse) {
			c.JSON(http.StatusConflict, gin.H{"error": "bank is used in transactions"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "bank not found"})
		return
	}

	log.Printf("bank deleted: %d", id)
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Bank deleted successfully"})
}
