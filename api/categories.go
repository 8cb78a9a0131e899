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

// CreateCategory godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body models.CreateCategory true "New category"
// @Success 201 {object} models.Category
// @Failure 400 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /categories [post]
func (h *Handler) CreateCategory(c *gin.Context) {
	var in models.CreateCategory
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if in.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	category, err := h.storage.CreateCategory(currentUser(c).ID, in)
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category with this name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Printf("category created: %s", category.Name)
	c.JSON(http.StatusCreated, category)
}

// GetCategories godoc
// @Summary List the user's categories
// @Tags categories
// @Produce json
// @Param skip query int false "Rows to skip"
// @Param limit query int false "Max rows"
// @Success 200 {array} models.Category
// @Security ApiKeyAuth
// @Router /categories [get]
func (h *Handler) GetCategories(c *gin.Context) {
	skip, limit, err := paginationParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	categories, err := h.storage.GetCategories(currentUser(c).ID, skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetCategory godoc
// @Summary Get a category by id
// @Tags categories
// @Produce json
// @Param id path int true "Category id"
// @Success 200 {object} models.Category
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /categories/{id} [get]
func (h *Handler) GetCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	category, err := h.storage.GetCategory(id, currentUser(c).ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if category == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}
	c.JSON(http.StatusOK, category)
}

// UpdateCategory godoc
// @Summary Update a category
// @Description Flipping is_income does not recompute balances of existing
// @Description transactions.
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category id"
// @Param changes body models.UpdateCategory true "Fields to change"
// @Success 200 {object} models.Category
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /categories/{id} [patch]
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var changes models.UpdateCategory
	if err := c.ShouldBindJSON(&changes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.storage.UpdateCategory(id, currentUser(c).ID, changes)
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category with this name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if category == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}

	log.Printf("category updated: %s", category.Name)
	c.JSON(http.StatusOK, category)
}

// DeleteCategory godoc
// @Summary Delete a category
// @Tags categories
// @Produce json
// @Param id path int true "Category id"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /categories/{id} [delete]
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	deleted, err := h.storage.DeleteCategory(id, currentUser(c).ID)
	if err != nil {
		if errors.Is(err, db.ErrInUse) {
			c.JSON(http.StatusConflict, gin.H{"error": "category is used in transactions"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}

	log.Printf("category deleted: %d", id)
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Category deleted successfully"})
}
