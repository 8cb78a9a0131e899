package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Candratama/Floo/db"
	"github.com/Candratama/Floo/ledger"
	"github.com/Candratama/Floo/models"
)

const (
	appName    = "FLOO API"
	appVersion = "1.0.0"
)

type Handler struct {
	storage    *db.Storage
	maintainer *ledger.Maintainer
	jwtSecret  string
	tokenTTL   time.Duration
}

func NewHandler(storage *db.Storage, maintainer *ledger.Maintainer, jwtSecret string, tokenTTL time.Duration) *Handler {
	return &Handler{
		storage:    storage,
		maintainer: maintainer,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
	}
}

// RegisterRoutes wires all endpoints onto the engine. Shared by main and the
// handler tests.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.Root)

	v1 := r.Group("/api/v1")
	v1.POST("/register", h.Register)
	v1.POST("/login", h.Login)

	protected := v1.Group("", h.AuthMiddleware())
	protected.GET("/users", h.GetUsers)
	protected.GET("/users/me", h.GetCurrentUser)
	protected.PATCH("/users/me", h.UpdateCurrentUser)
	protected.GET("/users/:id", h.GetUser)

	protected.POST("/banks", h.CreateBank)
	protected.GET("/banks", h.GetBanks)
	protected.GET("/banks/:id", h.GetBank)
	protected.PATCH("/banks/:id", h.UpdateBank)
	protected.DELETE("/banks/:id", h.DeleteBank)

	protected.POST("/categories", h.CreateCategory)
	protected.GET("/categories", h.GetCategories)
	protected.GET("/categories/:id", h.GetCategory)
	protected.PATCH("/categories/:id", h.UpdateCategory)
	protected.DELETE("/categories/:id", h.DeleteCategory)

	protected.POST("/transactions", h.CreateTransaction)
	protected.GET("/transactions", h.GetTransactions)
	protected.GET("/transactions/:id", h.GetTransaction)
	protected.PATCH("/transactions/:id", h.UpdateTransaction)
	protected.DELETE("/transactions/:id", h.DeleteTransaction)
}

// Root godoc
// @Summary Service banner
// @Tags root
// @Produce json
// @Success 200 {object} models.RootResponse
// @Router / [get]
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, models.RootResponse{
		AppName: appName,
		Version: appVersion,
		Status:  "running",
	})
}

// currentUser returns the user resolved by AuthMiddleware.
func currentUser(c *gin.Context) *models.User {
	u, _ := c.Get("user")
	return u.(*models.User)
}

// ledgerError maps maintainer failures to HTTP statuses. Conflicts reaching
// this point already exhausted their retry. Invariant violations are logged
// and hidden behind a generic 500, never corrected.
func ledgerError(c *gin.Context, err error) {
	var invErr *ledger.InvariantError
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, ledger.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "concurrent update, please retry"})
	case errors.As(err, &invErr):
		log.Printf("ERROR: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
