package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mauzoapp/mauzo_backend/internal/apperrors"
	portssvc "github.com/mauzoapp/mauzo_backend/internal/core/ports/services"
	"github.com/mauzoapp/mauzo_backend/internal/dto"
	"github.com/mauzoapp/mauzo_backend/internal/middleware"
)

// savingsHandler handles HTTP requests related to the savings ledger.
type savingsHandler struct {
	savingsService portssvc.SavingsSvcFacade
}

// newSavingsHandler creates a new savingsHandler.
func newSavingsHandler(savingsService portssvc.SavingsSvcFacade) *savingsHandler {
	return &savingsHandler{savingsService: savingsService}
}

func (h *savingsHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shopID := c.Param("shopID")

	req := dto.DepositRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.savingsService.Deposit(c.Request.Context(), shopID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to record deposit", slog.String("error", err.Error()), slog.String("shop_id", shopID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record deposit"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToSavingsTransactionResponse(txn))
}

func (h *savingsHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shopID := c.Param("shopID")

	req := dto.WithdrawRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.savingsService.Withdraw(c.Request.Context(), shopID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInsufficientBalance):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to record withdrawal", slog.String("error", err.Error()), slog.String("shop_id", shopID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record withdrawal"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToSavingsTransactionResponse(txn))
}

func (h *savingsHandler) getSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shopID := c.Param("shopID")

	settings, err := h.savingsService.GetSettings(c.Request.Context(), shopID)
	if err != nil {
		logger.Error("Failed to get savings settings", slog.String("error", err.Error()), slog.String("shop_id", shopID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve savings settings"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSavingsSettingsResponse(settings))
}

func (h *savingsHandler) createGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shopID := c.Param("shopID")

	req := dto.CreateSavingsGoalRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	goal, err := h.savingsService.CreateGoal(c.Request.Context(), shopID, req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create savings goal", slog.String("error", err.Error()), slog.String("shop_id", shopID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create savings goal"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToSavingsGoalResponse(goal))
}

func (h *savingsHandler) getGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	goalID := c.Param("goalID")

	goal, err := h.savingsService.GetGoalByID(c.Request.Context(), goalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Savings goal not found"})
			return
		}
		logger.Error("Failed to get savings goal", slog.String("error", err.Error()), slog.String("goal_id", goalID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve savings goal"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSavingsGoalResponse(goal))
}

func (h *savingsHandler) listGoals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shopID := c.Param("shopID")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	goals, err := h.savingsService.ListGoalsByShop(c.Request.Context(), shopID, limit, offset)
	if err != nil {
		logger.Error("Failed to list savings goals", slog.String("error", err.Error()), slog.String("shop_id", shopID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve savings goals"})
		return
	}

	responses := make([]dto.SavingsGoalResponse, len(goals))
	for i := range goals {
		responses[i] = dto.ToSavingsGoalResponse(&goals[i])
	}
	c.JSON(http.StatusOK, gin.H{"goals": responses})
}

func (h *savingsHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shopID := c.Param("shopID")

	params := dto.ListSavingsTransactionsParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.savingsService.ListTransactions(c.Request.Context(), shopID, params)
	if err != nil {
		logger.Error("Failed to list savings transactions", slog.String("error", err.Error()), slog.String("shop_id", shopID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve savings transactions"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// registerSavingsRoutes wires the savings ledger endpoints.
func registerSavingsRoutes(shopGroup *gin.RouterGroup, itemGroup *gin.RouterGroup, savingsService portssvc.SavingsSvcFacade) {
	h := newSavingsHandler(savingsService)

	savings := shopGroup.Group("/savings")
	savings.GET("/settings", h.getSettings)
	savings.POST("/deposits", h.deposit)
	savings.POST("/withdrawals", h.withdraw)
	savings.POST("/goals", h.createGoal)
	savings.GET("/goals", h.listGoals)
	savings.GET("/transactions", h.listTransactions)

	itemGroup.GET("/savings-goals/:goalID", h.getGoal)
}
