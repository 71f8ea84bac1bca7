package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mauzoapp/mauzo_backend/internal/apperrors"
	portssvc "github.com/mauzoapp/mauzo_backend/internal/core/ports/services"
	"github.com/mauzoapp/mauzo_backend/internal/dto"
	"github.com/mauzoapp/mauzo_backend/internal/middleware"
)

// purchaseOrderHandler handles HTTP requests related to purchase orders.
type purchaseOrderHandler struct {
	orderService portssvc.PurchaseOrderSvcFacade
}

// newPurchaseOrderHandler creates a new purchaseOrderHandler.
func newPurchaseOrderHandler(orderService portssvc.PurchaseOrderSvcFacade) *purchaseOrderHandler {
	return &purchaseOrderHandler{orderService: orderService}
}

func (h *purchaseOrderHandler) createOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	buyerShopID := c.Param("shopID")

	req := dto.CreatePurchaseOrderRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	order, err := h.orderService.CreatePurchaseOrder(c.Request.Context(), buyerShopID, req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create purchase order", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create purchase order"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToPurchaseOrderResponse(order))
}

func (h *purchaseOrderHandler) getOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	order, err := h.orderService.GetPurchaseOrderByID(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Purchase order not found"})
			return
		}
		logger.Error("Failed to get purchase order", slog.String("error", err.Error()), slog.String("order_id", orderID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve purchase order"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPurchaseOrderResponse(order))
}

func (h *purchaseOrderHandler) listOrders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shopID := c.Param("shopID")

	params := dto.ListPurchaseOrdersParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.orderService.ListPurchaseOrdersByShop(c.Request.Context(), shopID, params)
	if err != nil {
		logger.Error("Failed to list purchase orders", slog.String("error", err.Error()), slog.String("shop_id", shopID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve purchase orders"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// transition runs one of the lifecycle operations with shared error mapping.
func (h *purchaseOrderHandler) transition(c *gin.Context, orderID string, run func() (*dto.PurchaseOrderResponse, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	resp, err := run()
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Purchase order not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Purchase order operation failed", slog.String("error", err.Error()), slog.String("order_id", orderID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Purchase order operation failed"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *purchaseOrderHandler) approveOrder(c *gin.Context) {
	orderID := c.Param("orderID")
	approverID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	h.transition(c, orderID, func() (*dto.PurchaseOrderResponse, error) {
		order, err := h.orderService.ApprovePurchaseOrder(c.Request.Context(), orderID, approverID)
		if err != nil {
			return nil, err
		}
		resp := dto.ToPurchaseOrderResponse(order)
		return &resp, nil
	})
}

func (h *purchaseOrderHandler) rejectOrder(c *gin.Context) {
	orderID := c.Param("orderID")

	req := dto.RejectPurchaseOrderRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	h.transition(c, orderID, func() (*dto.PurchaseOrderResponse, error) {
		order, err := h.orderService.RejectPurchaseOrder(c.Request.Context(), orderID, req, userID)
		if err != nil {
			return nil, err
		}
		resp := dto.ToPurchaseOrderResponse(order)
		return &resp, nil
	})
}

func (h *purchaseOrderHandler) cancelOrder(c *gin.Context) {
	orderID := c.Param("orderID")
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	h.transition(c, orderID, func() (*dto.PurchaseOrderResponse, error) {
		order, err := h.orderService.CancelPurchaseOrder(c.Request.Context(), orderID, userID)
		if err != nil {
			return nil, err
		}
		resp := dto.ToPurchaseOrderResponse(order)
		return &resp, nil
	})
}

func (h *purchaseOrderHandler) addPayment(c *gin.Context) {
	orderID := c.Param("orderID")

	req := dto.AddPurchasePaymentRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	h.transition(c, orderID, func() (*dto.PurchaseOrderResponse, error) {
		order, err := h.orderService.AddPayment(c.Request.Context(), orderID, req, userID)
		if err != nil {
			return nil, err
		}
		resp := dto.ToPurchaseOrderResponse(order)
		return &resp, nil
	})
}

// registerPurchaseOrderRoutes wires the purchase order endpoints.
func registerPurchaseOrderRoutes(shopGroup *gin.RouterGroup, itemGroup *gin.RouterGroup, orderService portssvc.PurchaseOrderSvcFacade) {
	h := newPurchaseOrderHandler(orderService)

	shopGroup.POST("/purchase-orders", h.createOrder)
	shopGroup.GET("/purchase-orders", h.listOrders)

	orders := itemGroup.Group("/purchase-orders")
	orders.GET("/:orderID", h.getOrder)
	orders.POST("/:orderID/approve", h.approveOrder)
	orders.POST("/:orderID/reject", h.rejectOrder)
	orders.POST("/:orderID/cancel", h.cancelOrder)
	orders.POST("/:orderID/payments", h.addPayment)
}
