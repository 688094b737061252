package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emekaobi/storefront-backend/checkout"
	errs "github.com/emekaobi/storefront-backend/common/errors"
	"github.com/emekaobi/storefront-backend/common/logger"
	"github.com/emekaobi/storefront-backend/models"
	"github.com/emekaobi/storefront-backend/repository"
)

// OrderController serves the admin order console.
type OrderController struct {
	Repo   repository.OrderRepository
	Events checkout.EventPublisher // may be nil
}

func NewOrderController(repo repository.OrderRepository, events checkout.EventPublisher) *OrderController {
	return &OrderController{Repo: repo, Events: events}
}

// GetOrders lists orders newest-first
func (oc *OrderController) GetOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(repository.DefaultPageLimit)))
	page, limit = repository.NormalizePage(page, limit)

	orders, total, err := oc.Repo.FindPage(c.Request.Context(), page, limit)
	if err != nil {
		_ = c.Error(errs.New(http.StatusInternalServerError, "failed to list orders", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"meta": productMeta{
			Page:    page,
			Limit:   limit,
			Total:   total,
			HasMore: int64(page*limit) < total,
		},
	})
}

// GetOrder returns a single order
func (oc *OrderController) GetOrder(c *gin.Context) {
	order, err := oc.Repo.FindByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		_ = c.Error(errs.New(http.StatusNotFound, "order not found", err))
		return
	}
	if err != nil {
		_ = c.Error(errs.New(http.StatusInternalServerError, "failed to load order", err))
		return
	}
	c.JSON(http.StatusOK, order)
}

// GetStats returns per-status order counts for the dashboard
func (oc *OrderController) GetStats(c *gin.Context) {
	counts, err := oc.Repo.StatusCounts(c.Request.Context())
	if err != nil {
		_ = c.Error(errs.New(http.StatusInternalServerError, "failed to load stats", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"counts": counts})
}

// UpdateStatus moves an order through its lifecycle
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errs.Wrap(errs.ErrInvalidInput, err))
		return
	}

	id := c.Param("id")
	err := oc.Repo.UpdateStatus(c.Request.Context(), id, req.Status)
	switch {
	case errors.Is(err, repository.ErrInvalidStatus):
		_ = c.Error(errs.New(http.StatusBadRequest, err.Error(), err))
		return
	case errors.Is(err, repository.ErrNotFound):
		_ = c.Error(errs.New(http.StatusNotFound, "order not found", err))
		return
	case err != nil:
		_ = c.Error(errs.New(http.StatusInternalServerError, "failed to update order", err))
		return
	}

	if oc.Events != nil {
		event := models.OrderEvent{
			Type:      models.OrderEventStatusChanged,
			OrderID:   id,
			Status:    string(req.Status),
			Timestamp: time.Now(),
		}
		if err := oc.Events.Publish(c.Request.Context(), event); err != nil {
			logger.Log.Warn("Order status event publish failed",
				zap.String("request_id", logger.RequestID(c)),
				zap.String("id", id), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "order status updated"})
}
