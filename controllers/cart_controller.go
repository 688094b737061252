package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emekaobi/storefront-backend/cart"
	errs "github.com/emekaobi/storefront-backend/common/errors"
	"github.com/emekaobi/storefront-backend/common/money"
	"github.com/emekaobi/storefront-backend/models"
	"github.com/emekaobi/storefront-backend/repository"
	"github.com/emekaobi/storefront-backend/sessions"
)

type CartController struct {
	Sessions *sessions.Manager
	Catalog  repository.ProductRepository
}

func NewCartController(sessions *sessions.Manager, catalog repository.ProductRepository) *CartController {
	return &CartController{Sessions: sessions, Catalog: catalog}
}

type cartResponse struct {
	Items        []models.CartItem `json:"items"`
	Total        int64             `json:"total"`
	TotalDisplay string            `json:"total_display"`
	Visible      bool              `json:"visible"`
}

func cartJSON(store *cart.Store) cartResponse {
	total := store.Total()
	return cartResponse{
		Items:        store.Items(),
		Total:        total,
		TotalDisplay: money.FormatKobo(total),
		Visible:      store.Visible(),
	}
}

// GetCart returns the session's current cart
func (cc *CartController) GetCart(c *gin.Context) {
	store := cc.Sessions.Cart(c.Request.Context(), sessionID(c))
	c.JSON(http.StatusOK, cartJSON(store))
}

// AddItem adds a catalog product to the cart (or bumps its quantity)
func (cc *CartController) AddItem(c *gin.Context) {
	var req struct {
		ProductID string `json:"product_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errs.Wrap(errs.ErrInvalidInput, err))
		return
	}
	if req.ProductID == "" {
		_ = c.Error(errs.New(http.StatusBadRequest, "product_id is required", nil))
		return
	}

	product, err := cc.Catalog.FindByID(c.Request.Context(), req.ProductID)
	if errors.Is(err, repository.ErrNotFound) {
		_ = c.Error(errs.New(http.StatusNotFound, "product not found", err))
		return
	}
	if err != nil {
		_ = c.Error(errs.New(http.StatusInternalServerError, "failed to add item", err))
		return
	}

	store := cc.Sessions.Cart(c.Request.Context(), sessionID(c))
	if err := store.Add(*product); err != nil {
		_ = c.Error(errs.New(http.StatusBadRequest, err.Error(), err))
		return
	}

	c.JSON(http.StatusOK, cartJSON(store))
}

// IncreaseItem bumps a line's quantity by one
func (cc *CartController) IncreaseItem(c *gin.Context) {
	store := cc.Sessions.Cart(c.Request.Context(), sessionID(c))
	store.Increase(c.Param("product_id"))
	c.JSON(http.StatusOK, cartJSON(store))
}

// DecreaseItem lowers a line's quantity by one, never below one
func (cc *CartController) DecreaseItem(c *gin.Context) {
	store := cc.Sessions.Cart(c.Request.Context(), sessionID(c))
	store.Decrease(c.Param("product_id"))
	c.JSON(http.StatusOK, cartJSON(store))
}

// RemoveItem deletes a line from the cart
func (cc *CartController) RemoveItem(c *gin.Context) {
	store := cc.Sessions.Cart(c.Request.Context(), sessionID(c))
	store.Remove(c.Param("product_id"))
	c.JSON(http.StatusOK, cartJSON(store))
}

// ClearCart empties the cart
func (cc *CartController) ClearCart(c *gin.Context) {
	store := cc.Sessions.Cart(c.Request.Context(), sessionID(c))
	store.Clear()
	c.JSON(http.StatusOK, cartJSON(store))
}

// SetVisibility toggles the cart panel flag
func (cc *CartController) SetVisibility(c *gin.Context) {
	var req struct {
		Visible bool `json:"visible"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errs.Wrap(errs.ErrInvalidInput, err))
		return
	}

	store := cc.Sessions.Cart(c.Request.Context(), sessionID(c))
	store.SetVisible(req.Visible)
	c.JSON(http.StatusOK, cartJSON(store))
}

// EndSession forgets the session's cart in memory and persistence and expires
// the session cookie. The next request starts from a fresh cart.
func (cc *CartController) EndSession(c *gin.Context) {
	cc.Sessions.Drop(c.Request.Context(), sessionID(c))
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "session ended"})
}
