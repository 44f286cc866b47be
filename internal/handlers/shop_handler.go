package handlers

import (
	"errors"
	"net/http"
	"tumble_cup/internal/config"
	"tumble_cup/internal/models"
	"tumble_cup/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionCookie = "cart_session"

// ShopHandler serves the customer-facing storefront: catalog, cart
// mutations and checkout.
type ShopHandler struct {
	cartService  services.CartService
	orderService services.OrderService
	cfg          *config.Config
}

func NewShopHandler(cartService services.CartService, orderService services.OrderService, cfg *config.Config) *ShopHandler {
	return &ShopHandler{
		cartService:  cartService,
		orderService: orderService,
		cfg:          cfg,
	}
}

// sessionID returns the cart session id, minting a cookie on first use.
func (h *ShopHandler) sessionID(c *gin.Context) string {
	if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
		return id
	}
	id := uuid.NewString()
	c.SetCookie(sessionCookie, id, h.cfg.SessionTimeout, "/", "", false, true)
	return id
}

func (h *ShopHandler) GetCatalog(c *gin.Context) {
	catalog := h.cartService.Catalog()
	c.JSON(http.StatusOK, gin.H{
		"items":      catalog.Items,
		"surcharges": catalog.Surcharges,
	})
}

// GetPaymentInfo shows the accounts a customer can pay into.
func (h *ShopHandler) GetPaymentInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"payment_methods": []models.PaymentMethod{
			models.CashOnDelivery, models.MobileMoney, models.BankTransfer,
		},
		"mobile_money_accounts": gin.H{
			"JazzCash":  h.cfg.JazzCashNumber,
			"EasyPaisa": h.cfg.EasyPaisaNumber,
			"Raast":     h.cfg.RaastNumber,
		},
		"bank_transfer_details": gin.H{
			"bank_name":      h.cfg.BankName,
			"account_title":  h.cfg.BankAccountName,
			"account_number": h.cfg.BankAccount,
			"iban":           h.cfg.BankIBAN,
		},
	})
}

func (h *ShopHandler) GetCart(c *gin.Context) {
	cart, err := h.cartService.GetCart(h.sessionID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return
	}
	c.JSON(http.StatusOK, cartResponse(cart))
}

func (h *ShopHandler) AddToCart(c *gin.Context) {
	var req struct {
		ItemName string `json:"item_name"`
		Style    string `json:"style"`
		Quantity int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	cart, err := h.cartService.AddItem(h.sessionID(c), req.ItemName, req.Style, req.Quantity)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, models.ErrUnknownItem) || errors.Is(err, models.ErrInvalidStyle) || errors.Is(err, models.ErrInvalidQuantity) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cartResponse(cart))
}

func (h *ShopHandler) RemoveFromCart(c *gin.Context) {
	var req struct {
		ItemName string `json:"item_name"`
		Style    string `json:"style"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	cart, err := h.cartService.RemoveItem(h.sessionID(c), req.ItemName, req.Style)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}
	c.JSON(http.StatusOK, cartResponse(cart))
}

func (h *ShopHandler) ClearCart(c *gin.Context) {
	if err := h.cartService.ClearCart(h.sessionID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}

func (h *ShopHandler) Checkout(c *gin.Context) {
	var form services.CheckoutForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, fieldErrs, err := h.orderService.Checkout(h.sessionID(c), &form)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty. Please add items before checking out."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(fieldErrs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrs})
		return
	}
	c.JSON(http.StatusOK, result)
}

func cartResponse(cart *models.Cart) gin.H {
	return gin.H{
		"lines":       cart.Lines,
		"total":       cart.Total(),
		"total_items": cart.TotalItems(),
	}
}
