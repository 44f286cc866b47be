package handlers

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
	"tumble_cup/internal/models"
	"tumble_cup/internal/repository"
	"tumble_cup/internal/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// CredentialCheck decides whether an admin-supplied password is valid.
type CredentialCheck func(password string) bool

// NewCredentialCheck prefers a bcrypt hash; with only a plaintext secret
// configured it falls back to a constant-time compare. With neither, every
// attempt is rejected.
func NewCredentialCheck(plaintext, bcryptHash string) CredentialCheck {
	if bcryptHash != "" {
		return func(password string) bool {
			return bcrypt.CompareHashAndPassword([]byte(bcryptHash), []byte(password)) == nil
		}
	}
	if plaintext != "" {
		return func(password string) bool {
			return subtle.ConstantTimeCompare([]byte(plaintext), []byte(password)) == 1
		}
	}
	return func(string) bool { return false }
}

// AdminHandler serves the order administration endpoints. The gormStore is
// only set for the relational backend and powers the encryption probe.
type AdminHandler struct {
	orderService services.OrderService
	checkPass    CredentialCheck
	gormStore    *repository.GormStore
}

func NewAdminHandler(orderService services.OrderService, checkPass CredentialCheck, gormStore *repository.GormStore) *AdminHandler {
	return &AdminHandler{
		orderService: orderService,
		checkPass:    checkPass,
		gormStore:    gormStore,
	}
}

// Authenticate is the gin middleware guarding every admin route.
func (h *AdminHandler) Authenticate(c *gin.Context) {
	if !h.checkPass(c.GetHeader("X-Admin-Password")) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Incorrect password"})
		return
	}
	c.Next()
}

func parseFilter(c *gin.Context) (models.OrderFilter, error) {
	var filter models.OrderFilter
	if raw := c.Query("month"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil || month < 1 || month > 12 {
			return filter, fmt.Errorf("month must be 1-12")
		}
		filter.Month = time.Month(month)
	}
	filter.SearchText = c.Query("search")
	filter.Statuses = c.QueryArray("status")
	filter.PaymentStatuses = c.QueryArray("payment_status")
	return filter, nil
}

func (h *AdminHandler) ListOrders(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orders, err := h.orderService.ListOrders(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	h.updateStatusWith(c, h.orderService.UpdateStatus)
}

func (h *AdminHandler) UpdatePaymentStatus(c *gin.Context) {
	h.updateStatusWith(c, h.orderService.UpdatePaymentStatus)
}

func (h *AdminHandler) updateStatusWith(c *gin.Context, update func(id uint, status string) error) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := update(id, req.Status); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
}

func (h *AdminHandler) DeleteOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.orderService.DeleteOrder(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": "deleted"})
}

func (h *AdminHandler) CountOrders(c *gin.Context) {
	count, err := h.orderService.CountOrders()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *AdminHandler) ExportCSV(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data, err := h.orderService.ExportCSV(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export orders"})
		return
	}

	filename := fmt.Sprintf("tumble_cup_orders_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv", data)
}

// EncryptionStatus samples one stored record and reports whether it
// decrypts with the configured key.
func (h *AdminHandler) EncryptionStatus(c *gin.Context) {
	if h.gormStore == nil || h.gormStore.Cipher() == nil {
		c.JSON(http.StatusOK, gin.H{"enabled": false})
		return
	}

	sample, err := h.gormStore.SampleEncrypted()
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"enabled": true, "checked": false, "message": "No records found to check"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sample records"})
		return
	}

	if _, err := h.gormStore.Cipher().Decrypt(sample); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"enabled": true, "checked": true, "working": false,
			"message": "Some records may not be encrypted",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"enabled": true, "checked": true, "working": true})
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return 0, false
	}
	return uint(id), true
}
