package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harentsoaR/scholarship-api/internal/access"
	"github.com/harentsoaR/scholarship-api/internal/metrics"
	"github.com/harentsoaR/scholarship-api/internal/middleware"
	"github.com/harentsoaR/scholarship-api/internal/models"
	"github.com/harentsoaR/scholarship-api/internal/services"
	"github.com/harentsoaR/scholarship-api/internal/store"
)

type paymentIntentRequest struct {
	Amount *float64 `json:"amount" binding:"required,gt=0"`
}

type createPaymentRequest struct {
	UserEmail       string  `json:"userEmail" binding:"required,email"`
	UserName        string  `json:"userName"`
	ScholarshipID   string  `json:"scholarshipId" binding:"required"`
	ScholarshipName string  `json:"scholarshipName"`
	Amount          float64 `json:"amount" binding:"required,gt=0"`
	TransactionID   string  `json:"transactionId" binding:"required"`
	PaymentMethod   string  `json:"paymentMethod"`
}

// CreatePaymentIntent asks the provider for an intent over amount (major
// units) and hands its client secret back.
func (h *Handler) CreatePaymentIntent(c *gin.Context) {
	var req paymentIntentRequest
	if !h.bindJSON(c, &req) {
		metrics.PaymentIntents.WithLabelValues("rejected").Inc()
		return
	}

	minor, err := services.ToMinorUnits(*req.Amount)
	if err != nil {
		metrics.PaymentIntents.WithLabelValues("rejected").Inc()
		h.fail(c, http.StatusBadRequest, "Invalid amount: "+err.Error()+".", err)
		return
	}

	ctx, cancel := opContext(c)
	defer cancel()

	secret, err := h.Payments.CreatePaymentIntent(ctx, minor, h.Currency)
	if err != nil {
		metrics.PaymentIntents.WithLabelValues("failed").Inc()
		h.fail(c, http.StatusInternalServerError, "Failed to create payment intent.", err)
		return
	}
	metrics.PaymentIntents.WithLabelValues("created").Inc()
	h.Log.Info("payment intent created",
		zap.String("email", middleware.Email(c)),
		zap.Int64("amount", minor),
		zap.String("currency", h.Currency),
	)
	c.JSON(http.StatusOK, gin.H{"clientSecret": secret})
}

// CreatePayment records a payment the client reports as done. The transaction
// is not checked against the provider.
func (h *Handler) CreatePayment(c *gin.Context) {
	var req createPaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	payment := models.Payment{
		UserEmail:       req.UserEmail,
		UserName:        req.UserName,
		ScholarshipID:   req.ScholarshipID,
		ScholarshipName: req.ScholarshipName,
		Amount:          req.Amount,
		TransactionID:   req.TransactionID,
		PaymentMethod:   req.PaymentMethod,
		Status:          models.PaymentPaid,
		CreatedAt:       time.Now().UTC(),
	}
	insert(h, c, h.Store.Payments, &payment, "payment")
}

// GetPayments lists the caller's own payments when ?email= is given and every
// payment for admins otherwise.
func (h *Handler) GetPayments(c *gin.Context) {
	caller := middleware.Email(c)

	if email, ok := c.GetQuery("email"); ok {
		if email != caller {
			h.fail(c, http.StatusForbidden, "forbidden access", nil)
			return
		}
		list(h, c, h.Store.Payments, store.Filter{"userEmail": email}, "payments")
		return
	}

	ctx, cancel := opContext(c)
	defer cancel()

	decision, err := access.Authorize(ctx, h.Store.Users, caller, access.AdminOnly...)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "Failed to verify role.", err)
		return
	}
	if !decision.Allowed {
		h.Log.Info("payments list denied", zap.String("email", caller), zap.String("reason", decision.Reason))
		c.JSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
		return
	}
	list(h, c, h.Store.Payments, nil, "payments")
}
