package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/harentsoaR/scholarship-api/internal/services"
	"github.com/harentsoaR/scholarship-api/internal/store"
	"github.com/harentsoaR/scholarship-api/internal/utils"
)

// opTimeout bounds each store or provider call made while serving a request.
const opTimeout = 10 * time.Second

type Handler struct {
	Store    *store.Store
	Tokens   *utils.TokenIssuer
	Identity services.IdentityProvider
	Payments services.PaymentProvider
	Currency string
	Log      *zap.Logger
}

func NewHandler(
	st *store.Store,
	tokens *utils.TokenIssuer,
	identity services.IdentityProvider,
	payments services.PaymentProvider,
	currency string,
	log *zap.Logger,
) *Handler {
	return &Handler{
		Store:    st,
		Tokens:   tokens,
		Identity: identity,
		Payments: payments,
		Currency: currency,
		Log:      log,
	}
}

func opContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), opTimeout)
}

// fail logs err and answers with a {message} body.
func (h *Handler) fail(c *gin.Context, status int, message string, err error) {
	fields := []zap.Field{
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", status),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	if status >= http.StatusInternalServerError {
		h.Log.Error(message, fields...)
	} else {
		h.Log.Info(message, fields...)
	}
	c.JSON(status, gin.H{"message": message})
}

// parseID reads the :id path parameter; a malformed id ends the request with 400.
func (h *Handler) parseID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		h.fail(c, http.StatusBadRequest, "Invalid id.", err)
		return primitive.NilObjectID, false
	}
	return id, true
}

// bindJSON decodes and validates the body; violations end the request with 400.
func (h *Handler) bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.fail(c, http.StatusBadRequest, bindMessage(err), err)
		return false
	}
	return true
}

func bindMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return "Missing required field: " + fe.Field() + "."
		case "email":
			return "Invalid email in field: " + fe.Field() + "."
		case "oneof":
			return "Field " + fe.Field() + " must be one of: " + fe.Param() + "."
		default:
			return "Invalid value for field: " + fe.Field() + "."
		}
	}
	return "Invalid request body."
}

func list[T any](h *Handler, c *gin.Context, repo store.Repository[T], filter store.Filter, what string) {
	ctx, cancel := opContext(c)
	defer cancel()

	docs, err := repo.List(ctx, filter)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "Failed to fetch "+what+".", err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func insert[T any](h *Handler, c *gin.Context, repo store.Repository[T], doc *T, what string) {
	ctx, cancel := opContext(c)
	defer cancel()

	res, err := repo.Insert(ctx, doc)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "Failed to create "+what+".", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// patch merges the set fields of body into the document at :id.
func patch[T any](h *Handler, c *gin.Context, repo store.Repository[T], id primitive.ObjectID, body any, what string) {
	fields, err := store.FieldsOf(body)
	if err != nil {
		h.fail(c, http.StatusBadRequest, "Invalid request body.", err)
		return
	}
	if len(fields) == 0 {
		h.fail(c, http.StatusBadRequest, "No fields to update.", nil)
		return
	}

	ctx, cancel := opContext(c)
	defer cancel()

	res, err := repo.Update(ctx, id, fields)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "Failed to update "+what+".", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func remove[T any](h *Handler, c *gin.Context, repo store.Repository[T], what string) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	ctx, cancel := opContext(c)
	defer cancel()

	res, err := repo.Delete(ctx, id)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "Failed to delete "+what+".", err)
		return
	}
	c.JSON(http.StatusOK, res)
}
