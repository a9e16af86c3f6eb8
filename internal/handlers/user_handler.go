package handlers

import (
	"bytes"
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/harentsoaR/scholarship-api/internal/metrics"
	"github.com/harentsoaR/scholarship-api/internal/models"
	"github.com/harentsoaR/scholarship-api/internal/services"
	"github.com/harentsoaR/scholarship-api/internal/store"
)

type createUserRequest struct {
	Name      string      `json:"name"`
	Email     string      `json:"email" binding:"required,email"`
	PhotoURL  string      `json:"photoURL"`
	CreatedAt *clientTime `json:"createdAt"`
}

// clientTime is a timestamp sent by a client either as an RFC3339 string or
// as epoch milliseconds.
type clientTime struct {
	time.Time
}

func (t *clientTime) UnmarshalJSON(b []byte) error {
	if bytes.HasPrefix(b, []byte(`"`)) {
		return t.Time.UnmarshalJSON(b)
	}
	ms, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return errors.New("createdAt must be an RFC3339 string or epoch milliseconds")
	}
	if math.Abs(ms) > maxEpochMillis {
		return errors.New("createdAt is out of range")
	}
	t.Time = time.UnixMilli(int64(ms)).UTC()
	return nil
}

// maxEpochMillis is the largest magnitude a JavaScript Date accepts.
const maxEpochMillis = 8.64e15

type updateRoleRequest struct {
	Role models.Role `json:"role" binding:"required,oneof=student moderator admin"`
}

// CreateUser registers a user. The role is always student; a client supplied
// createdAt is kept as sent.
func (h *Handler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user := models.User{
		Name:      req.Name,
		Email:     req.Email,
		PhotoURL:  req.PhotoURL,
		Role:      models.RoleStudent,
		CreatedAt: time.Now().UTC(),
	}
	if req.CreatedAt != nil {
		user.CreatedAt = req.CreatedAt.Time
	}
	insert(h, c, h.Store.Users, &user, "user")
}

func (h *Handler) GetUsers(c *gin.Context) {
	list(h, c, h.Store.Users, nil, "users")
}

func (h *Handler) UpdateUserRole(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req updateRoleRequest
	if !h.bindJSON(c, &req) {
		return
	}

	ctx, cancel := opContext(c)
	defer cancel()

	res, err := h.Store.Users.Update(ctx, id, store.Fields{"role": req.Role})
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "Failed to update role.", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// DeleteUser removes the external identity first and the record second. If the
// identity cannot be removed the record stays. If the record cannot be removed
// after the identity is gone, the record is stamped with identityDeletedAt.
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	ctx, cancel := opContext(c)
	defer cancel()

	user, err := store.FindByID(ctx, h.Store.Users, id)
	if errors.Is(err, store.ErrNotFound) {
		h.fail(c, http.StatusNotFound, "User not found.", nil)
		return
	}
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "Failed to fetch user.", err)
		return
	}

	identityDeleted := false
	if user.Email != "" {
		err = h.Identity.DeleteUserByEmail(ctx, user.Email)
		switch {
		case err == nil:
			identityDeleted = true
		case errors.Is(err, services.ErrIdentityNotFound):
			h.Log.Info("no external identity for user", zap.String("email", user.Email))
		default:
			h.fail(c, http.StatusInternalServerError, "Failed to delete user identity.", err)
			return
		}
	}

	res, err := h.Store.Users.Delete(ctx, id)
	if err != nil {
		if identityDeleted {
			h.markIdentityDeleted(c, id, user.Email)
		}
		h.fail(c, http.StatusInternalServerError, "Failed to delete user.", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) markIdentityDeleted(c *gin.Context, id primitive.ObjectID, email string) {
	metrics.UserDeleteReconcile.Inc()

	// The request context may already be done; the stamp still gets its own window.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), opTimeout)
	defer cancel()

	log := h.Log.With(zap.String("userId", id.Hex()), zap.String("email", email))
	if _, err := h.Store.Users.Update(ctx, id, store.Fields{"identityDeletedAt": time.Now().UTC()}); err != nil {
		log.Error("identity deleted but user record kept and could not be stamped", zap.Error(err))
		return
	}
	log.Error("identity deleted but user record kept")
}
