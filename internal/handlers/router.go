package handlers

import (
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	limiter "github.com/ulule/limiter/v3"
	ginlimiter "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memory "github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/harentsoaR/scholarship-api/internal/metrics"
	"github.com/harentsoaR/scholarship-api/internal/middleware"
)

type RouterOptions struct {
	CORSOrigins []string

	// RateLimit is a limiter rate such as "300-M"; empty disables limiting.
	RateLimit string

	// TrustedProxies may set the client IP through forwarding headers; nil
	// trusts none.
	TrustedProxies []string

	EnforceRoleGates bool
}

// NewRouter builds the engine with every route of the API registered on h.
func NewRouter(h *Handler, opts RouterOptions) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		return nil, fmt.Errorf("set trusted proxies: %w", err)
	}

	r.Use(ginzap.Ginzap(h.Log, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(h.Log, true))
	r.Use(metrics.Middleware())
	r.Use(cors.New(corsConfig(opts.CORSOrigins)))

	if opts.RateLimit != "" {
		rate, err := limiter.NewRateFromFormatted(opts.RateLimit)
		if err != nil {
			return nil, fmt.Errorf("parse rate limit %q: %w", opts.RateLimit, err)
		}
		r.Use(ginlimiter.NewMiddleware(limiter.New(memory.NewStore(), rate)))
	}

	auth := middleware.AuthMiddleware(h.Tokens)
	admin := middleware.VerifyAdmin(h.Store.Users, h.Log)
	moderator := middleware.VerifyModerator(h.Store.Users, h.Log)

	// gated puts auth and gate in front of handler only when role gates are on.
	gated := func(gate, handler gin.HandlerFunc) []gin.HandlerFunc {
		if !opts.EnforceRoleGates {
			return []gin.HandlerFunc{handler}
		}
		return []gin.HandlerFunc{auth, gate, handler}
	}

	r.GET("/", h.Liveness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/jwt", h.IssueToken)

	// Users
	r.POST("/users", h.CreateUser)
	r.GET("/users", h.GetUsers)
	r.DELETE("/users/:id", auth, admin, h.DeleteUser)
	r.PATCH("/users/:id/role", gated(admin, h.UpdateUserRole)...)

	// Scholarships
	r.POST("/scholarships", h.CreateScholarship)
	r.GET("/scholarships", h.GetScholarships)
	r.PATCH("/scholarships/:id", gated(moderator, h.UpdateScholarship)...)
	r.DELETE("/scholarships/:id", gated(moderator, h.DeleteScholarship)...)

	// Applications
	r.POST("/applications", h.CreateApplication)
	r.GET("/applications", h.GetApplications)
	r.PATCH("/applications/:id", gated(moderator, h.UpdateApplication)...)
	r.DELETE("/applications/:id", gated(moderator, h.DeleteApplication)...)

	// Reviews
	r.POST("/reviews", h.CreateReview)
	r.GET("/reviews", h.GetReviews)
	r.PATCH("/reviews/:id", gated(moderator, h.UpdateReview)...)
	r.DELETE("/reviews/:id", gated(moderator, h.DeleteReview)...)

	// Payments
	payments := r.Group("/")
	payments.Use(auth)
	{
		payments.POST("/create-payment-intent", h.CreatePaymentIntent)
		payments.POST("/payments", h.CreatePayment)
		payments.GET("/payments", h.GetPayments)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "route not found"})
	})
	return r, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
