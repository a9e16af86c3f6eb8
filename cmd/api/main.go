package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/harentsoaR/scholarship-api/internal/config"
	"github.com/harentsoaR/scholarship-api/internal/handlers"
	"github.com/harentsoaR/scholarship-api/internal/logger"
	"github.com/harentsoaR/scholarship-api/internal/services"
	"github.com/harentsoaR/scholarship-api/internal/store"
	"github.com/harentsoaR/scholarship-api/internal/utils"
)

func main() {
	cfg, loadedEnvFile, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg := logger.New(cfg.LogLevel)
	defer logg.Sync() //nolint:errcheck
	if !loadedEnvFile {
		logg.Info("No .env file found, relying on environment variables.")
	}
	gin.SetMode(gin.ReleaseMode)

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(serverAPI))
	if err != nil {
		logg.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	if err := client.Ping(ctx, nil); err != nil {
		logg.Fatal("Failed to ping MongoDB", zap.Error(err))
	}
	db := client.Database(cfg.MongoDatabase)
	if err := store.EnsureIndexes(ctx, db); err != nil {
		logg.Warn("Failed to ensure indexes", zap.Error(err))
	}
	logg.Info("Successfully connected to MongoDB", zap.String("database", cfg.MongoDatabase))

	// --- Initialize Services ---
	var identity services.IdentityProvider = services.DisabledIdentity{Log: logg}
	if cfg.Auth0Enabled() {
		// The token source keeps this context for refreshes.
		a0, err := services.NewAuth0Identity(context.Background(), services.Auth0Config{
			Domain:       cfg.Auth0Domain,
			ClientID:     cfg.Auth0ClientID,
			ClientSecret: cfg.Auth0ClientSecret,
		}, logg)
		if err != nil {
			logg.Fatal("Failed to initialize identity provider", zap.Error(err))
		}
		identity = a0
	} else {
		logg.Warn("AUTH0_* not set, external identities will not be deleted")
	}

	var payments services.PaymentProvider = services.DisabledPayments{}
	if cfg.StripeEnabled() {
		payments = services.NewStripePayments(cfg.StripeSecretKey)
	} else {
		logg.Warn("STRIPE_SECRET_KEY not set, payment intents are disabled")
	}

	// --- Initialize Handlers with DB and Services ---
	h := handlers.NewHandler(
		store.NewMongo(db),
		utils.NewTokenIssuer(cfg.JWTSecret),
		identity,
		payments,
		cfg.StripeCurrency,
		logg,
	)

	// --- Gin Router ---
	r, err := handlers.NewRouter(h, handlers.RouterOptions{
		CORSOrigins:      cfg.CORSOrigins,
		RateLimit:        cfg.RateLimit,
		TrustedProxies:   cfg.TrustedProxies,
		EnforceRoleGates: cfg.EnforceRoleGates,
	})
	if err != nil {
		logg.Fatal("Failed to build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logg.Info("Starting server", zap.String("port", cfg.Port), zap.Bool("enforceRoleGates", cfg.EnforceRoleGates))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logg.Info("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		logg.Error("Failed to disconnect from MongoDB", zap.Error(err))
	}
}
