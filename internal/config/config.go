package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port string `envconfig:"PORT" default:"3000"`

	// Database. MONGO_URI wins; otherwise an Atlas SRV URI is built from the parts.
	MongoURI      string `envconfig:"MONGO_URI"`
	DBUser        string `envconfig:"DB_USER"`
	DBPass        string `envconfig:"DB_PASS"`
	DBHost        string `envconfig:"DB_HOST" default:"cluster0.zazcspq.mongodb.net"`
	MongoDatabase string `envconfig:"MONGO_DATABASE" default:"scholarshipDB"`

	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	StripeSecretKey string `envconfig:"STRIPE_SECRET_KEY"`
	StripeCurrency  string `envconfig:"STRIPE_CURRENCY" default:"usd"`

	Auth0Domain       string `envconfig:"AUTH0_DOMAIN"`
	Auth0ClientID     string `envconfig:"AUTH0_CLIENT_ID"`
	Auth0ClientSecret string `envconfig:"AUTH0_CLIENT_SECRET"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`
	LogLevel    string   `envconfig:"LOG_LEVEL" default:"info"`
	RateLimit   string   `envconfig:"RATE_LIMIT" default:"300-M"`

	// Proxies whose X-Forwarded-For is believed when resolving the client IP.
	// Empty means the socket peer is the client.
	TrustedProxies []string `envconfig:"TRUSTED_PROXIES"`

	// Puts the moderator/admin gates on the mutations that are open by default.
	EnforceRoleGates bool `envconfig:"ENFORCE_ROLE_GATES" default:"false"`
}

// Load reads an optional .env file and then the process environment.
// loadedEnvFile reports whether a .env file was found.
func Load() (cfg Config, loadedEnvFile bool, err error) {
	loadedEnvFile = godotenv.Load() == nil

	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, loadedEnvFile, fmt.Errorf("process env: %w", err)
	}
	if cfg.MongoURI == "" {
		uri, err := cfg.atlasURI()
		if err != nil {
			return cfg, loadedEnvFile, err
		}
		cfg.MongoURI = uri
	}
	return cfg, loadedEnvFile, nil
}

func (c Config) atlasURI() (string, error) {
	if c.DBUser == "" || c.DBPass == "" {
		return "", errors.New("either MONGO_URI or DB_USER and DB_PASS must be set")
	}
	u := url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(c.DBUser, c.DBPass),
		Host:     c.DBHost,
		Path:     "/",
		RawQuery: "appName=" + strings.SplitN(c.DBHost, ".", 2)[0],
	}
	return u.String(), nil
}

func (c Config) StripeEnabled() bool { return c.StripeSecretKey != "" }

func (c Config) Auth0Enabled() bool {
	return c.Auth0Domain != "" && c.Auth0ClientID != "" && c.Auth0ClientSecret != ""
}
