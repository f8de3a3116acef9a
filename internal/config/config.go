package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/morphergyx/inquiry-api/internal/secrets"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds all application configuration
type Config struct {
	App           AppConfig
	Database      DatabaseConfig
	Auth          AuthConfig
	Email         EmailConfig
	Notifications NotificationsConfig
	Jobs          JobsConfig
	Secrets       SecretsConfig
	Logging       LoggingConfig
	Server        ServerConfig
	CORS          CORSConfig
	Security      SecurityConfig
	RateLimit     RateLimitConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Port        int
	// PublicURL is linked from the confirmation email
	PublicURL string
}

type DatabaseConfig struct {
	// Driver is "postgres" or "sqlite"
	Driver   string
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string
	// Path is the sqlite database file (":memory:" for an ephemeral store)
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	AutoMigrate     bool
	ConnectRetries  int
	RetryDelay      int
}

// AuthConfig holds the single admin account and token settings
type AuthConfig struct {
	AdminID       string
	AdminName     string
	AdminEmail    string
	AdminPassword string
	JWTSecret     string
	JWTIssuer     string
	// JWTExpiry is the token lifetime in minutes
	JWTExpiry int
}

// EmailConfig selects and configures the outbound email transport
type EmailConfig struct {
	// Provider is one of "sendgrid", "ses", "smtp" or "log"
	Provider  string
	FromName  string
	FromEmail string

	SendGridAPIKey string

	SESRegion string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
}

// NotificationsConfig toggles the dispatches triggered by a new inquiry
type NotificationsConfig struct {
	SendConfirmation      bool
	SendAdminNotification bool
	AdminEmail            string
}

// JobsConfig holds background job configuration
type JobsConfig struct {
	FollowUpReminderEnabled bool
	// FollowUpReminderCron uses the 6-field format (with seconds)
	FollowUpReminderCron    string
	FollowUpReminderTimeout int
}

type SecretsConfig struct {
	// Source determines where secrets are loaded from: "environment", "vault", or "auto"
	// "auto" uses environment in development, vault in staging/production
	Source       string
	KeyVaultName string
	CacheEnabled bool
	CacheTTL     int // seconds
}

type LoggingConfig struct {
	Level  string
	Format string
}

type ServerConfig struct {
	ReadTimeout   int
	WriteTimeout  int
	EnableSwagger bool
	EnableMetrics bool
	// MaxBodyBytes bounds JSON request bodies
	MaxBodyBytes int64
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	// AllowedOrigins is a list of allowed origins for CORS requests
	// Use "*" to allow all origins (not recommended for production)
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	// MaxAge is the max age (in seconds) for preflight cache
	MaxAge int
}

// SecurityConfig holds security header configuration
type SecurityConfig struct {
	EnableHSTS            bool
	HSTSMaxAge            int
	HSTSIncludeSubdomains bool
	HSTSPreload           bool
	ContentSecurityPolicy string
	FrameOptions          string
	ContentTypeNosniff    bool
	ReferrerPolicy        string
	PermissionsPolicy     string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled bool
	// RequestsPerWindow is the general per-IP limit for all API routes
	RequestsPerWindow int
	// WindowSeconds is the length of the general window
	WindowSeconds int
	// SubmissionsPerWindow is the per-IP limit on public inquiry submissions
	SubmissionsPerWindow int
	// SubmissionWindowSeconds is the length of the submission window
	SubmissionWindowSeconds int
	WhitelistIPs            []string
	WhitelistPaths          []string
}

// ConnectionString builds PostgreSQL connection string
func (d *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// ConnMaxLifetimeDuration returns connection max lifetime as duration
func (d *DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}

// RetryDelayDuration returns the delay between connection attempts
func (d *DatabaseConfig) RetryDelayDuration() time.Duration {
	return time.Duration(d.RetryDelay) * time.Second
}

// ReadTimeoutDuration returns read timeout as duration
func (s *ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns write timeout as duration
func (s *ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

// JWTExpiryDuration returns the token lifetime as duration
func (a *AuthConfig) JWTExpiryDuration() time.Duration {
	return time.Duration(a.JWTExpiry) * time.Minute
}

// WindowDuration returns the general rate limit window
func (r *RateLimitConfig) WindowDuration() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

// SubmissionWindowDuration returns the submission rate limit window
func (r *RateLimitConfig) SubmissionWindowDuration() time.Duration {
	return time.Duration(r.SubmissionWindowSeconds) * time.Second
}

// FollowUpReminderTimeoutDuration bounds a single reminder run
func (j *JobsConfig) FollowUpReminderTimeoutDuration() time.Duration {
	return time.Duration(j.FollowUpReminderTimeout) * time.Second
}

// Load loads configuration from file and environment variables
// This is a basic load that doesn't fetch secrets from vault
// Use LoadWithSecrets for full secret resolution
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override config file
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Flat env names used by existing deployments
	if cfg.Auth.AdminEmail == "" {
		cfg.Auth.AdminEmail = v.GetString("ADMIN_EMAIL")
	}
	if cfg.Auth.AdminPassword == "" {
		cfg.Auth.AdminPassword = v.GetString("ADMIN_PASSWORD")
	}
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = v.GetString("JWT_SECRET")
	}
	if cfg.Notifications.AdminEmail == "" {
		cfg.Notifications.AdminEmail = cfg.Auth.AdminEmail
	}
	if v.IsSet("SEND_EMAIL_NOTIFICATIONS") {
		cfg.Notifications.SendConfirmation = v.GetBool("SEND_EMAIL_NOTIFICATIONS")
	}
	if v.IsSet("SEND_ADMIN_NOTIFICATIONS") {
		cfg.Notifications.SendAdminNotification = v.GetBool("SEND_ADMIN_NOTIFICATIONS")
	}
	if cfg.Email.SendGridAPIKey == "" {
		cfg.Email.SendGridAPIKey = v.GetString("SENDGRID_API_KEY")
	}
	if cfg.Secrets.KeyVaultName == "" {
		cfg.Secrets.KeyVaultName = v.GetString("AZURE_KEY_VAULT_NAME")
	}

	return &cfg, nil
}

// Validate checks settings the server cannot start without
func (c *Config) Validate() error {
	var problems []string
	if c.Auth.JWTSecret == "" {
		problems = append(problems, "auth.jwtSecret (JWT_SECRET) is required")
	}
	if c.Auth.AdminEmail == "" || c.Auth.AdminPassword == "" {
		problems = append(problems, "auth.adminEmail and auth.adminPassword (ADMIN_EMAIL, ADMIN_PASSWORD) are required")
	}
	if c.Notifications.SendAdminNotification && c.Notifications.AdminEmail == "" {
		problems = append(problems, "notifications.adminEmail is required when admin notifications are enabled")
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		problems = append(problems, fmt.Sprintf("database.driver %q is not supported", c.Database.Driver))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// LoadWithSecrets loads configuration and resolves secrets from the configured source
// In development (or when secrets.source = "environment"), secrets come from env vars
// In staging/production with USE_AZURE_KEY_VAULT=true, secrets come from Azure Key Vault
func LoadWithSecrets(ctx context.Context, logger *zap.Logger) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	useKeyVault := strings.ToLower(os.Getenv("USE_AZURE_KEY_VAULT")) == "true"
	isValidEnv := cfg.App.Environment == "staging" || cfg.App.Environment == "production"

	if !useKeyVault {
		logger.Info("USE_AZURE_KEY_VAULT not enabled, using environment variables for secrets",
			zap.String("environment", cfg.App.Environment),
		)
		return cfg, nil
	}

	if !isValidEnv {
		logger.Warn("USE_AZURE_KEY_VAULT is enabled but environment is not staging or production, using environment variables for secrets",
			zap.String("environment", cfg.App.Environment),
		)
		return cfg, nil
	}

	if cfg.Secrets.KeyVaultName == "" {
		return nil, fmt.Errorf("AZURE_KEY_VAULT_NAME is required when USE_AZURE_KEY_VAULT=true")
	}

	provider, err := secrets.NewProvider(&secrets.ProviderConfig{
		Source:       secrets.SourceVault,
		VaultName:    cfg.Secrets.KeyVaultName,
		Environment:  cfg.App.Environment,
		CacheEnabled: cfg.Secrets.CacheEnabled,
		CacheTTL:     time.Duration(cfg.Secrets.CacheTTL) * time.Second,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize secrets provider (USE_AZURE_KEY_VAULT=true requires valid vault): %w", err)
	}

	logger.Info("Loading secrets from Azure Key Vault",
		zap.String("key_vault_name", cfg.Secrets.KeyVaultName),
	)

	applySecrets(ctx, cfg, provider)

	logger.Info("Secrets loaded from vault successfully")
	return cfg, nil
}

// SecretSource is the lookup used to overlay secrets onto the config
type SecretSource interface {
	GetSecretOrEnv(ctx context.Context, secretName, envName string) (string, error)
}

func applySecrets(ctx context.Context, cfg *Config, src SecretSource) {
	overlay := func(target *string, secretName, envName string) {
		if value, err := src.GetSecretOrEnv(ctx, secretName, envName); err == nil && value != "" {
			*target = value
		}
	}

	overlay(&cfg.Database.Host, "POSTGRES-MAIN-HOST", "DATABASE_HOST")
	overlay(&cfg.Database.User, "POSTGRES-MAIN-USER", "DATABASE_USER")
	overlay(&cfg.Database.Password, "POSTGRES-MAIN-PASSWORD", "DATABASE_PASSWORD")
	overlay(&cfg.Auth.JWTSecret, "jwt-secret", "JWT_SECRET")
	overlay(&cfg.Auth.AdminPassword, "admin-password", "ADMIN_PASSWORD")
	overlay(&cfg.Email.SendGridAPIKey, "sendgrid-api-key", "SENDGRID_API_KEY")
	overlay(&cfg.Email.SMTPPassword, "smtp-password", "EMAIL_SMTPPASSWORD")

	// SSL mode from env var (Azure PostgreSQL requires "require")
	if sslMode := os.Getenv("DATABASE_SSLMODE"); sslMode != "" {
		cfg.Database.SSLMode = sslMode
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "Morphergyx Inquiry API")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", 5000)
	v.SetDefault("app.publicURL", "https://morphergyx.com")

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "inquiries")
	v.SetDefault("database.user", "inquiry_user")
	v.SetDefault("database.password", "inquiry_password")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.path", "inquiries.db")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", 300)
	v.SetDefault("database.autoMigrate", false)
	v.SetDefault("database.connectRetries", 3)
	v.SetDefault("database.retryDelay", 2)

	v.SetDefault("auth.adminID", "admin-001")
	v.SetDefault("auth.adminName", "Administrator")
	v.SetDefault("auth.jwtIssuer", "inquiry-api")
	v.SetDefault("auth.jwtExpiry", 7*24*60) // 7 days

	v.SetDefault("email.provider", "log")
	v.SetDefault("email.fromName", "Morphergyx LLP")
	v.SetDefault("email.fromEmail", "no-reply@morphergyx.com")
	v.SetDefault("email.sesRegion", "eu-west-1")
	v.SetDefault("email.smtpPort", 587)

	v.SetDefault("notifications.sendConfirmation", false)
	v.SetDefault("notifications.sendAdminNotification", false)

	v.SetDefault("jobs.followUpReminderEnabled", false)
	v.SetDefault("jobs.followUpReminderCron", "0 0 8 * * *") // 08:00 every day
	v.SetDefault("jobs.followUpReminderTimeout", 60)

	v.SetDefault("secrets.source", "auto")
	v.SetDefault("secrets.cacheEnabled", true)
	v.SetDefault("secrets.cacheTTL", 300)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 30)
	v.SetDefault("server.enableSwagger", true)
	v.SetDefault("server.enableMetrics", true)
	v.SetDefault("server.maxBodyBytes", 10<<20) // 10 MB

	v.SetDefault("cors.allowedOrigins", []string{"http://localhost:3000"})
	v.SetDefault("cors.allowedMethods", []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowedHeaders", []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"})
	v.SetDefault("cors.exposedHeaders", []string{"Location", "X-Request-ID"})
	v.SetDefault("cors.allowCredentials", true)
	v.SetDefault("cors.maxAge", 300)

	v.SetDefault("security.enableHSTS", false)
	v.SetDefault("security.hstsMaxAge", 31536000)
	v.SetDefault("security.hstsIncludeSubdomains", true)
	v.SetDefault("security.hstsPreload", false)
	v.SetDefault("security.contentSecurityPolicy", "default-src 'self'")
	v.SetDefault("security.frameOptions", "DENY")
	v.SetDefault("security.contentTypeNosniff", true)
	v.SetDefault("security.referrerPolicy", "strict-origin-when-cross-origin")
	v.SetDefault("security.permissionsPolicy", "geolocation=(), microphone=(), camera=()")

	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.requestsPerWindow", 100)
	v.SetDefault("rateLimit.windowSeconds", 15*60)
	v.SetDefault("rateLimit.submissionsPerWindow", 5)
	v.SetDefault("rateLimit.submissionWindowSeconds", 15*60)
	v.SetDefault("rateLimit.whitelistIPs", []string{})
	v.SetDefault("rateLimit.whitelistPaths", []string{"/health", "/health/db", "/health/ready", "/metrics"})
}
