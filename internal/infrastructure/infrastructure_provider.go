package infrastructure

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"chat-server/internal/config"
	"chat-server/internal/domain/chat"
	"chat-server/internal/domain/identity"
	"chat-server/internal/infrastructure/auth"
	"chat-server/internal/infrastructure/completion"
	"chat-server/internal/infrastructure/crontab"
	"chat-server/internal/infrastructure/database"
	"chat-server/internal/infrastructure/database/repository"
	"chat-server/internal/infrastructure/database/transaction"
	"chat-server/internal/infrastructure/guestauth"
	"chat-server/internal/infrastructure/logger"
	"chat-server/internal/utils/httpclients"
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	return config.Load()
}

// ProvideSessionValidator provides a JWT validator backed by the provider JWKS
func ProvideSessionValidator(cfg *config.Config, log zerolog.Logger) (*auth.SessionValidator, error) {
	ctx := context.Background()
	jwksURL, err := cfg.ResolveJWKSURL(ctx)
	if err != nil {
		return nil, err
	}
	return auth.NewSessionValidator(
		ctx,
		jwksURL,
		cfg.Issuer,
		cfg.Audience,
		cfg.RefreshJWKSInterval,
		cfg.AuthClockSkew,
		log,
	)
}

// ProvideTokenValidator exposes the session validator to the identity resolver
func ProvideTokenValidator(v *auth.SessionValidator) identity.TokenValidator {
	return v
}

// ProvideGuestProvider provides the guest identity provider client
func ProvideGuestProvider(cfg *config.Config, log zerolog.Logger) identity.GuestProvider {
	return guestauth.NewClient(
		httpclients.NewClient("guest-auth"),
		cfg.GuestAuthBaseURL,
		cfg.GuestAuthKey,
		cfg.GuestAuthTimeout,
		log,
	)
}

// ProvideCompletionClient provides the completion provider client
func ProvideCompletionClient(cfg *config.Config) chat.CompletionClient {
	return completion.NewClient(
		httpclients.NewClient("completion"),
		completion.Config{
			BaseURL: cfg.CompletionBaseURL,
			APIKey:  cfg.CompletionAPIKey,
			Model:   cfg.CompletionModel,
			Timeout: cfg.CompletionTimeout,
		},
	)
}

// ProvideDatabase provides a database connection
func ProvideDatabase(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.NewDB(cfg.DatabaseURL, cfg.DBPostgresqlRead1DSN)
	if err != nil {
		return nil, err
	}

	// Run migrations if AUTO_MIGRATE is enabled
	if cfg.AutoMigrate {
		log.Info().Msg("Running database migrations...")
		if err := database.Migration(db, "chat_api."); err != nil {
			log.Error().Err(err).Msg("Failed to run database migrations")
			return nil, err
		}
		log.Info().Msg("Database migrations completed successfully")
	}

	return db, nil
}

// ProvideTransactionDatabase provides a transaction database wrapper
func ProvideTransactionDatabase(db *gorm.DB) *transaction.Database {
	return transaction.NewDatabase(db)
}

// ProvideTransactor exposes the transaction wrapper to the chat pipeline
func ProvideTransactor(db *transaction.Database) chat.Transactor {
	return db
}

// Infrastructure holds all infrastructure dependencies
type Infrastructure struct {
	DB               *gorm.DB
	SessionValidator *auth.SessionValidator
	Logger           zerolog.Logger
}

// NewInfrastructure creates a new infrastructure instance
func NewInfrastructure(
	db *gorm.DB,
	sessionValidator *auth.SessionValidator,
	logger zerolog.Logger,
) *Infrastructure {
	return &Infrastructure{
		DB:               db,
		SessionValidator: sessionValidator,
		Logger:           logger,
	}
}

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	// Config
	ProvideConfig,

	// Database
	ProvideDatabase,
	ProvideTransactionDatabase,
	ProvideTransactor,

	// Repositories
	repository.RepositoryProvider,

	// Logger
	logger.GetLogger,

	// Auth
	ProvideSessionValidator,
	ProvideTokenValidator,
	ProvideGuestProvider,

	// Completion provider
	ProvideCompletionClient,

	// Crontab for guest retention
	crontab.NewCrontab,

	// Infrastructure struct
	NewInfrastructure,
)
