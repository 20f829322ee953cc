// cmd/container.go
//
// Root composition root. Owns infrastructure (DB, Redis, AWS clients) and
// wires every module explicitly. This is the only place that knows about
// ALL modules.
package main

import (
	"context"

	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/postwave/postwave/internal/migrations"
	"github.com/postwave/postwave/pkg/archive"
	"github.com/postwave/postwave/pkg/archive/archivelocal"
	"github.com/postwave/postwave/pkg/archive/archives3"
	"github.com/postwave/postwave/pkg/config"
	"github.com/postwave/postwave/pkg/contact"
	"github.com/postwave/postwave/pkg/contact/contactinfra"
	"github.com/postwave/postwave/pkg/contact/contactsrv"
	"github.com/postwave/postwave/pkg/copygen"
	"github.com/postwave/postwave/pkg/copygen/copygenanthropic"
	"github.com/postwave/postwave/pkg/copygen/copygeninfra"
	"github.com/postwave/postwave/pkg/copygen/copygenopenai"
	"github.com/postwave/postwave/pkg/copygen/copygensrv"
	"github.com/postwave/postwave/pkg/dispatch"
	"github.com/postwave/postwave/pkg/dispatch/dispatchinfra"
	"github.com/postwave/postwave/pkg/group"
	"github.com/postwave/postwave/pkg/group/groupinfra"
	"github.com/postwave/postwave/pkg/group/groupsrv"
	"github.com/postwave/postwave/pkg/iam/auth"
	"github.com/postwave/postwave/pkg/iam/auth/authinfra"
	"github.com/postwave/postwave/pkg/iam/auth/authsrv"
	"github.com/postwave/postwave/pkg/logx"
	"github.com/postwave/postwave/pkg/mailer"
	"github.com/postwave/postwave/pkg/mailer/mailerconsole"
	"github.com/postwave/postwave/pkg/mailer/mailerses"
	"github.com/postwave/postwave/pkg/suppression"
	"github.com/postwave/postwave/pkg/suppression/suppressioninfra"
	"github.com/postwave/postwave/pkg/suppression/suppressionredis"
)

// Container holds shared infrastructure and the wired module handlers.
type Container struct {
	Config *config.Config

	// Infrastructure (shared across all modules)
	DB    *sqlx.DB
	Redis *redis.Client

	// Cross-module ports
	ContactRepo contact.Repository
	GroupRepo   group.Repository
	Gateway     mailer.Gateway
	Suppression suppression.Store
	Archive     archive.Store

	// Middleware
	AuthMiddleware *auth.TokenMiddleware

	// Module handlers
	AuthHandlers        *authinfra.Handlers
	ContactHandlers     *contactinfra.Handlers
	GroupHandlers       *groupinfra.Handlers
	DispatchHandlers    *dispatchinfra.Handlers
	SuppressionHandlers *suppressioninfra.Handlers
	CopygenHandlers     *copygeninfra.Handlers
}

// NewContainer builds the container, connecting to every backing service.
func NewContainer(cfg *config.Config) *Container {
	c := &Container{Config: cfg}

	c.initInfrastructure()
	c.initModules()

	logx.Info("application container initialized")
	return c
}

// ---------------------------------------------------------------------------
// Infrastructure: DB, Redis, mail gateway, archive
// ---------------------------------------------------------------------------

func (c *Container) initInfrastructure() {
	db, err := sqlx.Connect("postgres", c.Config.Database.DSN())
	if err != nil {
		logx.Fatalf("failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(c.Config.Database.MaxOpenConns)
	db.SetMaxIdleConns(c.Config.Database.MaxIdleConns)
	db.SetConnMaxLifetime(c.Config.Database.ConnMaxLifetime)
	c.DB = db
	logx.Info("database connected")

	if err := migrations.Apply(db); err != nil {
		logx.Fatalf("failed to apply migrations: %v", err)
	}
	logx.Info("migrations applied")

	c.Redis = redis.NewClient(&redis.Options{
		Addr:     c.Config.Redis.Address(),
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	})
	if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
		logx.Fatalf("failed to connect to Redis: %v", err)
	}
	logx.Info("redis connected")

	c.initMailGateway()
	c.initArchive()
}

func (c *Container) initMailGateway() {
	switch c.Config.Mail.Provider {
	case "ses":
		awsCfg, err := awsConfig.LoadDefaultConfig(context.Background(),
			awsConfig.WithRegion(c.Config.Mail.AWSRegion))
		if err != nil {
			logx.Fatalf("unable to load AWS SDK config: %v", err)
		}
		c.Gateway = mailerses.NewSESGateway(ses.NewFromConfig(awsCfg), c.Config.Mail.FromAddress)
		logx.Infof("SES mail gateway configured (region: %s)", c.Config.Mail.AWSRegion)

	case "console":
		c.Gateway = mailerconsole.NewConsoleGateway()
		logx.Info("console mail gateway configured")

	default:
		logx.Fatalf("unknown MAIL_PROVIDER: %s (use 'ses' or 'console')", c.Config.Mail.Provider)
	}
}

func (c *Container) initArchive() {
	switch c.Config.Archive.Mode {
	case "off":
		logx.Info("message archive disabled")

	case "local":
		store, err := archivelocal.NewLocalStore(c.Config.Archive.LocalDir)
		if err != nil {
			logx.Fatalf("failed to initialize local archive: %v", err)
		}
		c.Archive = store
		logx.Infof("local message archive configured (path: %s)", c.Config.Archive.LocalDir)

	case "s3":
		awsCfg, err := awsConfig.LoadDefaultConfig(context.Background(),
			awsConfig.WithRegion(c.Config.Archive.AWSRegion))
		if err != nil {
			logx.Fatalf("unable to load AWS SDK config: %v", err)
		}
		c.Archive = archives3.NewS3Store(s3.NewFromConfig(awsCfg),
			c.Config.Archive.S3Bucket, c.Config.Archive.S3Prefix)
		logx.Infof("s3 message archive configured (bucket: %s)", c.Config.Archive.S3Bucket)

	default:
		logx.Fatalf("unknown ARCHIVE_MODE: %s (use 'off', 'local' or 's3')", c.Config.Archive.Mode)
	}
}

// ---------------------------------------------------------------------------
// Module composition
// ---------------------------------------------------------------------------

func (c *Container) initModules() {
	// Auth
	if c.Config.Auth.JWTSecret == "" {
		logx.Fatal("JWT_SECRET is required")
	}
	tokenService := auth.NewJWTService(c.Config.Auth.JWTSecret,
		c.Config.Auth.AccessTokenTTL, c.Config.Auth.Issuer)
	userRepo := authinfra.NewPostgresUserRepository(c.DB)
	authService := authsrv.NewService(userRepo, tokenService)
	c.AuthMiddleware = auth.NewAuthMiddleware(tokenService)
	c.AuthHandlers = authinfra.NewHandlers(authService)

	// Contacts and groups
	c.ContactRepo = contactinfra.NewPostgresContactRepository(c.DB)
	c.GroupRepo = groupinfra.NewPostgresGroupRepository(c.DB)
	contactService := contactsrv.NewService(c.ContactRepo, c.GroupRepo)
	groupService := groupsrv.NewService(c.GroupRepo, c.ContactRepo)
	c.ContactHandlers = contactinfra.NewHandlers(contactService)
	c.GroupHandlers = groupinfra.NewHandlers(groupService)

	// Suppression list
	c.Suppression = suppressionredis.NewRedisStore(c.Redis)
	c.SuppressionHandlers = suppressioninfra.NewHandlers(c.Suppression)

	// Dispatch pipeline
	resolver := dispatch.NewResolver(c.ContactRepo, c.GroupRepo)
	assembler := dispatch.NewAssembler(c.Config.Mail.FromAddress,
		c.Config.Mail.FromName, c.Config.Mail.UnsubscribeBase)
	logRepo := dispatchinfra.NewPostgresLogRepository(c.DB)

	var checker dispatch.SuppressionChecker
	if c.Config.Mail.SuppressionOn {
		checker = c.Suppression
	}
	var archiver dispatch.Archiver
	if c.Archive != nil {
		archiver = c.Archive
	}
	dispatchService := dispatch.NewService(resolver, assembler, c.Gateway, logRepo, checker, archiver)
	c.DispatchHandlers = dispatchinfra.NewHandlers(dispatchService)

	// AI copy generation
	c.CopygenHandlers = copygeninfra.NewHandlers(copygensrv.NewService(c.newCopyGenerator()))
}

func (c *Container) newCopyGenerator() copygen.Generator {
	switch c.Config.AI.Provider {
	case "anthropic":
		return copygenanthropic.NewAnthropicGenerator(c.Config.AI.AnthropicKey,
			c.Config.AI.AnthropicModel, c.Config.AI.MaxOutputTokens)
	case "openai":
		return copygenopenai.NewOpenAIGenerator(c.Config.AI.OpenAIKey,
			c.Config.AI.OpenAIModel, c.Config.AI.MaxOutputTokens)
	default:
		logx.Fatalf("unknown AI_PROVIDER: %s (use 'openai' or 'anthropic')", c.Config.AI.Provider)
		return nil
	}
}

// ---------------------------------------------------------------------------
// Lifecycle
// ---------------------------------------------------------------------------

// Cleanup closes every held connection.
func (c *Container) Cleanup() {
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logx.Errorf("error closing database: %v", err)
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Errorf("error closing Redis: %v", err)
		}
	}
}
