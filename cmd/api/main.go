package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/workforce-analytics-api/docs"
	"github.com/jhoicas/workforce-analytics-api/internal/application/auth"
	"github.com/jhoicas/workforce-analytics-api/internal/application/tenant"
	"github.com/jhoicas/workforce-analytics-api/internal/application/usecase"
	"github.com/jhoicas/workforce-analytics-api/internal/infrastructure/email"
	"github.com/jhoicas/workforce-analytics-api/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/workforce-analytics-api/internal/infrastructure/pdf"
	"github.com/jhoicas/workforce-analytics-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/workforce-analytics-api/internal/interfaces/http"
	"github.com/jhoicas/workforce-analytics-api/pkg/config"
	"github.com/jhoicas/workforce-analytics-api/pkg/logger"
)

// @title                       Workforce Analytics API
// @version                     1.0
// @description                 Multi-tenant HR analytics: companies, sub-companies, users, workforce datasets and YTD reports.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	if cfg.DB.AutoMigrate {
		migrator, err := postgres.NewMigrator(cfg.DB.MigrationsPath, cfg.DB.ConnectionString(), log)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		version, err := migrator.Up()
		_ = migrator.Close()
		if err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		log.Info().Uint("version", version).Msg("esquema actualizado")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	subscriptionRepo := postgres.NewSubscriptionRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	assignmentRepo := postgres.NewAssignmentRepository(pool)
	revokedRepo := postgres.NewRevokedTokenRepository(pool)
	snapshotRepo := postgres.NewSnapshotRepository(pool)
	headcountRepo := postgres.NewHeadcountRepository(pool)
	nhtRepo := postgres.NewNHTRepository(pool)
	termsRepo := postgres.NewTermsRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	notifier := email.NewNotifier(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		FromName: cfg.SMTP.FromName,
	})
	importer := excel.NewImporter()

	resolver := tenant.NewResolver(companyRepo, assignmentRepo)
	guard := tenant.NewGuard(userRepo)

	authUC := auth.NewAuthUseCase(userRepo, revokedRepo, notifier, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.App.SigninURL)
	companyUC := usecase.NewCompanyUseCase(
		companyRepo, subscriptionRepo, userRepo, assignmentRepo,
		txRunner, resolver, guard, notifier, cfg.App.SigninURL,
	)
	subscriptionUC := usecase.NewSubscriptionService(subscriptionRepo)
	userUC := usecase.NewUserUseCase(
		companyRepo, userRepo, assignmentRepo,
		resolver, guard, importer, notifier, cfg.App.SigninURL,
	)
	workforceUC := usecase.NewWorkforceUseCase(headcountRepo, nhtRepo, termsRepo, employeeRepo, txRunner, importer)
	snapshotUC := usecase.NewSnapshotUseCase(snapshotRepo, infrapdf.NewYTDRenderer(cfg.App.Name), usecase.SnapshotOptions{
		RejectDuplicateFinal:  cfg.Analytics.SnapshotPolicy == config.SnapshotPolicyRejectDuplicate,
		AssumeEvenGenderSplit: cfg.Analytics.AssumeEvenGenderSplit,
	})

	loginLimiter, err := httpRouter.NewLoginLimiter(cfg.RateLimit.Login)
	if err != nil {
		log.Fatal().Err(err).Str("rate", cfg.RateLimit.Login).Msg("RATE_LIMIT_LOGIN inválido")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    20 * 1024 * 1024, // planillas de carga
	})
	app.Use(recover.New())
	app.Use(httpRouter.MetricsMiddleware())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Workforce Analytics API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", httpRouter.MetricsHandler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		CompanyUC:      companyUC,
		SubscriptionUC: subscriptionUC,
		UserUC:         userUC,
		WorkforceUC:    workforceUC,
		SnapshotUC:     snapshotUC,
		LoginLimiter:   loginLimiter,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
