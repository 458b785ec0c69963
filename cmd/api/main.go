package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalog-api/internal/application/auth"
	"github.com/jhoicas/catalog-api/internal/application/usecase"
	"github.com/jhoicas/catalog-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/catalog-api/internal/interfaces/http"
	"github.com/jhoicas/catalog-api/pkg/config"
	"github.com/jhoicas/catalog-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString(), cfg.DB.MigrationsPath, log); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	variantRepo := postgres.NewVariantRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)

	passwordHash := cfg.Auth.AdminPasswordHash
	if passwordHash == "" && cfg.Auth.AdminPassword != "" {
		log.Warn().Msg("AUTH_ADMIN_PASSWORD en claro: usar AUTH_ADMIN_PASSWORD_HASH fuera de desarrollo")
		if passwordHash, err = auth.HashPassword(cfg.Auth.AdminPassword); err != nil {
			log.Fatal().Err(err).Msg("hash de contraseña")
		}
	}
	if passwordHash == "" {
		log.Warn().Msg("sin credenciales de administrador: el login queda deshabilitado")
	}

	productUC := usecase.NewProductUseCase(productRepo, variantRepo, auditRepo, postgres.NewTxRunner(pool), log)
	variantUC := usecase.NewVariantUseCase(productRepo, variantRepo)
	authUC := auth.NewAuthUseCase(cfg.Auth.AdminUser, passwordHash, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	httpRouter.Middleware(app, log, cfg.HTTP.CORSOrigins)

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC: productUC,
		VariantUC: variantUC,
		AuthUC:    authUC,
		JWTSecret: cfg.JWT.Secret,
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
