package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/prolist-cm/protect-api/internal/application/auth"
	"github.com/prolist-cm/protect-api/internal/application/billing"
	"github.com/prolist-cm/protect-api/internal/application/escrow"
	"github.com/prolist-cm/protect-api/internal/application/listing"
	"github.com/prolist-cm/protect-api/internal/application/notification"
	"github.com/prolist-cm/protect-api/internal/domain/repository"
	"github.com/prolist-cm/protect-api/internal/infrastructure/memory"
	infrapdf "github.com/prolist-cm/protect-api/internal/infrastructure/pdf"
	"github.com/prolist-cm/protect-api/internal/infrastructure/postgres"
	httpRouter "github.com/prolist-cm/protect-api/internal/interfaces/http"
	"github.com/prolist-cm/protect-api/pkg/config"
	"github.com/prolist-cm/protect-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Escrow.StorageBackend).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		txRepo    repository.TransactionRepository
		userRepo  repository.UserRepository
		postRepo  repository.PostRepository
		notifRepo repository.NotificationRepository
		runner    escrow.TxRunner
	)

	if cfg.Escrow.StorageBackend == "memory" {
		// Backend en memoria para desarrollo local: no sobrevive reinicios.
		store := memory.NewStore()
		txRepo = memory.NewTransactionRepository(store)
		userRepo = memory.NewUserRepository(store)
		postRepo = memory.NewPostRepository(store)
		notifRepo = memory.NewNotificationRepository(store)
		runner = memory.NewTxRunner(store)
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		txRepo = postgres.NewTransactionRepository(pool)
		userRepo = postgres.NewUserRepository(pool)
		postRepo = postgres.NewPostRepository(pool)
		notifRepo = postgres.NewNotificationRepository(pool)
		runner = postgres.NewTxRunner(pool)
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	listingUC := listing.NewListingUseCase(postRepo)
	escrowUC := escrow.NewEscrowUseCase(txRepo, userRepo, postRepo, runner, cfg.Escrow.PaymentBaseURL, log)
	notifUC := notification.NewNotificationUseCase(notifRepo)
	receiptUC := billing.NewReceiptUseCase(txRepo, infrapdf.NewMarotoReceiptGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ListingUC:      listingUC,
		EscrowUC:       escrowUC,
		NotificationUC: notifUC,
		ReceiptUC:      receiptUC,
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
