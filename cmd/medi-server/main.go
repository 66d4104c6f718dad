package main

import (
	"context"
	crypto_rand "crypto/rand"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Ftk-keit/medi-application/internal/config"
	"github.com/Ftk-keit/medi-application/internal/domain/billing"
	"github.com/Ftk-keit/medi-application/internal/domain/department"
	"github.com/Ftk-keit/medi-application/internal/domain/patient"
	"github.com/Ftk-keit/medi-application/internal/domain/reporting"
	"github.com/Ftk-keit/medi-application/internal/domain/staff"
	"github.com/Ftk-keit/medi-application/internal/platform/auth"
	"github.com/Ftk-keit/medi-application/internal/platform/db"
	"github.com/Ftk-keit/medi-application/internal/platform/demo"
	"github.com/Ftk-keit/medi-application/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "medi-server",
		Short: "Hospital patient workflow API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Store != config.StorePostgres {
				return fmt.Errorf("migrations require STORE=%s", config.StorePostgres)
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Store != config.StorePostgres {
				return fmt.Errorf("migrations require STORE=%s", config.StorePostgres)
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demonstration data set into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Store != config.StorePostgres {
				return fmt.Errorf("seed requires STORE=%s; the memory store seeds itself at startup", config.StorePostgres)
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := demo.Seed(ctx, patient.NewPGRepo(pool), billing.NewPGRepo(pool), time.Now()); err != nil {
				return err
			}
			fmt.Println("Demo data loaded.")
			return nil
		},
	}
}

// signingKey returns the configured key, or an ephemeral random one for
// development when none is set.
func signingKey(cfg *config.Config, logger zerolog.Logger) ([]byte, error) {
	if cfg.AuthSigningKey != "" {
		return []byte(cfg.AuthSigningKey), nil
	}
	key := make([]byte, 32)
	if _, err := crypto_rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate signing key: %w", err)
	}
	logger.Warn().Msg("AUTH_SIGNING_KEY not set; tokens will not survive a restart")
	return key, nil
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" || os.Getenv("ENV") == "" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	key, err := signingKey(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare signing key")
	}
	jwtCfg := auth.JWTConfig{
		SigningKey: key,
		TokenTTL:   time.Duration(cfg.TokenTTLMinutes) * time.Minute,
	}

	// Store
	ctx := context.Background()
	var (
		patientRepo patient.Repository
		paymentRepo billing.Repository
		txRunner    func(ctx context.Context, fn func(ctx context.Context) error) error
	)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	switch cfg.Store {
	case config.StorePostgres:
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		logger.Info().Msg("connected to database")

		patientRepo = patient.NewPGRepo(pool)
		paymentRepo = billing.NewPGRepo(pool)
		txRunner = func(ctx context.Context, fn func(ctx context.Context) error) error {
			return db.WithTx(ctx, pool, fn)
		}
		e.GET("/health", db.HealthHandler(pool))
	default:
		patientRepo = patient.NewMemRepo()
		paymentRepo = billing.NewMemRepo()
		if cfg.SeedDemoData {
			if err := demo.Seed(ctx, patientRepo, paymentRepo, time.Now()); err != nil {
				logger.Fatal().Err(err).Msg("failed to seed demo data")
			}
			logger.Info().Msg("memory store seeded with demo data")
		}
		e.GET("/health", func(c echo.Context) error {
			return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
		})
	}

	// Services
	paymentSvc := billing.NewService(paymentRepo)
	patientSvc := patient.NewService(patientRepo, paymentSvc)
	if txRunner != nil {
		patientSvc.SetTxRunner(txRunner)
	}
	statsSvc := reporting.NewService(patientRepo, paymentRepo)

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	staffHandler := staff.NewHandler(jwtCfg)

	// Login stays outside the authenticated group.
	public := e.Group("/api/v1")
	staffHandler.RegisterPublicRoutes(public)

	var authMW echo.MiddlewareFunc
	if cfg.IsDev() && cfg.AuthSigningKey == "" {
		authMW = auth.DevAuthMiddleware()
	} else {
		authMW = auth.JWTMiddleware(jwtCfg)
	}
	api := e.Group("/api/v1", authMW)

	staffHandler.RegisterRoutes(api)
	department.NewHandler().Register(api)
	patient.NewHandler(patientSvc).RegisterRoutes(api)
	billing.NewHandler(paymentSvc).RegisterRoutes(api)
	reporting.NewHandler(statsSvc).RegisterRoutes(api)

	// Start server
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("store", cfg.Store).Msg("server starting")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
