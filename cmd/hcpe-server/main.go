package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hcpe/hcpe/internal/config"
	"github.com/hcpe/hcpe/internal/domain/campaign"
	"github.com/hcpe/hcpe/internal/domain/engagement"
	"github.com/hcpe/hcpe/internal/domain/hcp"
	"github.com/hcpe/hcpe/internal/domain/prescribing"
	"github.com/hcpe/hcpe/internal/domain/saturation"
	"github.com/hcpe/hcpe/internal/domain/territory"
	"github.com/hcpe/hcpe/internal/platform/auth"
	"github.com/hcpe/hcpe/internal/platform/db"
	"github.com/hcpe/hcpe/internal/platform/middleware"
	"github.com/hcpe/hcpe/internal/synth"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hcpe-server",
		Short: "HCP Engagement Analytics API Server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(generateCmd())

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

	// migrate up
	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
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

	// migrate status
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
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
				applied := "-"
				if s.AppliedAt != nil {
					applied = s.AppliedAt.Format(time.RFC3339)
				}
				state := "pending"
				if s.Applied {
					state = "applied"
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, state, applied)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic data set",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			opts := synth.Options{
				Seed:     cfg.GenSeed,
				HCPCount: cfg.GenHCPCount,
				Months:   cfg.GenMonths,
			}
			if cmd.Flags().Changed("seed") {
				opts.Seed, _ = cmd.Flags().GetInt64("seed")
			}
			if cmd.Flags().Changed("hcps") {
				opts.HCPCount, _ = cmd.Flags().GetInt("hcps")
			}
			if cmd.Flags().Changed("months") {
				opts.Months, _ = cmd.Flags().GetInt("months")
			}
			opts.Additive, _ = cmd.Flags().GetBool("additive")
			validateOnly, _ := cmd.Flags().GetBool("validate-only")
			skipValidate, _ := cmd.Flags().GetBool("skip-validate")

			logger := newLogger()

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer pool.Close()

			stores := newStores(pool)

			if !validateOnly {
				pipeline := synth.NewPipeline(stores, logger)
				summary, err := runPipelineTx(ctx, pool, pipeline, opts)
				if err != nil {
					return fmt.Errorf("generation failed: %w", err)
				}
				out, _ := json.MarshalIndent(summary, "", "  ")
				fmt.Println(string(out))
			}

			if skipValidate {
				return nil
			}

			validator := synth.NewValidator(stores, logger)
			report, err := validator.Run(ctx)
			if err != nil {
				return fmt.Errorf("validation failed to run: %w", err)
			}
			for _, check := range report.Checks {
				status := "PASS"
				if !check.Passed {
					status = "FAIL"
				}
				fmt.Printf("%-4s %s", status, check.Name)
				if check.Detail != "" {
					fmt.Printf(" (%s)", check.Detail)
				}
				fmt.Println()
			}
			if !report.Passed() {
				return fmt.Errorf("data set failed validation")
			}
			return nil
		},
	}

	cmd.Flags().Int64("seed", 42, "Base seed for the run (default from GEN_SEED)")
	cmd.Flags().Int("hcps", 2000, "Number of HCP profiles to generate (default from GEN_HCP_COUNT)")
	cmd.Flags().Int("months", 12, "Months of history to generate (default from GEN_MONTHS)")
	cmd.Flags().Bool("additive", false, "Keep existing HCP profiles and regenerate activity only")
	cmd.Flags().Bool("validate-only", false, "Skip generation and validate the existing data set")
	cmd.Flags().Bool("skip-validate", false, "Skip post-generation validation checks")

	return cmd
}

func newLogger() zerolog.Logger {
	if os.Getenv("ENV") == "development" || os.Getenv("ENV") == "" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// runPipelineTx executes a full generation run inside one transaction so a
// failed stage leaves the previous data set untouched.
func runPipelineTx(ctx context.Context, pool *pgxpool.Pool, pipeline *synth.Pipeline, opts synth.Options) (*synth.Summary, error) {
	txCtx, tx, err := db.WithTx(ctx, pool)
	if err != nil {
		return nil, fmt.Errorf("begin generation transaction: %w", err)
	}
	summary, err := pipeline.Run(txCtx, opts)
	if err != nil {
		_ = tx.Rollback(ctx)
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit generation run: %w", err)
	}
	return summary, nil
}

func newStores(pool *pgxpool.Pool) synth.Stores {
	return synth.Stores{
		HCPs:        hcp.NewRepo(pool),
		Territories: territory.NewRepo(pool),
		Campaigns:   campaign.NewRepo(pool),
		Engagements: engagement.NewRepo(pool),
		Prescribing: prescribing.NewRepo(pool),
		Saturation:  saturation.NewRepo(pool),
	}
}

// generateRequest is the body of POST /api/v1/generate. Zero-valued fields
// fall back to the server's configured defaults.
type generateRequest struct {
	Seed     *int64 `json:"seed"`
	HCPCount int    `json:"hcp_count"`
	Months   int    `json:"months"`
	Additive bool   `json:"additive"`
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RequestTimeout(time.Duration(cfg.RequestTimeoutS)*time.Second, "/api/v1/generate"))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Auth middleware
	if cfg.IsDev() {
		e.Use(auth.DevAuthMiddleware())
	} else {
		e.Use(auth.JWTMiddleware(auth.JWTConfig{
			Issuer:     cfg.AuthIssuer,
			Audience:   cfg.AuthAudience,
			SigningKey: []byte(cfg.AuthSecret),
		}))
	}

	// API group
	apiV1 := e.Group("/api/v1")

	// Rate limiting middleware
	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))

	// Health checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	// Domain wiring: repo -> service -> handler
	hcpRepo := hcp.NewRepo(pool)
	hcpSvc := hcp.NewService(hcpRepo)
	hcp.NewHandler(hcpSvc).RegisterRoutes(apiV1)

	territoryRepo := territory.NewRepo(pool)
	territorySvc := territory.NewService(territoryRepo)
	territory.NewHandler(territorySvc).RegisterRoutes(apiV1)

	campaignRepo := campaign.NewRepo(pool)
	campaignSvc := campaign.NewService(campaignRepo)
	campaign.NewHandler(campaignSvc).RegisterRoutes(apiV1)

	engagementRepo := engagement.NewRepo(pool)
	engagementSvc := engagement.NewService(engagementRepo)
	engagement.NewHandler(engagementSvc).RegisterRoutes(apiV1)

	prescribingRepo := prescribing.NewRepo(pool)
	prescribingSvc := prescribing.NewService(prescribingRepo)
	prescribing.NewHandler(prescribingSvc).RegisterRoutes(apiV1)

	saturationRepo := saturation.NewRepo(pool)
	saturationSvc := saturation.NewService(saturationRepo)
	saturation.NewHandler(saturationSvc).RegisterRoutes(apiV1)

	// Generation trigger. Runs synchronously: a second run while one is
	// active would corrupt the wipe-then-insert sequence anyway. The path is
	// exempt from the request timeout middleware.
	stores := synth.Stores{
		HCPs:        hcpRepo,
		Territories: territoryRepo,
		Campaigns:   campaignRepo,
		Engagements: engagementRepo,
		Prescribing: prescribingRepo,
		Saturation:  saturationRepo,
	}
	pipeline := synth.NewPipeline(stores, logger)
	apiV1.POST("/generate", func(c echo.Context) error {
		var req generateRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}

		opts := synth.Options{
			Seed:     cfg.GenSeed,
			HCPCount: cfg.GenHCPCount,
			Months:   cfg.GenMonths,
			Additive: req.Additive,
		}
		if req.Seed != nil {
			opts.Seed = *req.Seed
		}
		if req.HCPCount > 0 {
			opts.HCPCount = req.HCPCount
		}
		if req.Months > 0 {
			opts.Months = req.Months
		}

		// Generation runs well past the standard request deadline, so derive
		// a fresh context instead of inheriting the middleware timeout.
		runCtx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		summary, err := runPipelineTx(runCtx, pool, pipeline, opts)
		if err != nil {
			logger.Error().Err(err).Msg("generation run failed")
			return echo.NewHTTPError(http.StatusInternalServerError, "generation failed")
		}
		return c.JSON(http.StatusOK, summary)
	})

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
