package main

import (
	"context"
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

	"github.com/gestox/gestox/internal/config"
	"github.com/gestox/gestox/internal/domain/appointments"
	authdomain "github.com/gestox/gestox/internal/domain/auth"
	"github.com/gestox/gestox/internal/domain/doctors"
	"github.com/gestox/gestox/internal/domain/leads"
	"github.com/gestox/gestox/internal/domain/orders"
	"github.com/gestox/gestox/internal/domain/patients"
	"github.com/gestox/gestox/internal/domain/products"
	"github.com/gestox/gestox/internal/domain/properties"
	"github.com/gestox/gestox/internal/domain/reports"
	"github.com/gestox/gestox/internal/domain/stockmovements"
	"github.com/gestox/gestox/internal/domain/suppliers"
	"github.com/gestox/gestox/internal/domain/verticals"
	"github.com/gestox/gestox/internal/platform/apiclient"
	"github.com/gestox/gestox/internal/platform/middleware"
	"github.com/gestox/gestox/internal/platform/servercall"
	"github.com/gestox/gestox/internal/platform/tenant"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gestox-server",
		Short: "Multi-tenant business management gateway",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(healthCmd())
	rootCmd.AddCommand(tenantCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the gateway server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Probe the backend API connection",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			client := apiclient.NewClient(apiclient.Settings{
				BaseURL:         cfg.APIBaseURL,
				DefaultClientID: cfg.DefaultClientID,
				Timeout:         time.Duration(cfg.FastTimeoutSecs) * time.Second,
				Store:           tenant.NewMemoryStore(),
				Logger:          zerolog.Nop(),
			}, apiclient.PresetFastFail)

			if err := client.CheckConnection(cmd.Context()); err != nil {
				return fmt.Errorf("backend unreachable at %s: %w", cfg.APIBaseURL, err)
			}
			fmt.Printf("backend ok: %s\n", cfg.APIBaseURL)
			return nil
		},
	}
}

func tenantCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tenant",
		Short: "Manage the persisted tenant credentials",
	}

	setCmd := &cobra.Command{
		Use:   "set <client-id> <token> [refresh-token]",
		Short: "Persist tenant credentials",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := credentialStore()
			if err != nil {
				return err
			}
			cfg := tenant.Config{ClientID: args[0], Token: args[1]}
			if len(args) == 3 {
				cfg.RefreshToken = args[2]
			}
			store.Set(cfg)
			fmt.Printf("tenant set: %s\n", cfg.ClientID)
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the persisted tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := credentialStore()
			if err != nil {
				return err
			}
			cfg := store.Current()
			if cfg == nil {
				fmt.Println("no tenant configured")
				return nil
			}
			fmt.Printf("client id: %s\n", cfg.ClientID)
			fmt.Printf("vertical:  %s\n", verticals.Detect(cfg.ClientID).Nome)
			fmt.Printf("token:     %s\n", maskToken(cfg.Token))
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove the persisted tenant credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := credentialStore()
			if err != nil {
				return err
			}
			store.Clear()
			fmt.Println("tenant cleared")
			return nil
		},
	}

	cmd.AddCommand(setCmd, showCmd, clearCmd)
	return cmd
}

func credentialStore() (tenant.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.CredentialsFile == "" {
		return nil, fmt.Errorf("CREDENTIALS_FILE is not set")
	}
	return tenant.NewFileStore(cfg.CredentialsFile), nil
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "********"
	}
	return token[:4] + "..." + token[len(token)-4:]
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
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Tenant store: file-backed when configured so sessions survive restarts
	var store tenant.Store = tenant.NewMemoryStore()
	if cfg.CredentialsFile != "" {
		store = tenant.NewFileStore(cfg.CredentialsFile)
	}

	// Backend clients: one session client that refreshes and caches, one
	// fast-fail client for login and health probes
	sessionClient := apiclient.NewClient(apiclient.Settings{
		BaseURL:         cfg.APIBaseURL,
		DefaultClientID: cfg.DefaultClientID,
		Timeout:         time.Duration(cfg.APITimeoutSecs) * time.Second,
		CacheTTL:        time.Duration(cfg.CacheTTLSecs) * time.Second,
		Store:           store,
		Logger:          logger,
	}, apiclient.PresetWithRetry)

	fastClient := apiclient.NewClient(apiclient.Settings{
		BaseURL:         cfg.APIBaseURL,
		DefaultClientID: cfg.DefaultClientID,
		Timeout:         time.Duration(cfg.FastTimeoutSecs) * time.Second,
		Store:           store,
		Logger:          logger,
	}, apiclient.PresetFastFail)

	serverCtx, stopCleanup := context.WithCancel(context.Background())
	defer stopCleanup()
	if cfg.CacheTTLSecs > 0 {
		sessionClient.Cache().StartCleanup(serverCtx, time.Duration(cfg.CacheTTLSecs)*time.Second)
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-ID", apiclient.ClientIDHeader},
		AllowCredentials: true,
	}))
	e.Use(middleware.Tenant(cfg.DefaultClientID))

	// API group
	apiV1 := e.Group("/api/v1")

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))
	apiV1.Use(middleware.RequestTimeout(time.Duration(cfg.APITimeoutSecs+5) * time.Second))

	// Domain handlers
	appointments.NewHandler(appointments.NewService(sessionClient, logger), cfg.LoginURL).RegisterRoutes(apiV1)
	patients.NewHandler(patients.NewService(sessionClient, logger), cfg.LoginURL).RegisterRoutes(apiV1)
	doctors.NewHandler(doctors.NewService(sessionClient, logger), cfg.LoginURL).RegisterRoutes(apiV1)
	properties.NewHandler(properties.NewService(sessionClient, logger), cfg.LoginURL).RegisterRoutes(apiV1)
	leads.NewHandler(leads.NewService(sessionClient, logger), cfg.LoginURL).RegisterRoutes(apiV1)
	products.NewHandler(products.NewService(sessionClient, logger), cfg.LoginURL).RegisterRoutes(apiV1)
	orders.NewHandler(orders.NewService(sessionClient, logger), cfg.LoginURL).RegisterRoutes(apiV1)
	suppliers.NewHandler(suppliers.NewService(sessionClient, logger), cfg.LoginURL).RegisterRoutes(apiV1)
	stockmovements.NewHandler(stockmovements.NewService(sessionClient, logger), cfg.LoginURL).RegisterRoutes(apiV1)
	verticals.NewHandler(cfg.DefaultClientID).RegisterRoutes(apiV1)

	fetcher := servercall.New(sessionClient, cfg.DefaultClientID)
	reports.NewHandler(reports.NewService(fetcher, logger), cfg.DefaultClientID).RegisterRoutes(apiV1)

	authdomain.NewHandler(authdomain.NewService(fastClient, logger), cfg.LoginURL).RegisterRoutes(apiV1)

	// Gateway health: reports both our liveness and the backend link
	e.GET("/health", func(c echo.Context) error {
		status := map[string]interface{}{"status": "ok"}
		if err := fastClient.CheckConnection(c.Request().Context()); err != nil {
			status["backend"] = "down"
			return c.JSON(http.StatusServiceUnavailable, status)
		}
		status["backend"] = "ok"
		return c.JSON(http.StatusOK, status)
	})

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("api", cfg.APIBaseURL).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
