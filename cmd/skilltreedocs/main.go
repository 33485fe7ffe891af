// Package main is the entry point for the skill tree documentation server.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/skilltreedocs/skilltreedocs/consts"
	"github.com/skilltreedocs/skilltreedocs/internal/api/router"
	"github.com/skilltreedocs/skilltreedocs/internal/check"
	"github.com/skilltreedocs/skilltreedocs/internal/config"
	"github.com/skilltreedocs/skilltreedocs/internal/database"
	"github.com/skilltreedocs/skilltreedocs/internal/loader"
	"github.com/skilltreedocs/skilltreedocs/internal/render"
	"github.com/skilltreedocs/skilltreedocs/internal/server"
	"github.com/skilltreedocs/skilltreedocs/internal/store"
	"github.com/skilltreedocs/skilltreedocs/pkg/errors"
	"github.com/skilltreedocs/skilltreedocs/pkg/idgen"
	"github.com/skilltreedocs/skilltreedocs/pkg/logger"
	"github.com/skilltreedocs/skilltreedocs/pkg/telemetry"
)

// Build information - set via ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func init() {
	consts.Version = Version
	consts.BuildTime = BuildTime
	consts.GitCommit = GitCommit
}

// configPath holds the path to the configuration file
var configPath string

var rootCmd = &cobra.Command{
	Use:   consts.ServiceName,
	Short: "Skill Tree Docs - documentation site for an interactive skill tree",
	Long: `Skill Tree Docs serves one Markdown page per skill and one interactive
diagram per package tab. Diagram shapes are bound to skills, coloured by
each visitor's progress, and carry a slider to update it.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load the content and start the server",
	Long: `Load every skill page and diagram, then start the HTTP server.

Any diagram that does not follow the expected label structure aborts startup.
On first run, use --check to create the configuration interactively:
  skilltreedocs serve --check`,
	Run: runServe,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration and content without serving",
	Long: `Load the configuration and every skill page and diagram, then print a
report of packages, tabs, skills and diagram labels without a skill page.
Exits non-zero when the content cannot be loaded.`,
	Run: runCheck,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s\n", consts.ProjectName, Version)
		fmt.Printf("  Build Time: %s\n", BuildTime)
		fmt.Printf("  Git Commit: %s\n", GitCommit)
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath, "configuration file path")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	serveCmd.Flags().String("host", "", "server host (overrides config)")
	serveCmd.Flags().Int("port", 0, "server port (overrides config)")
	serveCmd.Flags().Bool("debug", false, "enable debug mode")
	serveCmd.Flags().Bool("check", false, "run the interactive site check before starting the server")

	checkCmd.Flags().Bool("init", false, "offer to create the configuration file from the built-in example")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCheck(cmd *cobra.Command, args []string) {
	initQuietLogger()
	interactive, _ := cmd.Flags().GetBool("init")

	checker := check.NewChecker(configPath)
	if _, err := checker.Run(cmd.Context(), interactive); err != nil {
		fmt.Fprintf(os.Stderr, "\nSite check failed: %v\n", err)
		if errors.HasCode(err, errors.ErrCodeStructuralViolation) || errors.HasCode(err, errors.ErrCodeContentLoad) {
			os.Exit(errors.ExitCodeContentInvalid)
		}
		os.Exit(1)
	}
}

// initQuietLogger keeps loader logs out of the check report.
func initQuietLogger() {
	_ = logger.Init(logger.Config{Level: "warn", Format: "text"})
}

func runServe(cmd *cobra.Command, args []string) {
	if interactiveCheck, _ := cmd.Flags().GetBool("check"); interactiveCheck {
		initQuietLogger()
		if _, err := check.NewChecker(configPath).Run(cmd.Context(), true); err != nil {
			fmt.Fprintf(os.Stderr, "Site check failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("\n✓ Site check completed successfully")
	} else {
		result := check.RunNonInteractive(configPath)
		if !result.Success {
			check.PrintCheckResult(os.Stderr, result)
			os.Exit(1)
		}
		for _, warn := range result.Warnings {
			fmt.Fprintf(os.Stderr, "[WARNING] %s\n", warn)
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if host, _ := cmd.Flags().GetString("host"); host != "" {
		cfg.Server.Host = host
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Server.Port = port
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Server.Debug = true
		cfg.Logging.Level = "debug"
		cfg.Logging.Format = "text"
	}

	if cfg.Admin != nil && cfg.Admin.Enabled && strings.TrimSpace(cfg.Admin.JWTSecret) == "" {
		cfg.Admin.JWTSecret = idgen.NewSecureSecret(config.MinJWTSecretLength)
		fmt.Fprintf(os.Stderr, "[WARNING] admin.jwt_secret is empty; using a generated secret for this run only.\n")
		fmt.Fprintf(os.Stderr, "Admin tokens will not survive a restart. Set admin.jwt_secret to persist them.\n\n")
	}

	if validationErr := config.Validate(cfg); validationErr != nil {
		fmt.Fprintf(os.Stderr, "\n[ERROR] Configuration validation failed\n")
		fmt.Fprintf(os.Stderr, "Error Code: %s\n", validationErr.Code)
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", validationErr)

		switch validationErr.Code {
		case errors.ErrCodeJWTSecretInvalid:
			fmt.Fprintf(os.Stderr, "Please configure a longer JWT secret:\n")
			fmt.Fprintf(os.Stderr, "  admin:\n")
			fmt.Fprintf(os.Stderr, "    jwt_secret: \"%s\"\n\n", idgen.NewSecureSecret(config.MinJWTSecretLength))
		case errors.ErrCodeAdminCredentialsEmpty:
			fmt.Fprintf(os.Stderr, "Please configure the admin username and bcrypt password_hash.\n\n")
		default:
			fmt.Fprintf(os.Stderr, "Please check %s.\n\n", configPath)
		}
		os.Exit(errors.ExitCodeConfigValidation)
	}

	if err := logger.Init(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting "+consts.ProjectName, zap.String("version", Version))

	tel, err := telemetry.New(cfg.Telemetry)
	if err != nil {
		logger.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := tel.Shutdown(ctx); err != nil {
			logger.Error("Failed to shutdown telemetry", zap.Error(err))
		}
	}()

	reg, err := loader.New(loader.OptionsFromConfig(cfg.Content)).Load(cmd.Context())
	if err != nil {
		logger.Error("Failed to load content", zap.Error(err))
		logger.Sync()
		os.Exit(errors.ExitCodeContentInvalid)
	}

	engine, err := render.New()
	if err != nil {
		logger.Fatal("Failed to create template engine", zap.Error(err))
	}
	if err := engine.RegisterSite(reg); err != nil {
		logger.Error("Failed to compile templates", zap.Error(err))
		logger.Sync()
		os.Exit(errors.ExitCodeContentInvalid)
	}

	if err := database.InitWithPath(cfg.Database.Path); err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer database.Close()

	srv := server.New(router.Deps{
		Config:    cfg,
		Registry:  reg,
		Engine:    engine,
		Store:     store.NewStore(database.Get()),
		Telemetry: tel,
	})
	srv.SetupRoutes()

	if err := srv.Start(); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}

	logger.Info(consts.ProjectName+" is running", zap.String("address", cfg.Server.Address()))
	port := cfg.Server.Port
	logger.Info(fmt.Sprintf("  Local:   http://localhost:%d/", port))
	if lanIP := getLocalIP(); lanIP != "" {
		logger.Info(fmt.Sprintf("  Network: http://%s:%d/", lanIP, port))
	}

	srv.WaitForShutdown()
	logger.Info(consts.ProjectName + " stopped")
}

// getLocalIP returns the first non-loopback IPv4 address
func getLocalIP() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return ""
	}
	for _, addr := range addrs {
		if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ipnet.IP.To4() != nil {
				return ipnet.IP.String()
			}
		}
	}
	return ""
}
