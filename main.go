package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"bookforge/catalog"
	"bookforge/core"
	"bookforge/core/validation"
	"bookforge/locale"
	"bookforge/logging"
	"bookforge/metrics"
	"bookforge/shutdown"
	"bookforge/webui"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "service" {
		os.Exit(handleServiceCommand(os.Args[2:], os.Stdout, os.Stderr))
	}

	handled, err := runAsService()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(core.ExitCodeError)
	}
	if handled {
		return
	}

	os.Exit(runServer(nil, os.Stdout))
}

// runServer loads configuration, serves until a signal arrives or stop is
// closed, then shuts down. It returns the process exit code.
func runServer(stop <-chan struct{}, out io.Writer) int {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(out, "Warning: could not load .env: %v\n", err)
	}

	cfg, err := core.LoadConfig()
	if err != nil {
		fmt.Fprintf(out, "Configuration error: %v\n", err)
		return core.ExitCodeError
	}

	// Validate before creating the logger: the log directory is one of
	// the checks.
	result := validation.NewValidationSuite(cfg, locale.Default().Codes()).
		WithOutput(out).
		WithShowProgress(true).
		Validate()
	if !result.Success {
		fmt.Fprintln(out, result.Summary())
		return core.ExitCodeError
	}

	logger, err := logging.NewLogger(logging.Options{
		Development: cfg.DevMode,
		Level:       logging.ParseLogLevel(cfg.LogLevel, logging.InfoLevel),
		FilePath:    cfg.LogFile,
		Console:     out,
	})
	if err != nil {
		fmt.Fprintf(out, "Failed to initialize logger: %v\n", err)
		return core.ExitCodeError
	}
	defer logger.Sync()

	logger.Info("Configuration loaded",
		zap.String("addr", cfg.Addr()),
		zap.String("default_locale", cfg.DefaultLocale),
		zap.Int("page_size", cfg.PageSize),
		zap.Int("max_page_size", cfg.MaxPageSize),
		zap.Int("max_export_pages", cfg.MaxExportPages),
		zap.String("config_file", cfg.ConfigFile),
		zap.String("log_level", cfg.LogLevel),
		zap.Bool("dev_mode", cfg.DevMode),
		zap.String("validation", result.Summary()),
	)

	gen := catalog.NewGenerator(catalogLocales(cfg.DefaultLocale, logger.Zap()), logger.Named("catalog"))
	store := metrics.NewStore(metrics.StoreConfig{
		HistoryCapacity: 200,
		Version:         core.GetVersion(),
	}, time.Now())

	manager := shutdown.NewManager(logger.Named("shutdown"), shutdown.WithTimeout(cfg.ShutdownTimeout))

	srv, err := webui.NewServer(webui.ServerConfigFromCore(cfg), gen, store, manager, logger.Named("webui"))
	if err != nil {
		logger.Error("Failed to create web server", zap.Error(err))
		return core.ExitCodeError
	}

	manager.Register("http-server", shutdown.PriorityHTTPServer, shutdown.HTTPServer(srv.HTTPServer()))
	manager.Register("websocket-clients", shutdown.PriorityClients, shutdown.Closer(srv.Stream()))
	manager.Register("logger", shutdown.PriorityLogger, shutdown.SyncLogger(logger.Zap()))
	manager.Start()

	if stop != nil {
		go func() {
			select {
			case <-stop:
				logger.Info("Stop requested")
				manager.Trigger()
			case <-manager.Context().Done():
			}
		}()
	}

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Start() }()

	exitCode := core.ExitCodeSuccess
	select {
	case <-manager.Context().Done():
	case err := <-serveErr:
		if err != nil {
			logger.Error("Web server failed", zap.Error(err))
			exitCode = core.ExitCodeError
		}
		manager.Trigger()
	}

	if err := manager.Shutdown(); err != nil {
		exitCode = core.ExitCodeError
	}
	if exitCode == core.ExitCodeSuccess {
		exitCode = core.ExitCodeForSignal(manager.Signal())
	}
	logger.Info("Goodbye!", zap.String("exit", core.ExitCodeName(exitCode)))
	return exitCode
}

// catalogLocales returns the built-in registry with code as its fallback. An
// unknown code keeps the registry's own fallback and is logged.
func catalogLocales(code string, logger *zap.Logger) *locale.Registry {
	reg := locale.Default()
	withDefault, ok := reg.WithFallback(code)
	if !ok {
		logger.Warn("Default locale not supported, keeping built-in fallback",
			zap.String("requested", code),
			zap.String("fallback", reg.Fallback()),
			zap.Strings("supported", reg.Codes()),
		)
		return reg
	}
	return withDefault
}
