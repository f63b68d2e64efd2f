package cmd

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/deskbridge/deskbridge/internal/config"
	"github.com/deskbridge/deskbridge/internal/logging"
	"github.com/deskbridge/deskbridge/internal/signal"
	"github.com/deskbridge/deskbridge/internal/transport/ws"
	"github.com/deskbridge/deskbridge/internal/tui"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Host a channel endpoint and watch signal traffic",
	Long: `Monitor hosts the websocket channel endpoint a bridge client dials and
shows every signal crossing it in a live feed. Useful for developing
against the bridge without a real host shell.`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
}

func runMonitor(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// The TUI owns the terminal; keep log output away from it.
	logFile := cfg.Logging.File
	if logFile == "" {
		logger := logging.NopLogger()
		return serveMonitor(cfg, logger)
	}
	logger, err := logging.NewLogger(logFile, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	return serveMonitor(cfg, logger)
}

func serveMonitor(cfg *config.Config, logger *logging.Logger) error {
	program := tea.NewProgram(tui.NewModel(), tea.WithAltScreen())

	accept := func(p *ws.Peer) {
		remote := p.Remote()
		program.Send(tui.ClientConnectedMsg{Remote: remote})

		cancel := p.Subscribe(signal.Any, func(s signal.Signal) {
			program.Send(tui.SignalMsg{Name: s.Name, Args: s.Args, At: time.Now()})
		})

		go func() {
			<-p.Done()
			cancel()
			program.Send(tui.ClientGoneMsg{Remote: remote})
		}()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/v1/channel", ws.Handler(logger, accept))

	addr := net.JoinHostPort(cfg.Monitor.Bind, fmt.Sprintf("%d", cfg.Monitor.Port))
	srv := &http.Server{Addr: addr, Handler: r}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("monitor listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			program.Quit()
		}
	}()

	_, runErr := program.Run()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)

	select {
	case err := <-errCh:
		return fmt.Errorf("monitor server failed: %w", err)
	default:
	}
	return runErr
}
