package cmd

import (
	"fmt"
	"os"
	ossignal "os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/deskbridge/deskbridge/internal/bridge"
	"github.com/deskbridge/deskbridge/internal/config"
	"github.com/deskbridge/deskbridge/internal/logging"
	"github.com/deskbridge/deskbridge/internal/signal"
	"github.com/deskbridge/deskbridge/internal/store"
	"github.com/deskbridge/deskbridge/internal/store/memory"
	"github.com/deskbridge/deskbridge/internal/transport/ws"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the bridge client",
	Long: `Run the bridge client: dial the host's channel endpoint and relay
commands and requests until interrupted.

The client ships with a reference in-memory store and a demo site
catalog, so a full round trip (request-site, enable-site-option) works
against the monitor without a real web application behind it.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// demoSession is the reference Session implementation: a static
// logged-in user. A production embedding would back this with the real
// auth layer.
type demoSession struct {
	loggedOut bool
}

func (s *demoSession) CurrentUser() (bridge.User, bool) {
	if s.loggedOut {
		return bridge.User{}, false
	}
	return bridge.User{ID: 1, Username: "wapuu", DisplayName: "Wapuu"}, true
}

func (s *demoSession) Token() string {
	if s.loggedOut {
		return ""
	}
	return "demo-oauth-token"
}

func (s *demoSession) Logout() { s.loggedOut = true }

var demoSites = []memory.Site{
	{ID: 1, Slug: "demo.wordpress.com", URL: "https://demo.wordpress.com"},
	{ID: 2, Slug: "second.wordpress.com", URL: "https://second.wordpress.com"},
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.NewLogger(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	ctx, stop := ossignal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	transport := ws.NewClient(cfg.Transport.URL, cfg.Transport.Origin, logger,
		ws.WithRedialWait(cfg.Transport.RedialWait()))
	go transport.Run(ctx)

	local := signal.NewBus()

	// The reference store completes site operations synchronously; the
	// completion signals it raises are what the bridge correlates.
	var st *memory.Store
	st = memory.New(
		memory.WithSites(demoSites...),
		memory.WithManageOptions(map[int64]bool{1: true}),
		memory.WithAfterDispatch(func(a store.Action) {
			completeDemoAction(st, local, a)
		}),
	)

	session := &demoSession{}

	navigate := func(path string) {
		logger.Info("navigating", "path", path)
		st.Dispatch(store.NavigateTo{Path: path})
	}

	opts := []bridge.Option{
		bridge.WithLogger(logger),
		bridge.WithResponseTimeout(cfg.Bridge.ResponseTimeout()),
	}
	if cfg.Bridge.RequestIDs {
		opts = append(opts, bridge.WithRequestIDs())
	}

	b := bridge.New(transport, local, st, memorySelectors(), navigate, session, opts...)
	if err := b.Start(); err != nil {
		return fmt.Errorf("failed to start bridge: %w", err)
	}
	defer b.Stop()

	logger.Info("bridge running", "url", cfg.Transport.URL)
	<-ctx.Done()
	logger.Info("shutting down")
	return nil
}

func memorySelectors() bridge.Selectors {
	return bridge.Selectors{
		NotificationsOpen: memory.NotificationsOpen,
		EditorLoaded:      memory.EditorLoaded,
		UnseenCount:       memory.UnseenCount,
		CanManageOptions:  memory.CanManageOptions,
	}
}

// completeDemoAction emulates the out-of-scope subsystems that answer site
// operations: a request either finds the site in the demo catalog or fails,
// and the completion signal lands on the local bus.
func completeDemoAction(st *memory.Store, local *signal.Bus, a store.Action) {
	switch a := a.(type) {
	case store.RequestSiteData:
		site, ok := st.State().(memory.AppState).Sites[a.SiteID]
		if !ok {
			st.Dispatch(store.SiteRequestFailed{SiteID: a.SiteID, Reason: "unknown site"})
			local.Send(signal.NotifyDidRequestSite, bridge.OperationResult{
				SiteID:    a.SiteID,
				Status:    bridge.StatusError,
				Err:       "unknown site",
				RequestID: a.RequestID,
			})
			return
		}
		st.Dispatch(store.SiteReceived{SiteID: site.ID, Slug: site.Slug, URL: site.URL})
		local.Send(signal.NotifyDidRequestSite, bridge.OperationResult{
			SiteID:    a.SiteID,
			Status:    bridge.StatusSuccess,
			RequestID: a.RequestID,
		})

	case store.ActivateSiteOption:
		st.Dispatch(store.SiteOptionActivated{SiteID: a.SiteID, Option: a.Option})
		local.Send(signal.NotifyDidActivateOption, bridge.OperationResult{
			SiteID:    a.SiteID,
			Status:    bridge.StatusSuccess,
			RequestID: a.RequestID,
		})
	}
}
