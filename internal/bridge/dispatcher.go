package bridge

import (
	"github.com/deskbridge/deskbridge/internal/signal"
	"github.com/deskbridge/deskbridge/internal/store"
)

// registerTransportHandlers wires the host→client command table. Each
// signal name maps to exactly one handler; registration happens once, at
// Start. Handlers return after issuing a store action or navigation call
// and never block.
func (b *Bridge) registerTransportHandlers() []func() {
	b.log.Debug("registering transport handlers")

	return []func(){
		b.transport.Subscribe(signal.ShowMySites, b.onShowMySites),
		b.transport.Subscribe(signal.ShowReader, b.onShowReader),
		b.transport.Subscribe(signal.ShowProfile, b.onShowProfile),
		b.transport.Subscribe(signal.NewPost, b.onNewPost),
		b.transport.Subscribe(signal.Signout, b.onSignout),
		b.transport.Subscribe(signal.ToggleNotifications, b.onToggleNotifications),
		b.transport.Subscribe(signal.CloseNotifications, b.onCloseNotifications),
		b.transport.Subscribe(signal.ShowHelp, b.onShowHelp),
		b.transport.Subscribe(signal.Navigate, b.onNavigate),
		b.transport.Subscribe(signal.RequestSite, b.onRequestSite),
		b.transport.Subscribe(signal.EnableSiteOption, b.onEnableSiteOption),
	}
}

// registerLocalHandlers wires the client-internal signal surface: signals
// raised by out-of-scope subsystems that the bridge forwards to the host.
func (b *Bridge) registerLocalHandlers() []func() {
	b.log.Debug("registering local handlers")

	return []func(){
		b.local.Subscribe(signal.NotifyCannotUseEditor, b.onCannotUseEditor),
		b.local.Subscribe(signal.NotifyViewPostClicked, b.onViewPostClicked),
		b.local.Subscribe(signal.NotifyUnseenCountSet, b.onUnseenCountSet),
		b.local.Subscribe(signal.NotifySendToPrinter, b.onSendToPrinter),
	}
}

func (b *Bridge) onShowMySites(signal.Signal) {
	b.log.Debug("showing my sites")
	b.navigateTo(statsPath(b.SelectedSite()))
}

func (b *Bridge) onShowReader(signal.Signal) {
	b.log.Debug("showing reader")
	b.navigateTo(readerPath)
}

func (b *Bridge) onShowProfile(signal.Signal) {
	b.log.Debug("showing profile")
	b.navigateTo(profilePath)
}

func (b *Bridge) onNewPost(signal.Signal) {
	b.log.Debug("new post")
	b.navigateTo(newPostPath(b.SelectedSite()))
}

func (b *Bridge) onShowHelp(signal.Signal) {
	b.log.Debug("showing help")
	b.navigateTo(helpPath)
}

func (b *Bridge) onSignout(signal.Signal) {
	b.log.Debug("signout")
	b.session.Logout()
}

func (b *Bridge) onToggleNotifications(signal.Signal) {
	b.log.Debug("toggling notifications panel")
	b.store.Dispatch(store.ToggleNotificationsPanel{})
}

func (b *Bridge) onCloseNotifications(signal.Signal) {
	b.closeNotificationsPanel()
}

// onNavigate handles the navigate(url) command. An empty or missing url is
// a no-op, not an error.
func (b *Bridge) onNavigate(s signal.Signal) {
	url := argString(s.Args, 0)
	if url == "" {
		return
	}
	b.log.Debug("navigating", "url", url)
	b.navigateTo(url)
}

func (b *Bridge) onRequestSite(s signal.Signal) {
	siteID, ok := argInt64(s.Args, 0)
	if !ok {
		b.log.Warn("request-site without a site id")
		return
	}
	b.log.Debug("refreshing site data", "site_id", siteID)
	b.correlator.begin(b.siteRefreshOp(), siteID)
}

func (b *Bridge) onEnableSiteOption(s signal.Signal) {
	info, ok := argMap(s.Args, 0)
	if !ok {
		b.log.Warn("enable-site-option without an info payload")
		return
	}
	siteID, ok := coerceInt64(info["siteId"])
	if !ok {
		b.log.Warn("enable-site-option without a site id")
		return
	}
	option, _ := info["option"].(string)
	b.log.Debug("enabling site option", "site_id", siteID, "option", option)
	b.correlator.begin(b.activateOptionOp(option), siteID)
}

// siteRefreshOp is the "site refresh" correlator instantiation: reload a
// site's data into the store, answer once the load completes.
func (b *Bridge) siteRefreshOp() operation {
	return operation{
		name:           signal.RequestSite,
		responseSignal: signal.NotifyDidRequestSite,
		responseName:   signal.RequestSiteResponse,
		dispatch: func(key int64, requestID string) {
			b.store.Dispatch(store.RequestSiteData{SiteID: key, RequestID: requestID})
		},
	}
}

// activateOptionOp is the "capability activation" correlator instantiation.
func (b *Bridge) activateOptionOp(option string) operation {
	return operation{
		name:           signal.EnableSiteOption,
		responseSignal: signal.NotifyDidActivateOption,
		responseName:   signal.EnableSiteOptionResponse,
		dispatch: func(key int64, requestID string) {
			b.store.Dispatch(store.ActivateSiteOption{SiteID: key, Option: option, RequestID: requestID})
		},
	}
}

func (b *Bridge) onCannotUseEditor(s signal.Signal) {
	if len(s.Args) == 0 {
		b.log.Warn("cannot-use-editor signal without a payload")
		return
	}
	failure, ok := s.Args[0].(EditorLoadFailure)
	if !ok {
		if p, isPtr := s.Args[0].(*EditorLoadFailure); isPtr {
			failure = *p
		} else {
			b.log.Warn("cannot-use-editor signal with unexpected payload type")
			return
		}
	}

	b.log.Debug("editor failed to load", "site_id", failure.Site.ID, "reason", failure.Reason)
	b.emit.sendEditorUnavailable(EditorUnavailable{
		SiteID:               failure.Site.ID,
		Reason:               failure.Reason,
		EditorURL:            failure.EditorURL,
		WPAdminLoginURL:      failure.WPAdminLoginURL,
		Origin:               failure.Site.URL,
		CanUserManageOptions: b.sel.CanManageOptions(b.store.State(), failure.Site.ID),
	})
}

func (b *Bridge) onViewPostClicked(s signal.Signal) {
	url := argString(s.Args, 0)
	b.emit.sendViewPostClicked(url)
}

func (b *Bridge) onUnseenCountSet(s signal.Signal) {
	if len(s.Args) == 0 {
		return
	}
	count, ok := coerceInt(s.Args[0])
	if !ok {
		b.log.Warn("unseen-count signal with non-numeric payload")
		return
	}
	b.emit.sendUnseenCount(count)
}

func (b *Bridge) onSendToPrinter(s signal.Signal) {
	if len(s.Args) == 0 {
		return
	}
	if req, ok := s.Args[0].(PrintRequest); ok {
		b.emit.sendPrint(req.Title, req.Contents)
		return
	}
	// Also accept (title, contents) positional args.
	b.emit.sendPrint(argString(s.Args, 0), argString(s.Args, 1))
}
