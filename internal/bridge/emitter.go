package bridge

import (
	"github.com/deskbridge/deskbridge/internal/logging"
	"github.com/deskbridge/deskbridge/internal/signal"
)

// emitter formats and sends the client→host commands. It is stateless:
// every method is a transport send with at most a reachability guard.
type emitter struct {
	transport signal.Sender
	session   Session
	online    OnlineFunc
	cached    CachedCountFunc
	log       *logging.Logger
}

func newEmitter(transport signal.Sender, session Session, cfg *config) *emitter {
	return &emitter{
		transport: transport,
		session:   session,
		online:    cfg.online,
		cached:    cfg.cachedCount,
		log:       cfg.logger.WithComponent("emitter"),
	}
}

// sendLoginStatus pushes the login state and the auth pair. Sent once at
// bridge startup; the host uses them to set initial app state.
func (e *emitter) sendLoginStatus() {
	user, loggedIn := e.session.CurrentUser()
	e.log.Debug("sending login status", "logged_in", loggedIn)

	e.transport.Send(signal.UserLoginStatus, loggedIn)
	if loggedIn {
		e.transport.Send(signal.UserAuth, user, e.session.Token())
		return
	}
	e.transport.Send(signal.UserAuth, nil, "")
}

// sendBootUnseenCount pushes the cached unseen count once at startup.
// No-op when offline or when no cached value exists.
func (e *emitter) sendBootUnseenCount() {
	if !e.online() {
		e.log.Debug("offline, skipping boot unseen-count push")
		return
	}
	count, ok := e.cached()
	if !ok {
		return
	}
	e.log.Debug("sending boot unseen count", "count", count)
	e.transport.Send(signal.UnreadNoticesCount, count)
}

// sendUnseenCount pushes an updated unseen count. Suppressed while offline;
// the suppression is a rate/cost decision, not an error.
func (e *emitter) sendUnseenCount(count int) {
	if !e.online() {
		e.log.Debug("offline, suppressing unseen-count push", "count", count)
		return
	}
	e.log.Debug("sending unseen count", "count", count)
	e.transport.Send(signal.UnreadNoticesCount, count)
}

// sendEditorLoadedStatus reports an editor-ready transition.
func (e *emitter) sendEditorLoadedStatus(loaded bool) {
	e.log.Debug("sending editor loaded status", "loaded", loaded)
	e.transport.Send(signal.EditorLoaded, loaded)
}

// sendEditorUnavailable reports that the editor cannot load for a site.
func (e *emitter) sendEditorUnavailable(p EditorUnavailable) {
	e.log.Debug("sending cannot-use-editor", "site_id", p.SiteID, "reason", p.Reason)
	e.transport.Send(signal.CannotUseEditor, p)
}

// sendViewPostClicked forwards a "View Post" click to the host.
func (e *emitter) sendViewPostClicked(url string) {
	e.log.Debug("sending view-post-clicked", "url", url)
	e.transport.Send(signal.ViewPostClicked, url)
}

// sendPrint forwards a print job to the host's printer facilities.
func (e *emitter) sendPrint(title, html string) {
	e.log.Debug("sending print job", "title", title)
	e.transport.Send(signal.Print, title, html)
}

// sendResponse answers a correlated host request.
func (e *emitter) sendResponse(name string, resp Response) {
	e.log.Debug("sending response", "signal", name, "site_id", resp.SiteID, "status", resp.Status, "error", resp.Error)
	e.transport.Send(name, resp)
}
