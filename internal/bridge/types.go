package bridge

import "github.com/deskbridge/deskbridge/internal/store"

// SiteRef identifies a site the client can act on.
type SiteRef struct {
	ID   int64
	Slug string
	URL  string
}

// User is the slice of the current user sent to the host at startup.
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// Session is the user-session collaborator.
type Session interface {
	// CurrentUser returns the logged-in user, or false when logged out.
	CurrentUser() (User, bool)

	// Token returns the OAuth token for the current session. Empty when
	// logged out.
	Token() string

	// Logout terminates the user session.
	Logout()
}

// Selectors are the pure state readers the bridge consults. All fields are
// required.
type Selectors struct {
	// NotificationsOpen reports whether the notifications panel is open.
	NotificationsOpen func(store.State) bool

	// EditorLoaded reports whether the embedded editor frame is ready.
	EditorLoaded func(store.State) bool

	// UnseenCount returns the current unseen-notification count.
	UnseenCount func(store.State) int

	// CanManageOptions reports whether the current user may manage options
	// for the given site.
	CanManageOptions func(store.State, int64) bool
}

// NavigateFunc changes the visible view. The bridge closes the
// notifications panel before every call.
type NavigateFunc func(path string)

// OnlineFunc reports network reachability. Unseen-count pushes are
// suppressed while offline.
type OnlineFunc func() bool

// CachedCountFunc returns the cached unseen-notification count used for the
// boot push, or false when no cached value is available.
type CachedCountFunc func() (int, bool)

// Operation statuses carried in completion signals and responses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// OperationResult is the payload of the internal completion signals
// ("site refresh completed", "capability activation completed") raised by
// the subsystems that actually perform the work.
type OperationResult struct {
	SiteID int64
	Status string
	Err    string

	// RequestID echoes the id carried by the originating action. Only
	// meaningful when the bridge runs with generated request ids.
	RequestID string
}

// EditorLoadFailure is the payload of the internal "editor cannot load"
// signal.
type EditorLoadFailure struct {
	Site            SiteRef
	Reason          string
	EditorURL       string
	WPAdminLoginURL string
}

// EditorUnavailable is the cannot-use-editor payload sent to the host.
type EditorUnavailable struct {
	SiteID               int64  `json:"siteId"`
	Reason               string `json:"reason"`
	EditorURL            string `json:"editorUrl"`
	WPAdminLoginURL      string `json:"wpAdminLoginUrl"`
	Origin               string `json:"origin"`
	CanUserManageOptions bool   `json:"canUserManageOptions"`
}

// PrintRequest is the payload of the internal "send to printer" signal.
type PrintRequest struct {
	Title    string
	Contents string
}

// Response is the correlator's answer to the host for a correlated
// request.
type Response struct {
	SiteID int64  `json:"siteId"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}
