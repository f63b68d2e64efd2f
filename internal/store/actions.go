package store

// Action type names.
const (
	TypeToggleNotificationsPanel = "notifications/toggle-panel"
	TypeNavigate                 = "route/navigate"
	TypeRequestSite              = "sites/request"
	TypeSiteReceived             = "sites/received"
	TypeSiteRequestFailed        = "sites/request-failed"
	TypeActivateSiteOption       = "sites/activate-option"
	TypeSiteOptionActivated      = "sites/option-activated"
	TypeSiteOptionFailed         = "sites/option-failed"
	TypeSetEditorLoaded          = "editor/set-loaded"
	TypeSetUnseenCount           = "notifications/set-unseen-count"
)

// ToggleNotificationsPanel opens the notifications panel if closed and
// closes it if open.
type ToggleNotificationsPanel struct{}

func (ToggleNotificationsPanel) ActionType() string { return TypeToggleNotificationsPanel }

// NavigateTo changes the visible view to the given path.
type NavigateTo struct {
	Path string
}

func (NavigateTo) ActionType() string { return TypeNavigate }

// RequestSiteData asks the sites layer to (re)load a site's data. The
// requesting flag for the site is raised until a completion action lands.
// RequestID is empty unless the bridge runs with generated request ids.
type RequestSiteData struct {
	SiteID    int64
	RequestID string
}

func (RequestSiteData) ActionType() string { return TypeRequestSite }

// SiteReceived records freshly loaded site data.
type SiteReceived struct {
	SiteID int64
	Slug   string
	URL    string
}

func (SiteReceived) ActionType() string { return TypeSiteReceived }

// SiteRequestFailed records a failed site data load.
type SiteRequestFailed struct {
	SiteID int64
	Reason string
}

func (SiteRequestFailed) ActionType() string { return TypeSiteRequestFailed }

// ActivateSiteOption asks the sites layer to enable a site-level capability.
type ActivateSiteOption struct {
	SiteID    int64
	Option    string
	RequestID string
}

func (ActivateSiteOption) ActionType() string { return TypeActivateSiteOption }

// SiteOptionActivated records a successfully enabled capability.
type SiteOptionActivated struct {
	SiteID int64
	Option string
}

func (SiteOptionActivated) ActionType() string { return TypeSiteOptionActivated }

// SiteOptionFailed records a failed capability activation.
type SiteOptionFailed struct {
	SiteID int64
	Option string
	Reason string
}

func (SiteOptionFailed) ActionType() string { return TypeSiteOptionFailed }

// SetEditorLoaded records whether the embedded editor frame is ready.
type SetEditorLoaded struct {
	Loaded bool
}

func (SetEditorLoaded) ActionType() string { return TypeSetEditorLoaded }

// SetUnseenCount records the current unseen-notification count.
type SetUnseenCount struct {
	Count int
}

func (SetUnseenCount) ActionType() string { return TypeSetUnseenCount }
