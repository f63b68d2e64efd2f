package signal

// Host→client commands delivered over the channel transport.
const (
	ShowMySites         = "page-my-sites"
	ShowReader          = "page-reader"
	ShowProfile         = "page-profile"
	NewPost             = "new-post"
	Signout             = "signout"
	ToggleNotifications = "toggle-notification-bar"
	CloseNotifications  = "close-notifications-panel"
	ShowHelp            = "page-help"
	Navigate            = "navigate"
	RequestSite         = "request-site"
	EnableSiteOption    = "enable-site-option"
)

// Client→host commands and responses.
const (
	UnreadNoticesCount       = "unread-notices-count"
	UserLoginStatus          = "user-login-status"
	UserAuth                 = "user-auth"
	CannotUseEditor          = "cannot-use-editor"
	ViewPostClicked          = "view-post-clicked"
	Print                    = "print"
	EditorLoaded             = "editor-iframe-loaded"
	RequestSiteResponse      = "request-site-response"
	EnableSiteOptionResponse = "enable-site-option-response"
)

// Client-internal signals raised by out-of-scope subsystems on the local Bus.
const (
	NotifyCannotUseEditor   = "notify-cannot-use-editor"
	NotifyViewPostClicked   = "notify-view-post-clicked"
	NotifyUnseenCountSet    = "notify-unseen-count-set"
	NotifySendToPrinter     = "notify-send-to-printer"
	NotifyDidRequestSite    = "notify-did-request-site"
	NotifyDidActivateOption = "notify-did-activate-site-option"
)
