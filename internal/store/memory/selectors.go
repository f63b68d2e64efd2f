package memory

import "github.com/deskbridge/deskbridge/internal/store"

// Pure selectors over AppState snapshots. Each tolerates a foreign snapshot
// type by returning the zero value.

// NotificationsOpen reports whether the notifications panel is open.
func NotificationsOpen(s store.State) bool {
	st, ok := s.(AppState)
	return ok && st.NotificationsOpen
}

// EditorLoaded reports whether the embedded editor frame is ready.
func EditorLoaded(s store.State) bool {
	st, ok := s.(AppState)
	return ok && st.EditorLoaded
}

// UnseenCount returns the current unseen-notification count.
func UnseenCount(s store.State) int {
	st, ok := s.(AppState)
	if !ok {
		return 0
	}
	return st.UnseenCount
}

// IsRequestingSite reports whether a site data request is in flight.
func IsRequestingSite(s store.State, siteID int64) bool {
	st, ok := s.(AppState)
	return ok && st.Requesting[siteID]
}

// SiteOptionEnabled reports whether a site capability has been enabled.
func SiteOptionEnabled(s store.State, siteID int64, option string) bool {
	st, ok := s.(AppState)
	return ok && st.Options[siteID][option]
}

// CanManageOptions reports whether the current user may manage options for
// the given site.
func CanManageOptions(s store.State, siteID int64) bool {
	st, ok := s.(AppState)
	return ok && st.ManageOptions[siteID]
}

// CurrentPath returns the currently visible route.
func CurrentPath(s store.State) string {
	st, ok := s.(AppState)
	if !ok {
		return ""
	}
	return st.Path
}
