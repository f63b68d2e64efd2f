package bridge

// View paths the dispatcher navigates to. The stats and post-creation paths
// scope to the selected site's slug when one is selected and fall back to
// the generic view otherwise.

const (
	readerPath  = "/read"
	profilePath = "/me"
	helpPath    = "/help"
)

func statsPath(site *SiteRef) string {
	if site == nil || site.Slug == "" {
		return "/stats/day"
	}
	return "/stats/day/" + site.Slug
}

func newPostPath(site *SiteRef) string {
	if site == nil || site.Slug == "" {
		return "/post"
	}
	return "/post/" + site.Slug
}
