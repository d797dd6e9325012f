package report

import "github.com/contactscan/contactscan/internal/extract"

// socialGroup is one platform's profile URLs, labelled for display.
type socialGroup struct {
	// Label is the platform's display name ("Facebook").
	Label string

	// URLs are the profile URLs found for this platform, in extraction order.
	URLs []string
}

// groupSocialURLs buckets profile URLs by platform so writers can label
// each group with the platform's display name. URLs matching no known
// platform land in a trailing "Other" group.
func groupSocialURLs(urls []string) []socialGroup {
	platforms := extract.DefaultPlatforms()
	buckets := make([]socialGroup, len(platforms))
	for i, p := range platforms {
		buckets[i].Label = p.Title()
	}

	var other []string
	for _, u := range urls {
		matched := false
		for i, p := range platforms {
			if p.MatchURL(u) {
				buckets[i].URLs = append(buckets[i].URLs, u)
				matched = true
				break
			}
		}
		if !matched {
			other = append(other, u)
		}
	}

	groups := make([]socialGroup, 0, len(buckets)+1)
	for _, b := range buckets {
		if len(b.URLs) > 0 {
			groups = append(groups, b)
		}
	}
	if len(other) > 0 {
		groups = append(groups, socialGroup{Label: "Other", URLs: other})
	}
	return groups
}
