package crawl

import "net/url"

// DefaultContactPaths are path suffixes that commonly host contact
// information. The selector probes these on the job's origin before
// following generically discovered links, in this order.
var DefaultContactPaths = []string{
	"/contact",
	"/about",
	"/contact-us",
	"/about-us",
}

// Selector produces the ordered, bounded list of next-hop URLs for one
// page. It holds only the fixed contact-path list and is safe to share.
type Selector struct {
	contactPaths []string
}

// NewSelector creates a Selector with the default contact paths.
func NewSelector() *Selector {
	return &Selector{contactPaths: DefaultContactPaths}
}

// SelectNext returns the URLs to enqueue after visiting currentURL.
//
// Contact-style URLs built from the origin come first (in listed order,
// skipping any already present among the discovered links or equal to the
// current page), followed by the discovered links in discovery order. A
// URL already in the visited set is never emitted, and the result is
// truncated to budget.
//
// All inputs and outputs are canonicalized URLs; visited keys are updated
// by the controller at visit time, not here.
func (s *Selector) SelectNext(origin *url.URL, currentURL string, discovered []string, visited map[string]bool, budget int) []string {
	if budget <= 0 {
		return nil
	}

	discoveredSet := make(map[string]bool, len(discovered))
	for _, link := range discovered {
		discoveredSet[link] = true
	}

	candidates := make([]string, 0, len(s.contactPaths)+len(discovered))
	emitted := make(map[string]bool, len(s.contactPaths)+len(discovered))

	for _, path := range s.contactPaths {
		candidate := Canonicalize(origin.Scheme + "://" + origin.Host + path)
		if discoveredSet[candidate] || candidate == currentURL {
			continue
		}
		if visited[candidate] || emitted[candidate] {
			continue
		}
		emitted[candidate] = true
		candidates = append(candidates, candidate)
	}

	for _, link := range discovered {
		if link == currentURL || visited[link] || emitted[link] {
			continue
		}
		emitted[link] = true
		candidates = append(candidates, link)
	}

	if len(candidates) > budget {
		candidates = candidates[:budget]
	}
	return candidates
}
