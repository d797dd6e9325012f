package filter

import (
	"regexp"
	"strings"
)

// junkPatterns are structural red flags checked before the address is
// split. Any match means the candidate is junk: stray leading punctuation,
// asset filenames that happen to contain "@", percent-encoding, mail-link
// artifacts, and known low-value substrings.
var junkPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[%\s?&]`),
	regexp.MustCompile(`^@`),
	regexp.MustCompile(`@.*@`),
	regexp.MustCompile(`(?i)\.(css|js|json|xml|map|min\.js|min\.css|woff|woff2|ttf|eot|pdf)$`),
	regexp.MustCompile(`(?i)\.(png|jpg|jpeg|gif|svg|webp|ico)$`),
	regexp.MustCompile(`(?i)@\d+x\.(png|jpg|jpeg|gif|svg|webp)$`),
	regexp.MustCompile(`(?i)^(sprite|icon|logo|banner|image|font)`),
	regexp.MustCompile(`%[0-9A-Fa-f]{2}`),
	regexp.MustCompile(`\?`),
	regexp.MustCompile(`(?i)subject=`),
	regexp.MustCompile(`(?i)body=`),
	regexp.MustCompile(`&`),
	regexp.MustCompile(`(?i)@o\d+\.ingest\.sentry\.io`),
	regexp.MustCompile(`(?i)wixpress\.com$`),
	regexp.MustCompile(`(?i)sentry`),
	regexp.MustCompile(`(?i)shoplocal`),
	regexp.MustCompile(`(?i)news\.cfm`),
}

// assetLocalPattern matches local parts that are really asset filename
// prefixes or image density suffixes (e.g. "logo@2x.png" survives the
// extension checks when the extension was stripped upstream).
var assetLocalPattern = regexp.MustCompile(`(?i)^(sprite|icon|logo|banner|image|font|@\d+x)`)

// Classifier decides whether an extracted email candidate is junk.
// It is deterministic and safe for concurrent use: all lookup structures
// are built once at construction and never mutated.
type Classifier struct {
	// domains is the blocked-domain set, keyed by lowercased domain.
	domains map[string]struct{}

	// domainList preserves the blocked domains for suffix matching.
	domainList []string

	// localParts is the blocked local-part set.
	localParts map[string]struct{}
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithExtraDomains appends additional blocked domains to the built-in set.
// Entries are lowercased; the built-in set is never replaced.
func WithExtraDomains(domains []string) Option {
	return func(c *Classifier) {
		for _, d := range domains {
			d = strings.ToLower(strings.TrimSpace(d))
			if d == "" {
				continue
			}
			if _, ok := c.domains[d]; !ok {
				c.domains[d] = struct{}{}
				c.domainList = append(c.domainList, d)
			}
		}
	}
}

// WithExtraLocalParts appends additional blocked local parts to the
// built-in set.
func WithExtraLocalParts(parts []string) Option {
	return func(c *Classifier) {
		for _, p := range parts {
			p = strings.ToLower(strings.TrimSpace(p))
			if p != "" {
				c.localParts[p] = struct{}{}
			}
		}
	}
}

// NewClassifier creates a Classifier with the built-in blocklists,
// extended by any options.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{
		domains:    make(map[string]struct{}, len(blockedDomains)),
		domainList: make([]string, 0, len(blockedDomains)),
		localParts: make(map[string]struct{}, len(blockedLocalParts)),
	}
	for _, d := range blockedDomains {
		c.domains[d] = struct{}{}
		c.domainList = append(c.domainList, d)
	}
	for _, p := range blockedLocalParts {
		c.localParts[p] = struct{}{}
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Normalize returns the canonical form of an email candidate used for
// classification and downstream deduplication: lowercased and trimmed.
func Normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsJunk reports whether the raw email candidate should be discarded.
// The input is lowercased and trimmed first; an empty string is junk.
//
// Checks run in a fixed order with first match winning:
//  1. Structural red-flag patterns
//  2. Exactly one "@", not at either end
//  3. Local part in the blocklist
//  4. Domain in the blocklist, or a subdomain of a blocked domain
//  5. Minimum lengths (local >= 2, domain >= 4 with a dot)
//  6. Local part with an asset filename prefix or density suffix
func (c *Classifier) IsJunk(email string) bool {
	normalized := Normalize(email)
	if normalized == "" {
		return true
	}

	for _, pattern := range junkPatterns {
		if pattern.MatchString(normalized) {
			return true
		}
	}

	atIndex := strings.LastIndex(normalized, "@")
	if atIndex <= 0 || atIndex == len(normalized)-1 {
		return true
	}

	localPart := normalized[:atIndex]
	domain := normalized[atIndex+1:]

	if _, ok := c.localParts[localPart]; ok {
		return true
	}

	if _, ok := c.domains[domain]; ok {
		return true
	}
	for _, blocked := range c.domainList {
		if strings.HasSuffix(domain, "."+blocked) {
			return true
		}
	}

	if len(localPart) < 2 || len(domain) < 4 {
		return true
	}
	if !strings.Contains(domain, ".") {
		return true
	}
	if assetLocalPattern.MatchString(localPart) {
		return true
	}

	return false
}

// Filter returns the normalized forms of the candidates that survive
// classification, in input order. The input slice is not modified.
func (c *Classifier) Filter(candidates []string) []string {
	kept := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		if !c.IsJunk(candidate) {
			kept = append(kept, Normalize(candidate))
		}
	}
	return kept
}
