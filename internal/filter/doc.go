// Package filter implements the junk classifier for extracted email
// candidates.
//
// The classifier is a pure function over a single raw string: it decides
// keep/drop using structural red-flag patterns, address validity checks,
// and fixed blocklists of placeholder local parts and tracking/platform
// domains. It performs no I/O and holds no mutable state after
// construction, so one Classifier can be shared by all workers without
// synchronization.
//
// The blocklists are data, not logic. They are reproduced verbatim from
// the reference filter data; exact strings matter for behavioral parity
// with the rest of the scraping pipeline.
package filter
