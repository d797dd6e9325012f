// Package model defines the core data structures used throughout contactscan.
//
// This package contains the following main types:
//   - Job: A scrape job claimed from the queue
//   - PageSnapshot: A rendered page produced by the renderer
//   - ScrapeResult: Contact data extracted from a single page
//   - JobOutcome: The consolidated result of one job's crawl
//   - ResultPayload: The normalized payload written back to the queue
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (crawl, extract, worker, report) need to use
// these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for payload write-back
// and report output.
package model
