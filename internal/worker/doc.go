// Package worker runs the claim-process-complete loop around the crawl
// controller.
//
// A Pool starts a fixed number of long-lived workers. Each worker claims
// jobs from the queue one at a time, runs the crawl, normalizes the
// outcome into the payload shape the downstream pipeline expects, and
// writes it back. An empty queue makes workers idle briefly rather than
// exit; the pool runs until its context is cancelled.
package worker
