// Package crawl drives the per-job crawl: which pages to render, in what
// order, and when to stop.
//
// # Components
//
//   - Controller: the per-job state machine. Renders the start URL,
//     invokes extraction and classification, and decides whether to keep
//     following links (early exit on enough signal, depth and visit
//     budgets, stop-on-success per page).
//   - Selector: orders and bounds the next-hop candidates, fronting
//     likely contact pages before generically discovered links.
//   - Aggregator: merges per-page results into one JobOutcome.
//
// Page visits within one job are strictly sequential: the decision to
// follow further links depends on the outcome of the current page, so the
// controller never has two in-flight renders for the same job. All crawl
// state lives in values owned by one Controller.Run call; nothing is
// shared across jobs.
//
// Design decision: We implement the crawl loop ourselves rather than on a
// collector library because the policy is observe-then-branch: early exit
// and stop-on-success need the current page's classified results before
// deciding whether to enqueue anything at all.
package crawl
