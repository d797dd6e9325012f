// Package extract implements the multi-source contact extractor.
//
// Given one rendered page snapshot, the extractor produces raw candidate
// emails and social-profile URLs from six independent sources:
//
//   - mailto-scheme anchors
//   - JSON-LD structured-data blocks (schema.org ContactPoint, Organization, ...)
//   - meta tags whose name/property mentions "email"
//   - a small set of data-* attributes used by site builders
//   - free body text, via an email pattern and a de-obfuscation pattern
//     for human-written forms like "name [at] domain [dot] com"
//   - social-profile URLs in body text and anchor hrefs
//
// Sources are independent and merged via set union; candidates are raw
// strings as found on the page. Classification (junk filtering and
// lowercasing) happens downstream in the filter package.
//
// Malformed structured-data payloads contribute zero candidates and never
// abort extraction for the rest of the page.
package extract
