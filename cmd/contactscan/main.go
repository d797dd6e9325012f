// Package main provides the entry point for the contactscan CLI.
//
// contactscan extracts contact information (emails and social-profile URLs)
// from websites using a headless browser, either as a one-shot scan or as a
// worker fleet draining a shared job queue.
//
// Usage:
//
//	contactscan scan <url>
//	contactscan enqueue <url>...
//	contactscan worker
//
// See --help for all available options.
package main

// main is the entry point for contactscan.
func main() {
	Execute()
}
