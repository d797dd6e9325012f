// Package render loads pages in a headless browser and produces DOM
// snapshots for extraction.
//
// A single Renderer owns one Chrome process (via a shared exec allocator)
// and opens a short-lived tab per rendered page. Concurrent tab count is
// bounded with a weighted semaphore so parallel workers cannot exhaust
// the browser. Requests for heavy resource types (images, media, fonts,
// stylesheets) are intercepted and failed before any bytes transfer;
// contact extraction only needs the document and the scripts that build it.
package render
