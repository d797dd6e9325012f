// Package config defines the engine's configuration: crawl limits,
// renderer settings, worker counts, and queue location. Values come from
// environment variables (optionally via a .env file), with a YAML file
// for junk-filter extensions.
package config
