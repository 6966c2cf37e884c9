// Package types defines the entity structs, store configuration, and
// standard error values shared by the initflow storage backend, HTTP
// server, and CLI.
package types
