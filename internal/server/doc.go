// Package server wires the routing engine into an HTTP server. It
// turns the configured route table into registration calls during
// startup (the single-threaded registration phase), then dispatches
// incoming requests through the matcher, exposing bound path variables
// to handlers via the request context.
package server
