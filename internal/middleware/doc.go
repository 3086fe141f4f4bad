// Package middleware provides the HTTP middleware for the serving
// layer: request IDs, access logging, and panic recovery.
package middleware
