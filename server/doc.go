// Package server exposes the recommendation engine over a small JSON HTTP
// API. It owns transport concerns only: request decoding, status-code
// mapping and graceful shutdown. All recommendation semantics live in the
// recommend package.
package server
