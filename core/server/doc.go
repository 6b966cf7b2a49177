// Package server holds the admin HTTP server configuration.
//
// The cmd package starts the Fiber app from this Config; core/config embeds
// it under the "server" key.
package server
