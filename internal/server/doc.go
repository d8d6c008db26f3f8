// Package server runs the local status HTTP server and shuts it down
// gracefully when its context ends.
package server
