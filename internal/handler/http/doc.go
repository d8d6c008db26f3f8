// Package http serves the local status API of the client: connection state of
// the realtime channel, the received notification lists, and build info.
// Requests get a trace id and an access log line before reaching a handler.
package http
