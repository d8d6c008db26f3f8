package http

import "github.com/ogdevs/backoffice-client/models"

// ConnectionInfo reports the realtime channel state.
type ConnectionInfo interface {
	State() models.ConnectionState
	Attempts() int
}

// NotificationLists exposes the received notifications per channel.
type NotificationLists interface {
	Snapshot(ch models.NotificationChannel) []models.Notification
	Clear(ch models.NotificationChannel)
}
