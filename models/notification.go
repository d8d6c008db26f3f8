// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Notification is a single realtime notice received on the notifications
// topic. Identifiers are parsed out of the message body and are not unique.
type Notification struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// NotificationChannel names the list a notification is filed into.
type NotificationChannel string

const (
	ProcessChannel NotificationChannel = "process"
	AuditChannel   NotificationChannel = "audit"
)

// Valid reports whether c is one of the known channels.
func (c NotificationChannel) Valid() bool {
	return c == ProcessChannel || c == AuditChannel
}

// ConnectionState is the lifecycle state of the realtime channel.
type ConnectionState string

const (
	Disconnected ConnectionState = "disconnected"
	Connecting   ConnectionState = "connecting"
	Connected    ConnectionState = "connected"
	Failed       ConnectionState = "failed"
)
