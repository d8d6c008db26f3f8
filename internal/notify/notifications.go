// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package notify holds the observable client-side state shared between the
// realtime channel and its views: the two notification lists and the current
// connection state.
package notify

import (
	"sync"

	"github.com/ogdevs/backoffice-client/models"
)

// Snapshot is a copy of both notification lists at one point in time.
type Snapshot struct {
	Process []models.Notification `json:"process"`
	Audit   []models.Notification `json:"audit"`
}

// Get returns the list of ch.
func (s Snapshot) Get(ch models.NotificationChannel) []models.Notification {
	if ch == models.AuditChannel {
		return s.Audit
	}
	return s.Process
}

// NotificationStore keeps the process and audit lists in arrival order.
// Entries are never deduplicated.
type NotificationStore struct {
	mu sync.RWMutex

	// process holds notifications received on the process channel.
	process []models.Notification

	// audit holds notifications received on the audit channel.
	audit []models.Notification

	// obs fans a fresh [Snapshot] out to subscribers after every change.
	obs observable[Snapshot]
}

// NewNotificationStore returns a store with both lists empty.
func NewNotificationStore() *NotificationStore {
	return &NotificationStore{}
}

// Append adds n to the end of the list of ch.
func (s *NotificationStore) Append(ch models.NotificationChannel, n models.Notification) {
	s.mu.Lock()
	if ch == models.AuditChannel {
		s.audit = append(s.audit, n)
	} else {
		s.process = append(s.process, n)
	}
	s.publishLocked()
	s.mu.Unlock()
}

// Snapshot returns a copy of the list of ch.
func (s *NotificationStore) Snapshot(ch models.NotificationChannel) []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked().Get(ch)
}

// All returns a copy of both lists.
func (s *NotificationStore) All() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Clear empties the list of ch.
func (s *NotificationStore) Clear(ch models.NotificationChannel) {
	s.mu.Lock()
	if ch == models.AuditChannel {
		s.audit = nil
	} else {
		s.process = nil
	}
	s.publishLocked()
	s.mu.Unlock()
}

// ClearAll empties both lists.
func (s *NotificationStore) ClearAll() {
	s.mu.Lock()
	s.process, s.audit = nil, nil
	s.publishLocked()
	s.mu.Unlock()
}

// Subscribe delivers the current snapshot immediately and then the latest
// snapshot after every change. cancel closes the channel.
func (s *NotificationStore) Subscribe() (<-chan Snapshot, func()) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.obs.subscribe(s.snapshotLocked())
}

// Close ends every subscription.
func (s *NotificationStore) Close() {
	s.obs.closeAll()
}

// publishLocked runs under the write lock so subscribers observe changes in
// the order they were made.
func (s *NotificationStore) publishLocked() {
	s.obs.publish(s.snapshotLocked())
}

func (s *NotificationStore) snapshotLocked() Snapshot {
	return Snapshot{
		Process: append([]models.Notification(nil), s.process...),
		Audit:   append([]models.Notification(nil), s.audit...),
	}
}
