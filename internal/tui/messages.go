package tui

import (
	"github.com/ogdevs/backoffice-client/internal/alert"
	"github.com/ogdevs/backoffice-client/internal/notify"
	"github.com/ogdevs/backoffice-client/internal/search"
	"github.com/ogdevs/backoffice-client/models"
)

type resultsMsg search.Results

type notificationsMsg notify.Snapshot

type statusMsg models.ConnectionState

type alertMsg alert.Alert

type copiedMsg struct {
	id  string
	err error
}

type clearStatusMsg struct {
	seq int
}

// closedMsg reports that a subscription channel was closed.
type closedMsg struct{}
