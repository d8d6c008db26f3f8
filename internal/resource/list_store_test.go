package resource

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ogdevs/backoffice-client/internal/adapter"
	"github.com/ogdevs/backoffice-client/internal/alert"
	"github.com/ogdevs/backoffice-client/internal/logger"
	"github.com/ogdevs/backoffice-client/internal/mock"
	"github.com/ogdevs/backoffice-client/models"
)

func validTicket(id int64, title string) models.Ticket {
	return models.Ticket{
		ID:          id,
		Title:       title,
		Description: "printer on floor 2 is jammed",
		Status:      models.TicketOpen,
		Type:        models.TicketIncident,
	}
}

type storeHarness struct {
	client    *mock.MockClient[models.Ticket]
	confirmer *mock.MockConfirmer
	alerts    *alert.Recorder
	store     *ListStore[models.Ticket]
}

func newHarness(t *testing.T) *storeHarness {
	t.Helper()
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient[models.Ticket](ctrl)
	client.EXPECT().Name().Return(adapter.ResourceTickets).AnyTimes()
	confirmer := mock.NewMockConfirmer(ctrl)
	alerts := &alert.Recorder{}

	return &storeHarness{
		client:    client,
		confirmer: confirmer,
		alerts:    alerts,
		store:     NewListStore[models.Ticket](client, nil, confirmer, alerts, logger.Nop()),
	}
}

func (h *storeHarness) seed(t *testing.T, items ...models.Ticket) {
	t.Helper()
	h.client.EXPECT().List(gomock.Any()).Return(items, nil)
	require.NoError(t, h.store.Load(context.Background()))
}

func TestListStore_Load(t *testing.T) {
	h := newHarness(t)
	h.seed(t, validTicket(1, "a"), validTicket(2, "b"))

	items := h.store.Items()
	require.Len(t, items, 2)
	assert.Equal(t, int64(2), items[1].ID)
}

func TestListStore_LoadFailureKeepsState(t *testing.T) {
	h := newHarness(t)
	h.seed(t, validTicket(1, "a"))

	h.client.EXPECT().List(gomock.Any()).Return(nil, &adapter.HTTPError{StatusCode: 500, Body: `{"message":"db down"}`})
	err := h.store.Load(context.Background())

	require.Error(t, err)
	assert.Len(t, h.store.Items(), 1)
	assert.Equal(t, []string{"db down"}, h.alerts.Messages(alert.Error))
}

func TestListStore_GetRefreshesListedRow(t *testing.T) {
	h := newHarness(t)
	h.seed(t, validTicket(1, "old"))

	h.client.EXPECT().Get(gomock.Any(), int64(1)).Return(validTicket(1, "new"), nil)
	got, err := h.store.Get(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "new", got.Title)
	assert.Equal(t, "new", h.store.Items()[0].Title)
}

func TestListStore_CreateAppends(t *testing.T) {
	h := newHarness(t)
	h.seed(t, validTicket(1, "a"))

	in := validTicket(0, "b")
	h.client.EXPECT().Create(gomock.Any(), in).Return(validTicket(7, "b"), nil)

	created, err := h.store.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)

	items := h.store.Items()
	require.Len(t, items, 2)
	assert.Equal(t, int64(7), items[1].ID)
	assert.Equal(t, []string{"Ticket created successfully."}, h.alerts.Messages(alert.Info))
}

func TestListStore_CreateValidationSendsNothing(t *testing.T) {
	h := newHarness(t)

	in := validTicket(0, "")
	in.Status = "PENDING"

	_, err := h.store.Create(context.Background(), in)

	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "Title is required")
	assert.Contains(t, err.Error(), "Status must be one of: OPEN IN_PROGRESS CLOSED")
	assert.Empty(t, h.store.Items())
	assert.Len(t, h.alerts.Messages(alert.Warning), 1)
}

func TestListStore_CreateMaxLength(t *testing.T) {
	h := newHarness(t)

	_, err := h.store.Create(context.Background(), validTicket(0, strings.Repeat("x", 101)))

	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "Title must be at most 100 characters")
}

func TestListStore_CreateFailureKeepsState(t *testing.T) {
	h := newHarness(t)
	h.seed(t, validTicket(1, "a"))

	h.client.EXPECT().Create(gomock.Any(), gomock.Any()).Return(models.Ticket{}, adapter.ErrTimeout)
	_, err := h.store.Create(context.Background(), validTicket(0, "b"))

	require.ErrorIs(t, err, adapter.ErrTimeout)
	assert.Len(t, h.store.Items(), 1)
	assert.Equal(t, []string{"The server took too long to respond. Please try again."}, h.alerts.Messages(alert.Error))
}

func TestListStore_UpdateReplacesRow(t *testing.T) {
	h := newHarness(t)
	h.seed(t, validTicket(1, "a"), validTicket(2, "b"))

	in := validTicket(2, "b2")
	h.client.EXPECT().Update(gomock.Any(), int64(2), in).Return(in, nil)

	_, err := h.store.Update(context.Background(), 2, in)
	require.NoError(t, err)

	items := h.store.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "b2", items[1].Title)
}

func TestListStore_UpdateConflictKeepsRow(t *testing.T) {
	h := newHarness(t)
	h.seed(t, validTicket(1, "a"))

	h.client.EXPECT().Update(gomock.Any(), int64(1), gomock.Any()).
		Return(models.Ticket{}, fmt.Errorf("tickets update: %w", adapter.ErrConflict))

	_, err := h.store.Update(context.Background(), 1, validTicket(1, "changed"))

	require.ErrorIs(t, err, adapter.ErrConflict)
	assert.Equal(t, "a", h.store.Items()[0].Title)
}

func TestListStore_DeleteConfirmed(t *testing.T) {
	h := newHarness(t)
	h.seed(t, validTicket(1, "a"), validTicket(2, "b"))

	h.confirmer.EXPECT().Confirm(gomock.Any(), "Are you sure you want to delete this ticket?").Return(true, nil)
	h.client.EXPECT().Delete(gomock.Any(), int64(1)).Return(nil)

	require.NoError(t, h.store.Delete(context.Background(), 1))

	items := h.store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].ID)
}

func TestListStore_DeleteDeclined(t *testing.T) {
	h := newHarness(t)
	h.seed(t, validTicket(1, "a"))

	h.confirmer.EXPECT().Confirm(gomock.Any(), gomock.Any()).Return(false, nil)

	err := h.store.Delete(context.Background(), 1)

	require.ErrorIs(t, err, ErrCancelled)
	assert.Len(t, h.store.Items(), 1)
}

func TestListStore_DeletePromptError(t *testing.T) {
	h := newHarness(t)

	promptErr := errors.New("stdin closed")
	h.confirmer.EXPECT().Confirm(gomock.Any(), gomock.Any()).Return(false, promptErr)

	require.ErrorIs(t, h.store.Delete(context.Background(), 1), promptErr)
}

func TestListStore_DeleteFailureKeepsRow(t *testing.T) {
	h := newHarness(t)
	h.seed(t, validTicket(1, "a"))

	h.confirmer.EXPECT().Confirm(gomock.Any(), gomock.Any()).Return(true, nil)
	h.client.EXPECT().Delete(gomock.Any(), int64(1)).Return(fmt.Errorf("tickets delete: %w", adapter.ErrForbidden))

	err := h.store.Delete(context.Background(), 1)

	require.ErrorIs(t, err, adapter.ErrForbidden)
	assert.Len(t, h.store.Items(), 1)
	assert.Equal(t, []string{"Forbidden: you are not allowed to perform this action."}, h.alerts.Messages(alert.Error))
}

func TestListStore_CancelledContextIsNotAlerted(t *testing.T) {
	h := newHarness(t)

	h.client.EXPECT().List(gomock.Any()).Return(nil, context.Canceled)

	require.ErrorIs(t, h.store.Load(context.Background()), context.Canceled)
	assert.Empty(t, h.alerts.Alerts())
}

type uploadingClient struct {
	*mock.MockClient[models.Document]
	*mock.MockUploader[models.Document]
}

func TestListStore_Upload(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := uploadingClient{
		MockClient:   mock.NewMockClient[models.Document](ctrl),
		MockUploader: mock.NewMockUploader[models.Document](ctrl),
	}
	client.MockClient.EXPECT().Name().Return(adapter.ResourceDocuments).AnyTimes()
	alerts := &alert.Recorder{}
	store := NewListStore[models.Document](client, nil, nil, alerts, logger.Nop())

	body := strings.NewReader("%PDF")
	client.MockUploader.EXPECT().Upload(gomock.Any(), "payslip.pdf", body).
		Return(models.Document{ID: 3, Title: "payslip.pdf"}, nil)

	doc, err := store.Upload(context.Background(), "payslip.pdf", body)

	require.NoError(t, err)
	assert.Equal(t, int64(3), doc.ID)
	assert.Len(t, store.Items(), 1)
	assert.Equal(t, []string{"payslip.pdf uploaded successfully."}, alerts.Messages(alert.Info))
}

func TestListStore_UploadUnsupported(t *testing.T) {
	h := newHarness(t)

	_, err := h.store.Upload(context.Background(), "a.txt", strings.NewReader("x"))

	require.ErrorIs(t, err, adapter.ErrUnsupported)
}

func TestListStore_Subscribe(t *testing.T) {
	h := newHarness(t)
	ch, cancel := h.store.Subscribe()
	defer cancel()

	assert.Empty(t, <-ch)

	h.seed(t, validTicket(1, "a"))
	assert.Len(t, <-ch, 1)
}

func TestSingularName(t *testing.T) {
	assert.Equal(t, "Job offer", singularName("job-offers"))
	assert.Equal(t, "Invoice", singularName("invoices"))
	assert.Equal(t, "s", singularName("s"))
}
