package jobs

import (
	"context"
	"errors"
	"testing"

	"leasedesk/dto"
	"leasedesk/services/logger"
	"leasedesk/services/notification"
	"leasedesk/types"

	json "github.com/goccy/go-json"
	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExpirer struct {
	day types.Date
	n   int
	err error
}

func (f *fakeExpirer) ExpireOverdue(_ context.Context, today types.Date) (int, error) {
	f.day = today
	return f.n, f.err
}

type fakeAlerts struct {
	alerts []dto.Alert
	err    error
}

func (f *fakeAlerts) Today() types.Date { return types.NewDate(2024, 6, 15) }

func (f *fakeAlerts) UrgentAlerts(context.Context) ([]dto.Alert, error) {
	return f.alerts, f.err
}

type fakeNotifier struct {
	sent [][]byte
	err  error
}

func (f *fakeNotifier) SendMessage(msg []byte) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func TestExpireContracts(t *testing.T) {
	exp := &fakeExpirer{n: 3}
	j := New(exp, &fakeAlerts{}, &fakeNotifier{}, logger.Discard())

	assert.Equal(t, 3, j.ExpireContracts(context.Background()))
	assert.Equal(t, "2024-06-15", exp.day.String())

	exp.err = errors.New("db down")
	assert.Equal(t, 0, j.ExpireContracts(context.Background()))
}

func TestBroadcastAlerts(t *testing.T) {
	alerts := &fakeAlerts{alerts: []dto.Alert{
		{ID: "expiry-1-2024-06-15", ContractID: 1, ContractNo: "HD-001", DaysLeft: 5, Severity: "critical"},
		{ID: "expiry-2-2024-06-15", ContractID: 2, ContractNo: "HD-002", DaysLeft: 0, Severity: "critical"},
	}}
	notifier := &fakeNotifier{}
	j := New(&fakeExpirer{}, alerts, notifier, logger.Discard())

	assert.Equal(t, 2, j.BroadcastAlerts(context.Background()))
	require.Len(t, notifier.sent, 1)

	var ev struct {
		notification.Event
		Data []dto.Alert `json:"data"`
	}
	require.NoError(t, json.Unmarshal(notifier.sent[0], &ev))
	assert.Equal(t, EventExpiryAlert, ev.Type)
	assert.Equal(t, "Có 2 hợp đồng sắp hết hạn trong 30 ngày", ev.Message)
	require.Len(t, ev.Data, 2)
	assert.Equal(t, "HD-002", ev.Data[1].ContractNo)
}

func TestBroadcastAlerts_NothingToSend(t *testing.T) {
	notifier := &fakeNotifier{}
	j := New(&fakeExpirer{}, &fakeAlerts{}, notifier, logger.Discard())
	assert.Equal(t, 0, j.BroadcastAlerts(context.Background()))
	assert.Empty(t, notifier.sent)

	j = New(&fakeExpirer{}, &fakeAlerts{err: errors.New("boom")}, notifier, logger.Discard())
	assert.Equal(t, 0, j.BroadcastAlerts(context.Background()))

	failing := &fakeNotifier{err: errors.New("no sessions")}
	j = New(&fakeExpirer{}, &fakeAlerts{alerts: []dto.Alert{{ID: "a", ContractID: 1, Severity: "critical"}}}, failing, logger.Discard())
	assert.Equal(t, 0, j.BroadcastAlerts(context.Background()))
}

func TestInitCronJobs(t *testing.T) {
	c := cron.New()
	j := New(&fakeExpirer{}, &fakeAlerts{}, &fakeNotifier{}, logger.Discard())
	require.NoError(t, InitCronJobs(c, j))
	defer c.Stop()
	assert.Len(t, c.Entries(), 2)
}
