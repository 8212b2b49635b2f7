package jobs

import (
	"context"
	"time"

	"leasedesk/dto"
	"leasedesk/services/logger"
	"leasedesk/services/notification"
	"leasedesk/types"

	"github.com/robfig/cron/v3"
)

const (
	expireSweepSpec = "0 1 * * *"
	alertSpec       = "0 8 * * *"
	jobTimeout      = 2 * time.Minute

	EventExpiryAlert = "contract_expiry"
)

// ContractExpirer chuyển hợp đồng quá hạn sang expired
type ContractExpirer interface {
	ExpireOverdue(ctx context.Context, today types.Date) (int, error)
}

// AlertSource cung cấp cảnh báo hợp đồng sắp hết hạn
type AlertSource interface {
	Today() types.Date
	UrgentAlerts(ctx context.Context) ([]dto.Alert, error)
}

type Jobs struct {
	contracts ContractExpirer
	alerts    AlertSource
	notifier  notification.Service
	logger    logger.Logger
}

func New(contracts ContractExpirer, alerts AlertSource, notifier notification.Service, log logger.Logger) *Jobs {
	return &Jobs{contracts: contracts, alerts: alerts, notifier: notifier, logger: log}
}

// InitCronJobs đăng ký các cron job và khởi động cron
func InitCronJobs(c *cron.Cron, j *Jobs) error {
	// 1h sáng: chuyển hợp đồng quá hạn sang expired
	if _, err := c.AddFunc(expireSweepSpec, func() { j.ExpireContracts(context.Background()) }); err != nil {
		return err
	}
	// 8h sáng: gửi cảnh báo hợp đồng còn <= 30 ngày qua websocket
	if _, err := c.AddFunc(alertSpec, func() { j.BroadcastAlerts(context.Background()) }); err != nil {
		return err
	}

	c.Start()
	j.logger.Info("Cron jobs initialized successfully")
	return nil
}

func (j *Jobs) ExpireContracts(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	today := j.alerts.Today()
	n, err := j.contracts.ExpireOverdue(ctx, today)
	if err != nil {
		j.logger.Error("Lỗi khi cập nhật hợp đồng hết hạn: %v", err)
		return 0
	}
	j.logger.Info("Đã chuyển %d hợp đồng sang expired (%s)", n, today)
	return n
}

func (j *Jobs) BroadcastAlerts(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	alerts, err := j.alerts.UrgentAlerts(ctx)
	if err != nil {
		j.logger.Error("Lỗi khi tải cảnh báo hết hạn: %v", err)
		return 0
	}
	if len(alerts) == 0 {
		return 0
	}
	msg, err := notification.NewMessageBuilder(EventExpiryAlert).
		Message("Có %d hợp đồng sắp hết hạn trong 30 ngày", len(alerts)).
		Data(alerts).
		Build()
	if err != nil {
		j.logger.Error("Lỗi tạo thông báo: %v", err)
		return 0
	}
	if err := j.notifier.SendMessage(msg); err != nil {
		j.logger.Error("Lỗi gửi thông báo websocket: %v", err)
		return 0
	}
	return len(alerts)
}
