package services

import (
	"context"
	"time"

	"churchhub/internal/config"
	"churchhub/internal/core/domain"
	"churchhub/internal/pkg/logger"

	"github.com/robfig/cron/v3"
)

// DonationExpiryJob periodically fails donations stuck in Pending
type DonationExpiryJob struct {
	cron      *cron.Cron
	donations *DonationService
	ttl       time.Duration
	timeout   time.Duration
	log       *logger.Logger
}

// NewDonationExpiryJob schedules the expiry pass on the configured cron spec
func NewDonationExpiryJob(donations *DonationService, cfg config.DonationConfig, log *logger.Logger) (*DonationExpiryJob, error) {
	j := &DonationExpiryJob{
		cron:      cron.New(),
		donations: donations,
		ttl:       cfg.PendingTTL,
		timeout:   time.Minute,
		log:       log.With("job", "donation-expiry"),
	}
	if _, err := j.cron.AddFunc(cfg.ExpiryCron, j.run); err != nil {
		return nil, err
	}
	return j, nil
}

// Start launches the scheduler in its own goroutine
func (j *DonationExpiryJob) Start() {
	j.cron.Start()
	j.log.Info("🚀 Donation expiry job started", "ttl", j.ttl.String())
}

// Stop halts the scheduler and waits for a running pass to finish
func (j *DonationExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.log.Info("🛑 Donation expiry job stopped")
}

// RunOnce fails every pending donation older than the TTL
func (j *DonationExpiryJob) RunOnce(ctx context.Context) (int, error) {
	return j.donations.ExpirePending(ctx, domain.Now().Add(-j.ttl))
}

func (j *DonationExpiryJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	n, err := j.RunOnce(ctx)
	if err != nil {
		j.log.Error("❌ Donation expiry pass failed", "error", err, "expired", n)
		return
	}
	if n > 0 {
		j.log.Info("donations expired", "expired", n)
	}
}
