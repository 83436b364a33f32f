package worker

// retry_cron.go — background retry of failed compliance reports.
// Every tick it picks up failed reports whose backoff window elapsed and
// re-runs generation. After MaxReportRetries attempts the job is parked in
// the DLQ and the report stays failed until someone retries it manually.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/wewg24/rlc-bingo-manager-v2/internal/model"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/repository"
)

const MaxReportRetries = 5

type RetryCronConfig struct {
	Interval  time.Duration
	BatchSize int
}

func DefaultRetryCronConfig() RetryCronConfig {
	return RetryCronConfig{Interval: 30 * time.Second, BatchSize: 10}
}

// StartRetryCron launches the retry loop. Blocks until ctx is cancelled,
// so callers run it in a goroutine.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig, reports repository.ReportRepository, rw *ReportWorker, rdb *redis.Client) {
	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	log.Info().Dur("interval", cfg.Interval).Int("batch_size", cfg.BatchSize).Msg("report retry cron started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("report retry cron shutting down")
			return
		case <-ticker.C:
			processRetries(ctx, cfg, reports, rw, rdb)
		}
	}
}

func processRetries(ctx context.Context, cfg RetryCronConfig, reports repository.ReportRepository, rw *ReportWorker, rdb *redis.Client) {
	due, err := reports.ListDueForRetry(ctx, time.Now(), cfg.BatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry cron: list due reports failed")
		return
	}
	if len(due) == 0 {
		return
	}
	log.Info().Int("count", len(due)).Msg("retry cron: retrying failed reports")

	for i := range due {
		report := &due[i]

		if report.RetryCount >= MaxReportRetries {
			payload, _ := json.Marshal(ReportJobPayload{OccasionID: report.OccasionID.String()})
			reason := "retry budget exhausted"
			if report.LastError != nil {
				reason = *report.LastError
			}
			SendToDLQ(ctx, rdb, QueueReport, "report", report.OccasionID.String(), payload, reason, report.RetryCount)
			report.NextRetryAt = nil
			if err := reports.Update(ctx, report); err != nil {
				log.Error().Err(err).Str("report_id", report.ID.String()).Msg("retry cron: park report failed")
			}
			continue
		}

		if err := rw.Generate(ctx, report); err != nil {
			msg := err.Error()
			report.RetryCount++
			report.LastError = &msg
			next := time.Now().Add(computeRetryBackoff(report.RetryCount))
			report.NextRetryAt = &next
			if uerr := reports.Update(ctx, report); uerr != nil {
				log.Error().Err(uerr).Str("report_id", report.ID.String()).Msg("retry cron: persist failure failed")
			}
			log.Warn().
				Err(err).
				Str("occasion_id", report.OccasionID.String()).
				Int("retry_count", report.RetryCount).
				Msg("retry cron: report generation failed again")
			continue
		}

		report.Status = model.ReportGenerated
		report.LastError = nil
		report.NextRetryAt = nil
		if err := reports.Update(ctx, report); err != nil {
			log.Error().Err(err).Str("report_id", report.ID.String()).Msg("retry cron: persist success failed")
			continue
		}
		rw.enqueueEmail(ctx, report)
		log.Info().Str("occasion_id", report.OccasionID.String()).Msg("retry cron: report recovered")
	}
}

// computeRetryBackoff doubles per attempt starting at one minute, capped at
// thirty minutes: 1m, 2m, 4m, 8m, 16m, 30m...
func computeRetryBackoff(retryCount int) time.Duration {
	if retryCount < 1 {
		retryCount = 1
	}
	backoff := time.Minute << (retryCount - 1)
	if backoff > 30*time.Minute {
		backoff = 30 * time.Minute
	}
	return backoff
}
