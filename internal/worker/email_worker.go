package worker

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/wewg24/rlc-bingo-manager-v2/internal/infra"
)

// EmailJobPayload carries everything needed to deliver one report email.
type EmailJobPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path,omitempty"`
}

// EmailWorker delivers queued emails through the configured SMTP relay.
type EmailWorker struct {
	mailer *infra.Mailer
	rdb    *redis.Client
}

func NewEmailWorker(mailer *infra.Mailer, rdb *redis.Client) *EmailWorker {
	return &EmailWorker{mailer: mailer, rdb: rdb}
}

func (w *EmailWorker) Process(ctx context.Context, payload json.RawMessage) {
	var job EmailJobPayload
	if err := json.Unmarshal(payload, &job); err != nil {
		log.Error().Err(err).Msg("email worker: invalid payload")
		return
	}
	if job.To == "" {
		log.Warn().Msg("email worker: job without recipient dropped")
		return
	}

	err := withRetry(3, func() error {
		return w.mailer.SendReport(job.To, job.Subject, job.Body, job.PDFPath)
	})
	if err != nil {
		// Email delivery is best-effort: park the job for manual inspection
		// rather than blocking the queue.
		log.Error().Err(err).Str("to", job.To).Msg("email worker: delivery failed")
		SendToDLQ(ctx, w.rdb, QueueEmail, "email", "", payload, err.Error(), 3)
		return
	}
	log.Info().Str("to", job.To).Str("subject", job.Subject).Msg("report email sent")
}
