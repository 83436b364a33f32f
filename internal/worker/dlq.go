package worker

// Report and email jobs whose retry budget runs out are parked on redis
// lists, one per source queue (dlq:jobs:reports, dlq:jobs:email). Entries
// carry the occasion id so a parked job can be tied back to the record it
// belongs to; draining is manual. The health endpoint reports the reports
// queue depth so a stuck pipeline is visible without redis access.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const DLQPrefix = "dlq:"

func dlqKey(queue string) string { return DLQPrefix + queue }

// DLQEntry is one parked job with enough context to diagnose and replay it.
type DLQEntry struct {
	Queue      string          `json:"queue"`
	JobType    string          `json:"job_type"`
	OccasionID string          `json:"occasion_id,omitempty"`
	Payload    json.RawMessage `json:"payload"`
	Reason     string          `json:"reason"`
	Attempts   int             `json:"attempts"`
	FailedAt   time.Time       `json:"failed_at"`
}

func newDLQEntry(queue, jobType, occasionID string, payload json.RawMessage, reason string, attempts int) DLQEntry {
	return DLQEntry{
		Queue:      queue,
		JobType:    jobType,
		OccasionID: occasionID,
		Payload:    payload,
		Reason:     reason,
		Attempts:   attempts,
		FailedAt:   time.Now().UTC(),
	}
}

// SendToDLQ parks an exhausted job. occasionID may be empty for jobs that
// are not tied to a single occasion.
func SendToDLQ(ctx context.Context, rdb *redis.Client, queue, jobType, occasionID string, payload json.RawMessage, reason string, attempts int) {
	entry := newDLQEntry(queue, jobType, occasionID, payload, reason, attempts)

	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: marshal entry failed")
		return
	}
	if err := rdb.LPush(ctx, dlqKey(queue), data).Err(); err != nil {
		log.Error().Err(err).Str("dlq_key", dlqKey(queue)).Msg("dlq: push failed")
		return
	}

	log.Warn().
		Str("queue", queue).
		Str("job_type", jobType).
		Str("occasion_id", occasionID).
		Str("reason", reason).
		Int("attempts", attempts).
		Msg("dlq: job parked")
}

// DLQLength reports how many jobs are parked for a queue.
func DLQLength(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, dlqKey(queue)).Result()
}
