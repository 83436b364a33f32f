package worker

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDLQKeyNamespacesSourceQueue(t *testing.T) {
	assert.Equal(t, "dlq:jobs:reports", dlqKey(QueueReport))
	assert.Equal(t, "dlq:jobs:email", dlqKey(QueueEmail))
}

func TestDLQEntryCarriesOccasion(t *testing.T) {
	const occasionID = "8a2bd1de-8c52-4b76-9a3e-000000000001"
	payload, err := json.Marshal(ReportJobPayload{OccasionID: occasionID})
	require.NoError(t, err)

	entry := newDLQEntry(QueueReport, "report", occasionID, payload, "pdf: write file: no space left", 5)
	data, err := json.Marshal(entry)
	require.NoError(t, err)

	var parked DLQEntry
	require.NoError(t, json.Unmarshal(data, &parked))
	assert.Equal(t, QueueReport, parked.Queue)
	assert.Equal(t, occasionID, parked.OccasionID)
	assert.Equal(t, 5, parked.Attempts)
	assert.False(t, parked.FailedAt.IsZero())

	// the parked payload must replay through the normal job decode path
	var job ReportJobPayload
	require.NoError(t, json.Unmarshal(parked.Payload, &job))
	assert.Equal(t, occasionID, job.OccasionID)
}

func TestDLQEntryOmitsOccasionForEmailJobs(t *testing.T) {
	payload, err := json.Marshal(EmailJobPayload{To: "treasurer@example.org", Subject: "Occasion report"})
	require.NoError(t, err)

	entry := newDLQEntry(QueueEmail, "email", "", payload, "smtp: connection refused", 3)
	data, err := json.Marshal(entry)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "occasion_id")
}
