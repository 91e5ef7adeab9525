package queue

import (
	"context"
	"fmt"

	"CotLens/pkg/logger"
)

// LogDigestType identifies aggregated error digests on the queue.
const LogDigestType = "logs.aggregated"

// LogDigestJob drains aggregated error batches published by the log
// collector and re-emits them as single digest lines.
type LogDigestJob struct {
	log *logger.Logger
}

func NewLogDigestJob(log *logger.Logger) *LogDigestJob {
	return &LogDigestJob{log: log}
}

func (j *LogDigestJob) Name() string { return "log_digest" }

func (j *LogDigestJob) Type() string { return LogDigestType }

func (j *LogDigestJob) Handle(_ context.Context, payload interface{}) error {
	entries, err := ParsePayload[[]logger.AggregatedLogEntry](payload)
	if err != nil {
		return fmt.Errorf("digest payload: %w", err)
	}
	for _, e := range *entries {
		j.log.Warn("error digest",
			logger.String("message", e.Message),
			logger.String("caller", e.Caller),
			logger.Int("count", e.Count),
			logger.String("first_seen", e.FirstSeen.Format("15:04:05")),
			logger.String("last_seen", e.LastSeen.Format("15:04:05")))
	}
	return nil
}
