package logger

import (
	"time"
)

// StageTracker logs the progress of a multi-stage analysis run. Each stage
// completion is logged with its duration; the whole run is summarized by
// Done.
type StageTracker struct {
	logger     Logger
	operation  string
	total      int
	completed  int
	startTime  time.Time
	stageStart time.Time
}

// NewStageTracker creates a tracker for an operation with a known number of
// stages.
func NewStageTracker(log Logger, operation string, totalStages int) *StageTracker {
	if log == nil {
		log = GetGlobalLogger()
	}
	now := time.Now()

	tracker := &StageTracker{
		logger:     log.WithComponent("progress"),
		operation:  operation,
		total:      totalStages,
		startTime:  now,
		stageStart: now,
	}

	tracker.logger.WithFields(Fields{
		"operation":    operation,
		"total_stages": totalStages,
	}).Info("Starting operation")

	return tracker
}

// StageDone marks the named stage as completed.
func (t *StageTracker) StageDone(stage string) {
	now := time.Now()
	t.completed++

	t.logger.WithFields(Fields{
		"operation": t.operation,
		"stage":     stage,
		"completed": t.completed,
		"total":     t.total,
		"elapsed":   now.Sub(t.stageStart).String(),
	}).Info("Stage completed")

	t.stageStart = now
}

// Done logs the completion of the whole operation.
func (t *StageTracker) Done() {
	t.logger.WithFields(Fields{
		"operation": t.operation,
		"stages":    t.completed,
		"duration":  time.Since(t.startTime).String(),
	}).Info("Operation completed")
}
