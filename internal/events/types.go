// internal/events/types.go
package events

import (
	"time"
)

// EventType represents the type of event.
type EventType string

const (
	RunStarted     EventType = "airdrop.started"
	BatchSucceeded EventType = "airdrop.batch.succeeded"
	BatchFailed    EventType = "airdrop.batch.failed"
	RunFinished    EventType = "airdrop.finished"
)

// AllTypes lists every event the airdrop loop emits.
var AllTypes = []EventType{RunStarted, BatchSucceeded, BatchFailed, RunFinished}

// Event is the base interface for all events.
type Event interface {
	Type() EventType
	Timestamp() time.Time
}

// BaseEvent provides common fields for all events.
type BaseEvent struct {
	EventType EventType
	EventTime time.Time
}

// Type returns the event type.
func (e BaseEvent) Type() EventType {
	return e.EventType
}

// Timestamp returns when the event occurred.
func (e BaseEvent) Timestamp() time.Time {
	return e.EventTime
}

func newBase(t EventType) BaseEvent {
	return BaseEvent{EventType: t, EventTime: time.Now()}
}

// RunStartedEvent is emitted once before the first batch.
type RunStartedEvent struct {
	BaseEvent
	TokenMint       string
	TotalRecipients int
	TotalBatches    int
}

// NewRunStarted builds a RunStartedEvent stamped now.
func NewRunStarted(mint string, recipients, batches int) RunStartedEvent {
	return RunStartedEvent{
		BaseEvent:       newBase(RunStarted),
		TokenMint:       mint,
		TotalRecipients: recipients,
		TotalBatches:    batches,
	}
}

// BatchEvent reports the outcome of one batch. Index is 1-based.
type BatchEvent struct {
	BaseEvent
	Index     int
	Total     int
	Size      int
	Signature string
	Err       error
}

// NewBatchSucceeded builds a BatchSucceeded event.
func NewBatchSucceeded(index, total, size int, signature string) BatchEvent {
	return BatchEvent{
		BaseEvent: newBase(BatchSucceeded),
		Index:     index,
		Total:     total,
		Size:      size,
		Signature: signature,
	}
}

// NewBatchFailed builds a BatchFailed event.
func NewBatchFailed(index, total, size int, err error) BatchEvent {
	return BatchEvent{
		BaseEvent: newBase(BatchFailed),
		Index:     index,
		Total:     total,
		Size:      size,
		Err:       err,
	}
}

// RunFinishedEvent is emitted once after the last batch.
type RunFinishedEvent struct {
	BaseEvent
	Successful    int
	Failed        int
	SpentLamports int64
}

// NewRunFinished builds a RunFinishedEvent stamped now.
func NewRunFinished(successful, failed int, spent int64) RunFinishedEvent {
	return RunFinishedEvent{
		BaseEvent:     newBase(RunFinished),
		Successful:    successful,
		Failed:        failed,
		SpentLamports: spent,
	}
}
