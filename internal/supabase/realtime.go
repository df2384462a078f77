package supabase

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
)

// Job event names written to the job_events table. Clients subscribe to the
// table through Supabase Realtime.
const (
	EventJobScheduled      = "job.scheduled"
	EventJobArrived        = "job.arrived"
	EventSilicaSubmitted   = "job.silica_submitted"
	EventWorkRecorded      = "job.work_recorded"
	EventStandbyStarted    = "job.standby_started"
	EventStandbyStopped    = "job.standby_stopped"
	EventDayEnded          = "job.day_ended"
	EventJobCompleted      = "job.completed"
	EventDocumentGenerated = "job.document_generated"
	EventDocumentFailed    = "job.document_failed"
	EventStatusRepaired    = "job.status_repaired"
)

type RealtimeClient struct {
	client *supabase.Client
}

func NewRealtimeClient(client *supabase.Client) *RealtimeClient {
	return &RealtimeClient{
		client: client,
	}
}

// PublishJobEvent appends an event row for a job. Database writes fan out to
// Realtime subscribers.
func (r *RealtimeClient) PublishJobEvent(jobID uuid.UUID, event string, payload map[string]interface{}) error {
	if r == nil || r.client == nil {
		return nil
	}
	row := map[string]interface{}{
		"job_id":     jobID.String(),
		"event":      event,
		"payload":    payload,
		"created_at": time.Now().UTC(),
	}
	if _, _, err := r.client.From("job_events").Insert(row, false, "", "minimal", "").Execute(); err != nil {
		return fmt.Errorf("failed to publish %s for job %s: %w", event, jobID, err)
	}
	return nil
}

// Notify publishes and logs failures. Events are advisory and never fail the
// caller's operation.
func (r *RealtimeClient) Notify(jobID uuid.UUID, event string, payload map[string]interface{}) {
	if err := r.PublishJobEvent(jobID, event, payload); err != nil {
		log.Printf("Warning: %v", err)
	}
}

func StatusPayload(from, to string) map[string]interface{} {
	return map[string]interface{}{
		"from": from,
		"to":   to,
	}
}

func DocumentPayload(kind, path string) map[string]interface{} {
	return map[string]interface{}{
		"kind": kind,
		"path": path,
	}
}

func DocumentFailedPayload(kind, errorMsg string) map[string]interface{} {
	return map[string]interface{}{
		"kind":  kind,
		"error": errorMsg,
	}
}
