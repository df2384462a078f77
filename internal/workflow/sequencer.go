package workflow

import (
	"github.com/google/uuid"

	"fieldops-backend/internal/models"
)

type Step string

const (
	StepSilicaPlan    Step = "silica_plan"
	StepWorkPerformed Step = "work_performed"
	StepStandby       Step = "standby"
	StepSignature     Step = "signature"
)

// Steps in display order. Standby has no fixed position before signature.
var Steps = []Step{StepSilicaPlan, StepWorkPerformed, StepStandby, StepSignature}

type StepState string

const (
	StateLocked           StepState = "locked"
	StateOpen             StepState = "open"
	StateActive           StepState = "active"
	StateDone             StepState = "done"
	StateAlreadySubmitted StepState = "already_submitted"
)

type Action string

const (
	ActionCompleteJob Action = "complete_job"
	ActionEndDay      Action = "end_day"
	ActionArrive      Action = "arrive"
)

// Progress is the set of completion flags the sequencer reads.
type Progress struct {
	Status            models.JobStatus
	Arrived           bool
	SilicaSubmitted   bool
	WorkRecorded      bool
	StandbyActive     bool
	SignatureCaptured bool
	ContactNotOnSite  bool
	MultiDay          bool
}

type StepView struct {
	Step      Step      `json:"step"`
	State     StepState `json:"state"`
	Enterable bool      `json:"enterable"`
	Reason    string    `json:"reason,omitempty"`
}

type View struct {
	JobID   uuid.UUID        `json:"job_id"`
	Status  models.JobStatus `json:"status"`
	Current Step             `json:"current_step,omitempty"`
	Steps   []StepView       `json:"steps"`
	Actions []Action         `json:"actions"`
	// DayEnded is set on a multi-day job between End Day and the next arrival.
	DayEnded bool `json:"day_ended"`
}

// Sequence computes the next required step, per-step enterability and the
// terminal actions offered for this visit.
func Sequence(jobID uuid.UUID, p Progress) View {
	v := View{
		JobID:    jobID,
		Status:   p.Status,
		Steps:    make([]StepView, 0, len(Steps)),
		Actions:  []Action{},
		DayEnded: p.Status == models.JobStatusInProgress && p.MultiDay && !p.Arrived,
	}

	for _, s := range Steps {
		g := CanEnter(p, s)
		sv := StepView{Step: s, State: stepState(p, s, g), Enterable: g.Allowed}
		if !g.Allowed {
			sv.Reason = g.Reason
		}
		v.Steps = append(v.Steps, sv)
	}

	if CanArrive(p).Allowed {
		v.Actions = append(v.Actions, ActionArrive)
	}
	if p.Status != models.JobStatusInProgress || !p.Arrived {
		return v
	}

	v.Current = currentStep(p)
	if v.Current == StepSignature && CanEnter(p, StepSignature).Allowed {
		v.Actions = append(v.Actions, ActionCompleteJob)
	}
	if CanEndDay(p).Allowed {
		v.Actions = append(v.Actions, ActionEndDay)
	}
	return v
}

func currentStep(p Progress) Step {
	switch {
	case !p.SilicaSubmitted:
		return StepSilicaPlan
	case !p.WorkRecorded:
		return StepWorkPerformed
	case p.StandbyActive:
		return StepStandby
	}
	return StepSignature
}

func stepState(p Progress, s Step, g GuardResult) StepState {
	if p.Status == models.JobStatusCompleted {
		return StateDone
	}
	switch s {
	case StepSilicaPlan:
		if p.SilicaSubmitted {
			return StateAlreadySubmitted
		}
	case StepWorkPerformed:
		if p.WorkRecorded {
			return StateDone
		}
	case StepStandby:
		if p.StandbyActive {
			return StateActive
		}
	case StepSignature:
		if p.SignatureCaptured || p.ContactNotOnSite {
			return StateDone
		}
	}
	if g.Allowed {
		return StateOpen
	}
	return StateLocked
}
