// Package workflow holds the on-site step ordering for a job order.
// Guards are pure functions that evaluate preconditions without side effects.
package workflow

import (
	"errors"
	"fmt"

	"fieldops-backend/internal/models"
)

var ErrNotAllowed = errors.New("workflow step not allowed")

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrNotAllowed, r.Reason)
}

func allow() GuardResult { return GuardResult{Allowed: true} }

func deny(format string, args ...interface{}) GuardResult {
	return GuardResult{Allowed: false, Reason: fmt.Sprintf(format, args...)}
}

// CanTransition evaluates a status change. Status only moves forward.
func CanTransition(from, to models.JobStatus) GuardResult {
	if !from.Valid() {
		return deny("unknown status %q", from)
	}
	if !to.Valid() {
		return deny("unknown status %q", to)
	}
	if to.Rank() <= from.Rank() {
		return deny("cannot move job from %s to %s", from, to)
	}
	return allow()
}

// CanSchedule evaluates assigning an operator and date.
func CanSchedule(status models.JobStatus) GuardResult {
	switch status {
	case models.JobStatusUnassigned, models.JobStatusScheduled:
		return allow()
	}
	return deny("job is already %s", status)
}

// CanArrive evaluates recording the operator's arrival. A multi-day job whose
// previous day was ended accepts a new arrival while in progress.
func CanArrive(p Progress) GuardResult {
	switch p.Status {
	case models.JobStatusScheduled:
		return allow()
	case models.JobStatusInProgress:
		if p.Arrived {
			return deny("arrival already recorded for this visit")
		}
		return allow()
	case models.JobStatusUnassigned:
		return deny("job has no operator assigned")
	}
	return deny("job is already %s", p.Status)
}

// CanEnter evaluates whether a workflow step accepts input.
func CanEnter(p Progress, step Step) GuardResult {
	if r := onSite(p); !r.Allowed {
		return r
	}
	switch step {
	case StepSilicaPlan:
		if p.SilicaSubmitted {
			return deny("silica exposure plan already submitted")
		}
		return allow()
	case StepWorkPerformed:
		if !p.SilicaSubmitted {
			return deny("submit the silica exposure plan first")
		}
		return allow()
	case StepStandby:
		return allow()
	case StepSignature:
		if !p.SilicaSubmitted {
			return deny("submit the silica exposure plan first")
		}
		if !p.WorkRecorded {
			return deny("record work performed before requesting a signature")
		}
		if p.StandbyActive {
			return deny("close the active standby log first")
		}
		return allow()
	}
	return deny("unknown step %q", step)
}

// CanComplete evaluates the terminal completion action. Either a signature
// or an explicit contact-not-on-site override is required.
func CanComplete(p Progress, signed, contactNotOnSite bool) GuardResult {
	if r := CanEnter(p, StepSignature); !r.Allowed {
		return r
	}
	if !signed && !contactNotOnSite {
		return deny("a customer signature or the contact-not-on-site override is required")
	}
	return allow()
}

// CanEndDay evaluates "End Day & Continue Tomorrow".
func CanEndDay(p Progress) GuardResult {
	if r := onSite(p); !r.Allowed {
		return r
	}
	if !p.MultiDay {
		return deny("job is not a multi-day job")
	}
	if !p.SilicaSubmitted {
		return deny("submit the silica exposure plan first")
	}
	if p.StandbyActive {
		return deny("close the active standby log first")
	}
	return allow()
}

func onSite(p Progress) GuardResult {
	switch p.Status {
	case models.JobStatusCompleted:
		return deny("job is already completed")
	case models.JobStatusInProgress:
	default:
		return deny("job is %s; record arrival first", p.Status)
	}
	if !p.Arrived {
		if p.MultiDay {
			return deny("day already ended; record arrival to continue")
		}
		return deny("record arrival first")
	}
	return allow()
}
