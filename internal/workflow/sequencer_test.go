package workflow_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"fieldops-backend/internal/models"
	"fieldops-backend/internal/workflow"
)

func stateOf(v workflow.View, s workflow.Step) workflow.StepView {
	for _, sv := range v.Steps {
		if sv.Step == s {
			return sv
		}
	}
	return workflow.StepView{}
}

func TestSequence_FreshArrivalStartsWithSilicaPlan(t *testing.T) {
	v := workflow.Sequence(uuid.New(), workflow.Progress{Status: models.JobStatusInProgress, Arrived: true})

	assert.Equal(t, workflow.StepSilicaPlan, v.Current)
	assert.True(t, stateOf(v, workflow.StepSilicaPlan).Enterable)
	assert.Equal(t, workflow.StateLocked, stateOf(v, workflow.StepWorkPerformed).State)
	assert.True(t, stateOf(v, workflow.StepStandby).Enterable)
	assert.Equal(t, workflow.StateLocked, stateOf(v, workflow.StepSignature).State)
	assert.Empty(t, v.Actions)
}

func TestSequence_SubmittedSilicaPlanIsRoutedPast(t *testing.T) {
	v := workflow.Sequence(uuid.New(), workflow.Progress{
		Status:          models.JobStatusInProgress,
		Arrived:         true,
		SilicaSubmitted: true,
	})

	silica := stateOf(v, workflow.StepSilicaPlan)
	assert.Equal(t, workflow.StateAlreadySubmitted, silica.State)
	assert.False(t, silica.Enterable)
	assert.Equal(t, workflow.StepWorkPerformed, v.Current)
}

func TestSequence_ActiveStandbyBlocksSignature(t *testing.T) {
	v := workflow.Sequence(uuid.New(), workflow.Progress{
		Status:          models.JobStatusInProgress,
		Arrived:         true,
		SilicaSubmitted: true,
		WorkRecorded:    true,
		StandbyActive:   true,
	})

	assert.Equal(t, workflow.StepStandby, v.Current)
	assert.Equal(t, workflow.StateActive, stateOf(v, workflow.StepStandby).State)
	assert.NotContains(t, v.Actions, workflow.ActionCompleteJob)
}

func TestSequence_ReadyForSignature(t *testing.T) {
	v := workflow.Sequence(uuid.New(), workflow.Progress{
		Status:          models.JobStatusInProgress,
		Arrived:         true,
		SilicaSubmitted: true,
		WorkRecorded:    true,
	})

	assert.Equal(t, workflow.StepSignature, v.Current)
	assert.Equal(t, []workflow.Action{workflow.ActionCompleteJob}, v.Actions)
}

func TestSequence_MultiDayOffersBothTerminalActions(t *testing.T) {
	v := workflow.Sequence(uuid.New(), workflow.Progress{
		Status:          models.JobStatusInProgress,
		Arrived:         true,
		SilicaSubmitted: true,
		WorkRecorded:    true,
		MultiDay:        true,
	})

	assert.ElementsMatch(t, []workflow.Action{workflow.ActionCompleteJob, workflow.ActionEndDay}, v.Actions)
}

func TestSequence_EndedDayOffersOnlyArrival(t *testing.T) {
	v := workflow.Sequence(uuid.New(), workflow.Progress{
		Status:          models.JobStatusInProgress,
		Arrived:         false,
		SilicaSubmitted: true,
		WorkRecorded:    true,
		MultiDay:        true,
	})

	assert.True(t, v.DayEnded)
	assert.Equal(t, []workflow.Action{workflow.ActionArrive}, v.Actions)
	assert.Empty(t, v.Current)
}

func TestSequence_CompletedJobHasNoActions(t *testing.T) {
	v := workflow.Sequence(uuid.New(), workflow.Progress{
		Status:            models.JobStatusCompleted,
		Arrived:           true,
		SilicaSubmitted:   true,
		WorkRecorded:      true,
		SignatureCaptured: true,
	})

	assert.Empty(t, v.Actions)
	for _, sv := range v.Steps {
		assert.Equal(t, workflow.StateDone, sv.State, sv.Step)
		assert.False(t, sv.Enterable, sv.Step)
	}
}
