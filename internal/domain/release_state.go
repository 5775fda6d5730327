package domain

import (
	"time"
)

// WorkflowStatus represents the overall status of a release run
type WorkflowStatus string

const (
	WorkflowStatusPending    WorkflowStatus = "pending"
	WorkflowStatusRunning    WorkflowStatus = "running"
	WorkflowStatusCompleted  WorkflowStatus = "completed"
	WorkflowStatusFailed     WorkflowStatus = "failed"
	WorkflowStatusRolledBack WorkflowStatus = "rolled_back"
)

// StepStatus represents the status of an individual step
type StepStatus string

const (
	StepStatusPending    StepStatus = "pending"
	StepStatusRunning    StepStatus = "running"
	StepStatusCompleted  StepStatus = "completed"
	StepStatusFailed     StepStatus = "failed"
	StepStatusRolledBack StepStatus = "rolled_back"
)

// StepType identifies a release step.
type StepType string

const (
	StepDirtyCheck    StepType = "dirty_check"
	StepCommitExists  StepType = "commit_exists"
	StepTagAbsent     StepType = "tag_absent"
	StepCreateTag     StepType = "create_tag"
	StepCreateTagRef  StepType = "create_tag_ref"
	StepCreateRelease StepType = "create_release"
	StepSyncRemotes   StepType = "sync_remotes"
)

// ReleaseState is the in-memory record of one release run. It is never persisted.
type ReleaseState struct {
	RunID     string
	StartedAt time.Time
	UpdatedAt time.Time
	Version   string
	Steps     []StepRecord
	Status    WorkflowStatus
	Error     string
}

// StepRecord represents a single step in the run
type StepRecord struct {
	Type         StepType
	Status       StepStatus
	StartedAt    time.Time
	CompletedAt  *time.Time
	RollbackData map[string]any
	Error        string
}

// NewReleaseState creates a new release state
func NewReleaseState(runID string) *ReleaseState {
	now := time.Now()
	return &ReleaseState{
		RunID:     runID,
		StartedAt: now,
		UpdatedAt: now,
		Steps:     []StepRecord{},
		Status:    WorkflowStatusPending,
	}
}

// AddStep registers a pending step.
func (rs *ReleaseState) AddStep(stepType StepType) *StepRecord {
	rs.Steps = append(rs.Steps, StepRecord{
		Type:   stepType,
		Status: StepStatusPending,
	})
	rs.UpdatedAt = time.Now()
	return &rs.Steps[len(rs.Steps)-1]
}

// Step returns the record for stepType, or nil.
func (rs *ReleaseState) Step(stepType StepType) *StepRecord {
	for i := range rs.Steps {
		if rs.Steps[i].Type == stepType {
			return &rs.Steps[i]
		}
	}
	return nil
}

// GetCompletedSteps returns all successfully completed steps in reverse order
func (rs *ReleaseState) GetCompletedSteps() []StepRecord {
	var completed []StepRecord
	for i := len(rs.Steps) - 1; i >= 0; i-- {
		if rs.Steps[i].Status == StepStatusCompleted {
			completed = append(completed, rs.Steps[i])
		}
	}
	return completed
}

// MarkStepStarted marks a step as running
func (rs *ReleaseState) MarkStepStarted(stepType StepType) {
	if step := rs.Step(stepType); step != nil && step.Status == StepStatusPending {
		step.Status = StepStatusRunning
		step.StartedAt = time.Now()
		rs.UpdatedAt = step.StartedAt
	}
}

// MarkStepCompleted marks a step as completed with its rollback data
func (rs *ReleaseState) MarkStepCompleted(stepType StepType, rollbackData map[string]any) {
	now := time.Now()
	if step := rs.Step(stepType); step != nil && step.Status == StepStatusRunning {
		step.Status = StepStatusCompleted
		step.CompletedAt = &now
		step.RollbackData = rollbackData
		rs.UpdatedAt = now
	}
}

// MarkStepFailed marks a step and the run as failed
func (rs *ReleaseState) MarkStepFailed(stepType StepType, err error) {
	now := time.Now()
	if step := rs.Step(stepType); step != nil && step.Status == StepStatusRunning {
		step.Status = StepStatusFailed
		step.CompletedAt = &now
		step.Error = err.Error()
		rs.UpdatedAt = now
	}
	rs.Status = WorkflowStatusFailed
	rs.Error = err.Error()
}

// MarkStepRolledBack marks a completed step as compensated
func (rs *ReleaseState) MarkStepRolledBack(stepType StepType) {
	if step := rs.Step(stepType); step != nil && step.Status == StepStatusCompleted {
		step.Status = StepStatusRolledBack
		rs.UpdatedAt = time.Now()
	}
}
