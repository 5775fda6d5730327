package orchestrator

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/labsyspharm/release-tagger/internal/domain"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

// SagaStep represents a single step in the release workflow
type SagaStep struct {
	Name       string
	Type       domain.StepType
	Execute    func(ctx context.Context) (rollbackData map[string]any, err error)
	Compensate func(ctx context.Context, rollbackData map[string]any) error
}

// SagaExecutor runs release steps in order, stopping at the first failure.
// Steps run exactly once; only compensating actions are retried.
type SagaExecutor struct {
	runID          string
	state          *domain.ReleaseState
	steps          []SagaStep
	enableRollback bool
	logger         *zap.Logger
}

// NewSagaExecutor creates a new saga executor
func NewSagaExecutor(logger *zap.Logger, enableRollback bool) *SagaExecutor {
	runID := uuid.New().String()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SagaExecutor{
		runID:          runID,
		state:          domain.NewReleaseState(runID),
		steps:          []SagaStep{},
		enableRollback: enableRollback,
		logger:         logger.With(zap.String("run_id", runID)),
	}
}

// AddStep adds a step to the saga
func (s *SagaExecutor) AddStep(step SagaStep) {
	s.steps = append(s.steps, step)
	s.state.AddStep(step.Type)
}

// Execute runs the steps, compensating completed ones on failure when rollback is enabled.
func (s *SagaExecutor) Execute(ctx context.Context) error {
	s.state.Status = domain.WorkflowStatusRunning
	for _, step := range s.steps {
		if err := s.executeStep(ctx, step); err != nil {
			s.state.MarkStepFailed(step.Type, err)
			s.logger.Debug("step failed", zap.String("step", step.Name), zap.Error(err))
			if s.enableRollback {
				// Compensation must finish even if the caller was interrupted.
				rollbackCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), RollbackTimeout)
				rollbackErr := s.rollback(rollbackCtx)
				cancel()
				if rollbackErr != nil {
					return fmt.Errorf("step '%s' failed: %w, rollback also failed: %v",
						step.Name, err, rollbackErr)
				}
			}
			return fmt.Errorf("step '%s' failed: %w", step.Name, err)
		}
	}
	s.state.Status = domain.WorkflowStatusCompleted
	return nil
}

func (s *SagaExecutor) executeStep(ctx context.Context, step SagaStep) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.state.MarkStepStarted(step.Type)
	s.logger.Debug("step started", zap.String("step", step.Name))
	rollbackData, err := step.Execute(ctx)
	if err != nil {
		return err
	}
	s.state.MarkStepCompleted(step.Type, rollbackData)
	s.logger.Debug("step completed", zap.String("step", step.Name))
	return nil
}

// Rollback executes compensating actions for completed steps
func (s *SagaExecutor) Rollback(ctx context.Context) error {
	return s.rollback(ctx)
}

func (s *SagaExecutor) rollback(ctx context.Context) error {
	completed := s.state.GetCompletedSteps()
	s.logger.Info("starting rollback", zap.Int("completed_steps", len(completed)))
	for _, record := range completed {
		select {
		case <-ctx.Done():
			return fmt.Errorf("rollback canceled: %w", ctx.Err())
		default:
		}
		step := s.findStepByType(record.Type)
		if step == nil || step.Compensate == nil {
			continue
		}
		s.logger.Info("rolling back", zap.String("step", step.Name))
		if err := s.executeCompensation(ctx, step, record.RollbackData); err != nil {
			s.logger.Error("rollback failed", zap.String("step", step.Name), zap.Error(err))
			return fmt.Errorf("rollback failed for %s: %w", step.Name, err)
		}
		s.state.MarkStepRolledBack(record.Type)
	}
	s.state.Status = domain.WorkflowStatusRolledBack
	s.logger.Info("rollback completed")
	return nil
}

// executeCompensation executes a compensating action with retry
func (s *SagaExecutor) executeCompensation(ctx context.Context, step *SagaStep, rollbackData map[string]any) error {
	retryStrategy := retry.WithMaxRetries(DefaultRetryCount, retry.NewExponential(DefaultRetryDelay))
	return retry.Do(ctx, retryStrategy, func(retryCtx context.Context) error {
		select {
		case <-retryCtx.Done():
			return retryCtx.Err()
		default:
		}
		if err := step.Compensate(retryCtx, rollbackData); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}

func (s *SagaExecutor) findStepByType(stepType domain.StepType) *SagaStep {
	for i := range s.steps {
		if s.steps[i].Type == stepType {
			return &s.steps[i]
		}
	}
	return nil
}

// RunID returns the identifier of this run
func (s *SagaExecutor) RunID() string {
	return s.runID
}

// GetState returns the current saga state
func (s *SagaExecutor) GetState() *domain.ReleaseState {
	return s.state
}

// SetVersion sets the version in the state
func (s *SagaExecutor) SetVersion(version string) {
	s.state.Version = version
}
