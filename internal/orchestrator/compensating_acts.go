package orchestrator

import (
	"context"
	"fmt"

	"github.com/labsyspharm/release-tagger/internal/domain"
	"github.com/labsyspharm/release-tagger/internal/repository"
	"go.uber.org/zap"
)

// Keys of the rollback data recorded by release steps.
const (
	rollbackKeyTag    = "tag"
	rollbackKeyTagSHA = "tag_sha"
)

// CompensatingActions provides idempotent rollback operations for release steps
type CompensatingActions struct {
	githubRepo repository.GithubRepository
	logger     *zap.Logger
}

// NewCompensatingActions creates a new compensating actions handler
func NewCompensatingActions(githubRepo repository.GithubRepository, logger *zap.Logger) *CompensatingActions {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CompensatingActions{
		githubRepo: githubRepo,
		logger:     logger,
	}
}

// DeleteTagRef removes the tag reference created by this run. A reference that
// is already gone counts as removed.
func (ca *CompensatingActions) DeleteTagRef(ctx context.Context, rollbackData map[string]any) error {
	tag, ok := rollbackData[rollbackKeyTag].(string)
	if !ok || tag == "" {
		return fmt.Errorf("tag not found in rollback data")
	}
	res := ca.githubRepo.DeleteTagRef(ctx, tag)
	if res.NotFound() {
		ca.logger.Info("tag reference already absent", zap.String("tag", tag))
		return nil
	}
	if !res.OK {
		if res.Err != nil {
			return fmt.Errorf("%w: failed to delete tag reference %s (status %d): %w",
				domain.ErrRemoteAPI, tag, res.Status, res.Err)
		}
		return fmt.Errorf("%w: failed to delete tag reference %s (status %d)", domain.ErrRemoteAPI, tag, res.Status)
	}
	ca.logger.Info("deleted tag reference", zap.String("tag", tag))
	return nil
}

// WarnOrphanedTag logs the tag object left behind by a failed run. The hosting
// API offers no way to delete tag objects.
func (ca *CompensatingActions) WarnOrphanedTag(rollbackData map[string]any) {
	sha, _ := rollbackData[rollbackKeyTagSHA].(string)
	if sha == "" {
		return
	}
	tag, _ := rollbackData[rollbackKeyTag].(string)
	ca.logger.Warn("tag object left on the remote without a release",
		zap.String("tag", tag),
		zap.String("tag_sha", sha))
}
