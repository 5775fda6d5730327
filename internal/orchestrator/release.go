package orchestrator

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/labsyspharm/release-tagger/internal/domain"
	"github.com/labsyspharm/release-tagger/internal/repository"
	"go.uber.org/zap"
)

// Operator-facing messages.
const (
	msgDirty          = "Repository has changes, commit changes before releasing for safety"
	msgCommitMissing  = "Commit is not on GitHub, push before releasing"
	msgTagExists      = "Tag already exists on GitHub, version number might need bumping"
	msgTagFailed      = "Tag creation failed"
	msgRefFailed      = "Tag reference creation failed"
	msgReleaseFailed  = "Release creation failed"
	msgCreatingTag    = "Creating tag..."
	msgCreatingRef    = "Creating tag reference..."
	msgCreatingRel    = "Creating release..."
	msgFetchingRemote = "Fetching newly created references..."
)

// ReleaseConfig contains configuration for the release workflow.
type ReleaseConfig struct {
	EnableRollback bool // Delete the tag reference when release creation fails
}

// ReleaseOrchestrator orchestrates tagging and publishing one release.
type ReleaseOrchestrator struct {
	gitRepo    repository.GitRepository
	githubRepo repository.GithubRepository
	out        io.Writer
	logger     *zap.Logger
	now        func() time.Time
}

// NewReleaseOrchestrator creates a new release orchestrator printing status lines to out.
func NewReleaseOrchestrator(
	gitRepo repository.GitRepository,
	githubRepo repository.GithubRepository,
	out io.Writer,
	logger *zap.Logger,
) *ReleaseOrchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReleaseOrchestrator{
		gitRepo:    gitRepo,
		githubRepo: githubRepo,
		out:        out,
		logger:     logger,
		now:        time.Now,
	}
}

// Execute runs the release workflow for rc. The first failing step aborts the
// run with a *domain.StepError; the final remote sync never fails the run.
func (o *ReleaseOrchestrator) Execute(ctx context.Context, rc *ReleaseContext, cfg ReleaseConfig) error {
	saga := NewSagaExecutor(o.logger, cfg.EnableRollback)
	saga.SetVersion(rc.Version.String())
	log := o.logger.With(
		zap.String("run_id", saga.RunID()),
		zap.String("version", rc.Version.String()),
		zap.String("head", rc.Head),
	)
	if sv := rc.Version.Semver(); sv != nil {
		log = log.With(zap.String("semver", sv.String()))
	}
	log.Info("starting release", zap.String("project", rc.Project))
	acts := NewCompensatingActions(o.githubRepo, log)
	o.addPreconditionSteps(saga, rc)
	var tagSHA string
	saga.AddStep(SagaStep{
		Name: "Create tag",
		Type: domain.StepCreateTag,
		Execute: func(ctx context.Context) (map[string]any, error) {
			o.println(msgCreatingTag)
			payload := domain.NewTagPayload(rc.Version, rc.Head, rc.Identity, o.now())
			sha, res := o.githubRepo.CreateTag(ctx, payload)
			if !res.OK {
				return nil, remoteStepError(domain.StepCreateTag, msgTagFailed, res)
			}
			tagSHA = sha
			log.Info("created tag object", zap.String("tag_sha", sha))
			return map[string]any{rollbackKeyTag: rc.Version.TagName(), rollbackKeyTagSHA: sha}, nil
		},
	})
	saga.AddStep(SagaStep{
		Name: "Create tag reference",
		Type: domain.StepCreateTagRef,
		Execute: func(ctx context.Context) (map[string]any, error) {
			o.println(msgCreatingRef)
			res := o.githubRepo.CreateRef(ctx, domain.NewRefPayload(rc.Version, tagSHA))
			if !res.OK {
				return nil, remoteStepError(domain.StepCreateTagRef, msgRefFailed, res)
			}
			return map[string]any{rollbackKeyTag: rc.Version.TagName()}, nil
		},
		Compensate: acts.DeleteTagRef,
	})
	saga.AddStep(SagaStep{
		Name: "Create release",
		Type: domain.StepCreateRelease,
		Execute: func(ctx context.Context) (map[string]any, error) {
			o.println(msgCreatingRel)
			res := o.githubRepo.CreateRelease(ctx, domain.NewReleasePayload(rc.Version, rc.Project))
			if !res.OK {
				return nil, remoteStepError(domain.StepCreateRelease, msgReleaseFailed, res)
			}
			return nil, nil
		},
	})
	if err := saga.Execute(ctx); err != nil {
		if tagSHA != "" {
			acts.WarnOrphanedTag(map[string]any{rollbackKeyTag: rc.Version.TagName(), rollbackKeyTagSHA: tagSHA})
		}
		log.Error("release failed", zap.Error(err))
		return err
	}
	o.syncRemotes(ctx, rc, log)
	color.New(color.FgGreen).Fprintf(o.out, "Successful release of %s %s\n", rc.Project, rc.Version)
	log.Info("release completed")
	return nil
}

// addPreconditionSteps adds the read-only checks that must pass before anything is created.
func (o *ReleaseOrchestrator) addPreconditionSteps(saga *SagaExecutor, rc *ReleaseContext) {
	saga.AddStep(SagaStep{
		Name: "Check working tree",
		Type: domain.StepDirtyCheck,
		Execute: func(ctx context.Context) (map[string]any, error) {
			dirty, err := o.gitRepo.IsDirty(ctx)
			if err != nil {
				return nil, err
			}
			if dirty {
				return nil, &domain.StepError{
					Step:    domain.StepDirtyCheck,
					Message: msgDirty,
					Kind:    domain.ErrDirtyRepository,
				}
			}
			return nil, nil
		},
	})
	saga.AddStep(SagaStep{
		Name: "Check commit is pushed",
		Type: domain.StepCommitExists,
		Execute: func(ctx context.Context) (map[string]any, error) {
			res := o.githubRepo.GetCommit(ctx, rc.Head)
			if !res.OK {
				return nil, remoteStepError(domain.StepCommitExists, msgCommitMissing, res)
			}
			return nil, nil
		},
	})
	saga.AddStep(SagaStep{
		Name: "Check tag is free",
		Type: domain.StepTagAbsent,
		Execute: func(ctx context.Context) (map[string]any, error) {
			res := o.githubRepo.GetTagRef(ctx, rc.Version.TagName())
			if !res.NotFound() {
				return nil, remoteStepError(domain.StepTagAbsent, msgTagExists, res)
			}
			return nil, nil
		},
	})
}

// syncRemotes fetches every remote so the new tag shows up locally. Failures are only logged.
func (o *ReleaseOrchestrator) syncRemotes(ctx context.Context, rc *ReleaseContext, log *zap.Logger) {
	o.println(msgFetchingRemote)
	remotes, err := o.gitRepo.Remotes(ctx)
	if err != nil {
		log.Warn("failed to list remotes", zap.Error(err))
		return
	}
	for _, name := range remotes {
		if err := o.gitRepo.FetchRemote(ctx, name, rc.Credential); err != nil {
			log.Warn("failed to fetch remote", zap.String("remote", name), zap.Error(err))
		}
	}
}

func (o *ReleaseOrchestrator) println(msg string) {
	fmt.Fprintln(o.out, msg)
}

func remoteStepError(step domain.StepType, message string, res repository.Result) *domain.StepError {
	return &domain.StepError{
		Step:    step,
		Message: message,
		Status:  res.Status,
		Kind:    domain.ErrRemoteAPI,
		Err:     res.Err,
	}
}
