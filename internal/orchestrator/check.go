package orchestrator

import (
	"context"
	"fmt"
)

// Check runs the read-only preconditions of a release without creating anything.
func (o *ReleaseOrchestrator) Check(ctx context.Context, rc *ReleaseContext) error {
	saga := NewSagaExecutor(o.logger, false)
	saga.SetVersion(rc.Version.String())
	o.addPreconditionSteps(saga, rc)
	if err := saga.Execute(ctx); err != nil {
		return err
	}
	fmt.Fprintf(o.out, "Ready to release %s %s (tag %s)\n", rc.Project, rc.Version, rc.Version.TagName())
	return nil
}
