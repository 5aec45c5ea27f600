package flatten

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/bjulian5/flattengit/internal/git"
)

// Publisher pushes the mirror branch when a run changed it
type Publisher struct {
	git    GitClient
	remote string
	branch string
	dryRun bool
	logger *log.Logger
}

// ShouldPublish decides whether plan's outcome needs a push, and whether it must be forced.
// A full copy always publishes with force because the mirror may have diverged;
// a replay only publishes when it added commits, and history is additive.
func ShouldPublish(plan *Plan, commitsMade bool) (push bool, force bool) {
	switch plan.Kind {
	case PlanFullCopy:
		return true, true
	case PlanReplay:
		return commitsMade, false
	}
	return false, false
}

// Publish pushes the mirror branch if the gate allows it and reports whether a push happened
func (p *Publisher) Publish(ctx context.Context, plan *Plan, commitsMade bool) (bool, error) {
	push, force := ShouldPublish(plan, commitsMade)
	if !push {
		p.logger.Info("nothing to publish", "branch", p.branch)
		return false, nil
	}
	if p.dryRun {
		p.logger.Info("dry run: skipping push", "remote", p.remote, "branch", p.branch, "force", force)
		return false, nil
	}

	opts := git.PushOptions{Force: force, SetUpstream: force}
	if err := p.git.Push(ctx, p.remote, p.branch, opts); err != nil {
		if git.IsErrorType(err, git.PushRejected) {
			return false, fmt.Errorf("%s moved on %s during the run; the next run will resume from its new tip: %w", p.branch, p.remote, err)
		}
		return false, err
	}
	p.logger.Info("published", "remote", p.remote, "branch", p.branch, "force", force)
	return true, nil
}
