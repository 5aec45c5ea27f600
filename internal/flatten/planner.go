package flatten

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/bjulian5/flattengit/internal/logging"
)

// DefaultMaxCommits is the range size above which cherry-picking stops paying off
const DefaultMaxCommits = 100

// Planner computes the revision range for a run
type Planner struct {
	git        GitClient
	maxCommits int
	logger     *log.Logger
}

// NewPlanner creates a planner. maxCommits <= 0 selects DefaultMaxCommits.
func NewPlanner(gitClient GitClient, maxCommits int, logger *log.Logger) *Planner {
	if maxCommits <= 0 {
		maxCommits = DefaultMaxCommits
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Planner{git: gitClient, maxCommits: maxCommits, logger: logger}
}

// Plan decides between a no-op, a full copy and a replay of (previous, current].
// An empty previous means no resume point is known.
func (p *Planner) Plan(ctx context.Context, previous, current string) (*Plan, error) {
	if previous == "" {
		return newFullCopyPlan(previous, current, ReasonNoPrevious), nil
	}

	isAncestor, err := p.git.IsAncestor(ctx, previous, current)
	if err != nil {
		return nil, err
	}
	if !isAncestor {
		p.logger.Warn("source history was rewritten past the resume point", "previous", previous, "current", current)
		return newFullCopyPlan(previous, current, ReasonNotAncestor), nil
	}

	commits, err := p.git.Log(ctx, previous, current)
	if err != nil {
		return nil, err
	}
	if len(commits) > p.maxCommits {
		p.logger.Info(fmt.Sprintf("%d commits is too many to cherry pick", len(commits)), "max", p.maxCommits)
		return newFullCopyPlan(previous, current, ReasonTooManyCommits), nil
	}

	plan := BuildReplayPlan(previous, current, commits)
	if plan.Kind == PlanReplay {
		p.logger.Info(fmt.Sprintf("%d commits to cherry pick", len(plan.Commits)), "max", p.maxCommits)
	}
	return plan, nil
}
