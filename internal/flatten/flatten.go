// Package flatten maintains a linear mirror of a source branch. Each run
// replays the source commits added since the previous run onto the mirror,
// collapsing merges, and records the source revision in a commit trailer so
// the next run knows where to resume.
package flatten

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/bjulian5/flattengit/internal/logging"
	"github.com/bjulian5/flattengit/internal/trailer"
)

// ErrNoCurrentCommit is returned when a run is started without a target commit
var ErrNoCurrentCommit = errors.New("current commit is required")

// Options configures a Flattener
type Options struct {
	SourceBranch string
	MirrorRemote string
	// MirrorPrefix is prepended to SourceBranch to name the mirror branch.
	MirrorPrefix   string
	MaxCommits     int
	CherryPickArgs []string
	// ForceFullCopy skips incremental planning.
	ForceFullCopy bool
	DryRun        bool
}

// MirrorBranch returns the name of the flattened branch
func (o Options) MirrorBranch() string {
	return o.MirrorPrefix + o.SourceBranch
}

// ResumePoint is the state recovered from the mirror branch
type ResumePoint struct {
	// MirrorHead is the remote mirror tip, empty when the branch does not exist.
	MirrorHead string
	Record     trailer.Record
	Found      bool
}

// Result describes a completed run
type Result struct {
	Resume ResumePoint
	Plan   *Plan
	Report *Report
	Pushed bool
}

// Flattener runs the flatten pipeline on one working copy
type Flattener struct {
	git       GitClient
	opts      Options
	logger    *log.Logger
	planner   *Planner
	engine    *Engine
	publisher *Publisher
}

// New creates a Flattener
func New(gitClient GitClient, opts Options, logger *log.Logger) *Flattener {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Flattener{
		git:     gitClient,
		opts:    opts,
		logger:  logger,
		planner: NewPlanner(gitClient, opts.MaxCommits, logger),
		engine:  NewEngine(gitClient, opts.CherryPickArgs, logger),
		publisher: &Publisher{
			git:    gitClient,
			remote: opts.MirrorRemote,
			branch: opts.MirrorBranch(),
			dryRun: opts.DryRun,
			logger: logger,
		},
	}
}

// ResumePoint reads the trailer of the mirror branch's remote tip
func (f *Flattener) ResumePoint(ctx context.Context) (ResumePoint, error) {
	heads, err := f.git.ListRemoteHeads(ctx, f.opts.MirrorRemote)
	if err != nil {
		return ResumePoint{}, err
	}
	mirrorHead, ok := heads[f.opts.MirrorBranch()]
	if !ok {
		f.logger.Info("mirror branch does not exist yet", "branch", f.opts.MirrorBranch())
		return ResumePoint{}, nil
	}

	message, err := f.git.GetCommitMessage(ctx, mirrorHead)
	if err != nil {
		return ResumePoint{}, err
	}
	f.logger.Debug("previous commit message", "message", message)

	rec, found := trailer.Extract(message)
	if !found {
		f.logger.Warn("mirror branch has no revision trailer", "head", mirrorHead)
	}
	return ResumePoint{MirrorHead: mirrorHead, Record: rec, Found: found}, nil
}

// Plan computes what a run against current would do, without changing the working copy
func (f *Flattener) Plan(ctx context.Context, current string) (ResumePoint, *Plan, error) {
	if current == "" {
		return ResumePoint{}, nil, ErrNoCurrentCommit
	}
	currentHash, err := f.git.GetCommitHash(ctx, current)
	if err != nil {
		return ResumePoint{}, nil, err
	}

	resume, err := f.ResumePoint(ctx)
	if err != nil {
		return ResumePoint{}, nil, err
	}
	if f.opts.ForceFullCopy {
		return resume, newFullCopyPlan(resume.Record.SourceRevision, currentHash, ReasonForced), nil
	}

	plan, err := f.planner.Plan(ctx, resume.Record.SourceRevision, currentHash)
	if err != nil {
		return resume, nil, err
	}
	return resume, plan, nil
}

// Run flattens the source branch up to current and publishes the mirror
func (f *Flattener) Run(ctx context.Context, current string) (*Result, error) {
	resume, plan, err := f.Plan(ctx, current)
	if err != nil {
		return nil, err
	}
	result := &Result{Resume: resume, Plan: plan, Report: &Report{}}
	branch := f.opts.MirrorBranch()

	switch plan.Kind {
	case PlanNoOp:
		f.logger.Info("mirror is up to date", "branch", branch, "revision", plan.Current)
		return result, nil

	case PlanFullCopy:
		f.logger.Info("copying source commit to mirror", "reason", plan.Reason.String(), "revision", plan.Current)
		if err := f.git.CheckoutBranchAt(ctx, branch, plan.Current, true); err != nil {
			return result, err
		}
		if err := f.writeTrailer(ctx, plan.Current); err != nil {
			return result, err
		}

	case PlanReplay:
		if err := f.git.CheckoutBranchAt(ctx, branch, resume.MirrorHead, true); err != nil {
			return result, err
		}
		report, err := f.engine.Replay(ctx, plan)
		result.Report = report
		if err != nil {
			return result, err
		}
		if report.CommitsMade() {
			if err := f.writeTrailer(ctx, plan.Current); err != nil {
				return result, err
			}
		}
	}

	pushed, err := f.publisher.Publish(ctx, plan, result.Report.CommitsMade())
	if err != nil {
		return result, err
	}
	result.Pushed = pushed
	return result, nil
}

// writeTrailer amends the mirror tip to record the source revision it represents
func (f *Flattener) writeTrailer(ctx context.Context, revision string) error {
	message, err := f.git.GetCommitMessage(ctx, "HEAD")
	if err != nil {
		return err
	}
	rec := trailer.Record{SourceBranch: f.opts.SourceBranch, SourceRevision: revision}
	if err := f.git.AmendMessage(ctx, trailer.Append(message, rec)); err != nil {
		return fmt.Errorf("failed to amend commit message to include source branch and revision: %w", err)
	}
	return nil
}
