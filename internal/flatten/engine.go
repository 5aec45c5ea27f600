package flatten

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/bjulian5/flattengit/internal/git"
	"github.com/bjulian5/flattengit/internal/logging"
)

// Outcome is what happened to one commit during replay
type Outcome int

const (
	OutcomeCherryPicked Outcome = iota
	// OutcomeRecovered is a cherry-pick completed by keeping mirror-side deletions.
	OutcomeRecovered
	OutcomeSquashed
	// OutcomeSquashEmpty is a resolution point whose tree already matched the mirror.
	OutcomeSquashEmpty
	OutcomeSkipped
	// OutcomeAbandoned is a cherry-pick that was rolled back.
	OutcomeAbandoned
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCherryPicked:
		return "cherry-picked"
	case OutcomeRecovered:
		return "recovered"
	case OutcomeSquashed:
		return "squashed"
	case OutcomeSquashEmpty:
		return "unchanged"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeAbandoned:
		return "abandoned"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// MadeCommit reports whether the outcome added a commit to the mirror
func (o Outcome) MadeCommit() bool {
	switch o {
	case OutcomeCherryPicked, OutcomeRecovered, OutcomeSquashed:
		return true
	}
	return false
}

// StepResult records the handling of one source commit
type StepResult struct {
	Commit  git.Commit
	Step    Step
	Outcome Outcome
	// Detail holds git output for abandoned cherry-picks.
	Detail string
}

// Report summarises a replay
type Report struct {
	Steps []StepResult
}

// CommitsMade reports whether any commit was added to the mirror branch
func (r *Report) CommitsMade() bool {
	for _, s := range r.Steps {
		if s.Outcome.MadeCommit() {
			return true
		}
	}
	return false
}

// Count returns how many steps ended with outcome
func (r *Report) Count(outcome Outcome) int {
	n := 0
	for _, s := range r.Steps {
		if s.Outcome == outcome {
			n++
		}
	}
	return n
}

// Engine replays a plan onto the checked-out mirror branch
type Engine struct {
	git            GitClient
	cherryPickArgs []string
	logger         *log.Logger
}

// NewEngine creates a replay engine. Nil cherryPickArgs selects git.DefaultCherryPickArgs.
func NewEngine(gitClient GitClient, cherryPickArgs []string, logger *log.Logger) *Engine {
	if cherryPickArgs == nil {
		cherryPickArgs = git.DefaultCherryPickArgs
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Engine{git: gitClient, cherryPickArgs: cherryPickArgs, logger: logger}
}

// Replay walks plan.Commits oldest first. A failed cherry-pick never stops the
// run; any other git failure is returned and the run must be aborted.
func (e *Engine) Replay(ctx context.Context, plan *Plan) (*Report, error) {
	report := &Report{}
	for _, commit := range plan.Commits {
		step := Classify(plan, commit)
		logger := e.logger.With("commit", commit.ShortHash(), "step", step.String())

		result := StepResult{Commit: commit, Step: step}
		switch step {
		case StepOtherMerge:
			logger.Debug("skipping merge subsumed by the designated merge", "subject", commit.Subject)
			result.Outcome = OutcomeSkipped

		case StepDesignatedMerge, StepFinal:
			outcome, err := e.resolve(ctx, commit)
			if err != nil {
				return report, err
			}
			result.Outcome = outcome

		case StepRegular:
			outcome, detail, err := e.cherryPick(ctx, commit, logger)
			if err != nil {
				return report, err
			}
			result.Outcome = outcome
			result.Detail = detail
		}

		logger.Info(result.Outcome.String(), "subject", commit.Subject)
		report.Steps = append(report.Steps, result)
	}
	return report, nil
}

// resolve stages exactly the difference between the mirror tip and commit's
// tree, then commits it under commit's author and subject.
func (e *Engine) resolve(ctx context.Context, commit git.Commit) (Outcome, error) {
	head, err := e.git.GetCommitHash(ctx, "HEAD")
	if err != nil {
		return 0, fmt.Errorf("failed to retrieve current head revision: %w", err)
	}
	if err := e.git.ResetHard(ctx, commit.Hash); err != nil {
		return 0, err
	}
	if err := e.git.ResetSoft(ctx, head); err != nil {
		return 0, err
	}

	staged, err := e.git.HasStagedChanges(ctx)
	if err != nil {
		return 0, err
	}
	if !staged {
		return OutcomeSquashEmpty, nil
	}
	if err := e.git.Commit(ctx, commit.Author, commit.Subject); err != nil {
		return 0, fmt.Errorf("failed to commit flattened %s: %w", commit.ShortHash(), err)
	}
	return OutcomeSquashed, nil
}

// cherryPick applies commit with the theirs-biased strategy. Failures are
// expected when the change already reached the mirror through another path.
func (e *Engine) cherryPick(ctx context.Context, commit git.Commit, logger *log.Logger) (Outcome, string, error) {
	head, err := e.git.GetCommitHash(ctx, "HEAD")
	if err != nil {
		return 0, "", fmt.Errorf("failed to retrieve current head revision: %w", err)
	}

	rr, pickErr := e.git.CherryPick(ctx, commit.Hash, e.cherryPickArgs)
	if pickErr == nil {
		return OutcomeCherryPicked, "", nil
	}
	output := git.ErrorOutput(pickErr)
	if output == "" {
		output = rr.Output()
	}

	entries, err := e.git.Status(ctx)
	if err != nil {
		return 0, "", fmt.Errorf("cannot retrieve status after failed cherry-pick: %w", err)
	}
	recovery := PlanRecovery(entries)

	if recovery.Resolvable() {
		logger.Info("resolving files deleted on the mirror", "paths", recovery.Remove)
		for _, path := range recovery.Remove {
			if err := e.git.Remove(ctx, path); err != nil {
				return 0, "", err
			}
		}
		commitErr := e.git.Commit(ctx, commit.Author, commit.Subject)
		if commitErr == nil {
			return OutcomeRecovered, "", nil
		}
		logger.Warn("failed to commit resolved cherry-pick", "err", commitErr)
		if o := git.ErrorOutput(commitErr); o != "" {
			output = o
		}
	}

	if len(recovery.Unresolved) > 0 {
		paths := make([]string, 0, len(recovery.Unresolved))
		for _, u := range recovery.Unresolved {
			paths = append(paths, u.Code()+" "+u.Path)
		}
		logger.Warn("could not resolve some files", "paths", paths)
	}
	logger.Warn("failed to cherry pick; the change is probably already present through a merge", "output", output)

	if err := e.rollback(ctx, head, logger); err != nil {
		return 0, "", err
	}
	return OutcomeAbandoned, output, nil
}

// rollback abandons a partial cherry-pick, restoring the mirror tip to head
func (e *Engine) rollback(ctx context.Context, head string, logger *log.Logger) error {
	abortErr := e.git.CherryPickAbort(ctx)
	if abortErr == nil {
		return nil
	}
	logger.Debug("cherry-pick abort failed, resetting instead", "err", abortErr)
	if err := e.git.ResetHard(ctx, head); err != nil {
		return fmt.Errorf("failed to roll back cherry-pick: %w", err)
	}
	return nil
}
