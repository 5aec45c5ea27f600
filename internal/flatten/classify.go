package flatten

import (
	"fmt"

	"github.com/bjulian5/flattengit/internal/git"
)

// Step is how the replay engine treats one commit of the range
type Step int

const (
	// StepRegular is a single-parent commit that is cherry-picked.
	StepRegular Step = iota
	// StepOtherMerge is a merge that is skipped; the designated merge subsumes it.
	StepOtherMerge
	// StepDesignatedMerge is squash-reset to the merge's tree.
	StepDesignatedMerge
	// StepFinal is squash-reset to the final commit's tree.
	StepFinal
)

func (s Step) String() string {
	switch s {
	case StepRegular:
		return "cherry-pick"
	case StepOtherMerge:
		return "skip-merge"
	case StepDesignatedMerge:
		return "resolve-merge"
	case StepFinal:
		return "resolve-final"
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

// IsResolutionPoint reports whether the step forces the mirror tree to match the source
func (s Step) IsResolutionPoint() bool {
	return s == StepDesignatedMerge || s == StepFinal
}

// Classify decides the step for commit within plan. The final commit is
// always a resolution point, even when it is also a merge.
func Classify(plan *Plan, commit git.Commit) Step {
	switch {
	case commit.Hash == plan.Final:
		return StepFinal
	case commit.Hash == plan.LastMerge:
		return StepDesignatedMerge
	case commit.IsMerge():
		return StepOtherMerge
	default:
		return StepRegular
	}
}
