package flatten

import (
	"fmt"

	"github.com/bjulian5/flattengit/internal/git"
)

// PlanKind says what a run will do to the mirror branch
type PlanKind int

const (
	// PlanNoOp means the mirror already reflects the current commit.
	PlanNoOp PlanKind = iota
	// PlanFullCopy replaces the mirror branch with the current commit.
	PlanFullCopy
	// PlanReplay flattens the range commit by commit onto the mirror.
	PlanReplay
)

func (k PlanKind) String() string {
	switch k {
	case PlanNoOp:
		return "no-op"
	case PlanFullCopy:
		return "full-copy"
	case PlanReplay:
		return "replay"
	}
	return fmt.Sprintf("PlanKind(%d)", int(k))
}

// FullCopyReason records why incremental replay was not possible
type FullCopyReason int

const (
	ReasonNone FullCopyReason = iota
	ReasonNoPrevious
	ReasonNotAncestor
	ReasonTooManyCommits
	ReasonForced
)

func (r FullCopyReason) String() string {
	switch r {
	case ReasonNone:
		return ""
	case ReasonNoPrevious:
		return "no previous revision recorded on the mirror branch"
	case ReasonNotAncestor:
		return "previous revision is not an ancestor of the current commit"
	case ReasonTooManyCommits:
		return "too many commits to cherry-pick"
	case ReasonForced:
		return "full copy requested"
	}
	return fmt.Sprintf("FullCopyReason(%d)", int(r))
}

// Plan is the outcome of range planning for one run
type Plan struct {
	Kind     PlanKind
	Reason   FullCopyReason
	Previous string
	Current  string

	// Commits is the range (Previous, Current], oldest first. Only set for replay plans.
	Commits []git.Commit
	// LastMerge is the hash of the designated last merge, empty when the range has no merge.
	LastMerge string
	// Final is the hash of the newest commit in the range.
	Final string
}

// BuildReplayPlan turns a newest-first log into an oldest-first replay plan.
// The designated merge is the chronologically last merge in the range, since
// its tree is the one that subsumes every earlier merge.
func BuildReplayPlan(previous, current string, newestFirst []git.Commit) *Plan {
	if len(newestFirst) == 0 {
		return &Plan{Kind: PlanNoOp, Previous: previous, Current: current}
	}

	commits := make([]git.Commit, len(newestFirst))
	for i, c := range newestFirst {
		commits[len(newestFirst)-1-i] = c
	}

	plan := &Plan{
		Kind:     PlanReplay,
		Previous: previous,
		Current:  current,
		Commits:  commits,
		Final:    commits[len(commits)-1].Hash,
	}
	for _, c := range commits {
		if c.IsMerge() {
			plan.LastMerge = c.Hash
		}
	}
	return plan
}

func newFullCopyPlan(previous, current string, reason FullCopyReason) *Plan {
	return &Plan{
		Kind:     PlanFullCopy,
		Reason:   reason,
		Previous: previous,
		Current:  current,
	}
}
