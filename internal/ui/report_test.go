package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bjulian5/flattengit/internal/flatten"
	"github.com/bjulian5/flattengit/internal/git"
	"github.com/bjulian5/flattengit/internal/trailer"
)

func commit(hash, subject string, parents ...string) git.Commit {
	return git.Commit{Hash: hash, Subject: subject, Parents: parents, Author: git.Author{Name: "Dev"}}
}

func mergePlan() *flatten.Plan {
	return flatten.BuildReplayPlan("p", "d", []git.Commit{
		commit("dddddddddddd", "After merge", "mmmmmmmmmmmm"),
		commit("mmmmmmmmmmmm", "Merge feature", "cccccccccccc", "ffffffffffff"),
		commit("ffffffffffff", "Feature", "p"),
		commit("cccccccccccc", "Mainline", "p"),
	})
}

func TestRenderPlan(t *testing.T) {
	resume := flatten.ResumePoint{
		MirrorHead: "0123456789abcdef",
		Record:     trailer.Record{SourceBranch: "develop", SourceRevision: "fedcba9876543210"},
		Found:      true,
	}

	out := RenderPlan(resume, mergePlan())

	assert.Contains(t, out, "fedcba9876 (branch develop)")
	assert.Contains(t, out, "0123456789")
	assert.Contains(t, out, "replay")
	assert.Contains(t, out, "resolve-merge")
	assert.Contains(t, out, "resolve-final")
	assert.Equal(t, 2, strings.Count(out, "cherry-pick"))
}

func TestRenderPlan_FullCopy(t *testing.T) {
	plan := &flatten.Plan{Kind: flatten.PlanFullCopy, Reason: flatten.ReasonNoPrevious, Current: "abc"}

	out := RenderPlan(flatten.ResumePoint{}, plan)

	assert.Contains(t, out, "full-copy")
	assert.Contains(t, out, flatten.ReasonNoPrevious.String())
	assert.NotContains(t, out, "Subject")
}

func TestRenderPlanTree(t *testing.T) {
	out := RenderPlanTree("flat/develop", mergePlan())
	lines := strings.Split(out, "\n")

	assert.Contains(t, lines[0], "flat/develop")
	assert.Contains(t, out, "Merge feature")
	assert.Contains(t, out, "[resolve-final]")

	// The cherry-picks are nested under the merge they precede.
	mergeLine := strings.Index(out, "Merge feature")
	assert.Less(t, mergeLine, strings.Index(out, "Mainline"))
	assert.Less(t, strings.Index(out, "Feature [cherry-pick]"), strings.Index(out, "After merge"))
}

func TestRenderReport(t *testing.T) {
	assert.Empty(t, RenderReport(nil))
	assert.Empty(t, RenderReport(&flatten.Report{}))

	out := RenderReport(&flatten.Report{Steps: []flatten.StepResult{
		{Commit: commit("aaaaaaaaaaaa", "Picked"), Step: flatten.StepRegular, Outcome: flatten.OutcomeCherryPicked},
		{Commit: commit("bbbbbbbbbbbb", strings.Repeat("long ", 20)), Step: flatten.StepRegular, Outcome: flatten.OutcomeAbandoned},
	}})
	assert.Contains(t, out, "cherry-picked")
	assert.Contains(t, out, "abandoned")
	assert.Contains(t, out, "...")
}

func TestPrintRedirect(t *testing.T) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	restore := SetOutput(out, errOut)
	defer restore()

	Info("hello")
	assert.Contains(t, out.String(), "hello")
}
