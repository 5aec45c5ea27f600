package ui

import (
	"fmt"
	"strings"

	"github.com/bjulian5/flattengit/internal/flatten"
)

const maxSubjectWidth = 60

// RenderPlan renders the resume point and per-commit classification of a plan
func RenderPlan(resume flatten.ResumePoint, plan *flatten.Plan) string {
	resumeValue := "none"
	if resume.Found {
		resumeValue = fmt.Sprintf("%s (branch %s)", shortHash(resume.Record.SourceRevision), resume.Record.SourceBranch)
	}
	kind := plan.Kind.String()
	if plan.Kind == flatten.PlanFullCopy {
		kind += fmt.Sprintf(" (%s)", plan.Reason)
	}

	var b strings.Builder
	b.WriteString(RenderKeyValueList(map[string]string{
		"Resume point": resumeValue,
		"Mirror head":  orNone(shortHash(resume.MirrorHead)),
		"Current":      shortHash(plan.Current),
		"Plan":         kind,
	}, []string{"Resume point", "Mirror head", "Current", "Plan"}))
	b.WriteString("\n")

	if plan.Kind != flatten.PlanReplay {
		return b.String()
	}

	t := NewTable("#", "Commit", "Parents", "Step", "Author", "Subject")
	for i, c := range plan.Commits {
		step := flatten.Classify(plan, c)
		t.Row(
			fmt.Sprintf("%d", i+1),
			c.ShortHash(),
			fmt.Sprintf("%d", len(c.Parents)),
			step.String(),
			c.Author.Name,
			Truncate(c.Subject, maxSubjectWidth),
		)
	}
	b.WriteString(t.Render())
	b.WriteString("\n")
	return b.String()
}

// RenderReport renders the outcome of every replayed commit
func RenderReport(report *flatten.Report) string {
	if report == nil || len(report.Steps) == 0 {
		return ""
	}
	t := NewTable("Commit", "Step", "Outcome", "Subject")
	for _, s := range report.Steps {
		outcome := s.Outcome.String()
		cell := outcome
		if IsTerminal() {
			cell = GetOutcomeStyle(outcome).Render(outcome)
		}
		t.Row(s.Commit.ShortHash(), s.Step.String(), cell, Truncate(s.Commit.Subject, maxSubjectWidth))
	}
	return t.Render() + "\n"
}

func shortHash(hash string) string {
	if len(hash) > 10 {
		return hash[:10]
	}
	return hash
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
