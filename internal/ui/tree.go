package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/bjulian5/flattengit/internal/flatten"
)

var (
	TreeRootStyle       = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	TreeEnumeratorStyle = lipgloss.NewStyle().Foreground(ColorBorder)
)

// RenderPlanTree renders a replay plan as the commits the mirror will gain.
// Every resolution point becomes one node; the commits replayed before it
// hang underneath.
// Example output:
//
//	flat/develop
//	├─ 1a2b3c4d5e Merge feature [resolve-merge]
//	│  ├─ 2b3c4d5e6f Feature part one [cherry-pick]
//	│  ╰─ 3c4d5e6f7a Mainline change [cherry-pick]
//	╰─ 4d5e6f7a8b After merge [resolve-final]
func RenderPlanTree(branch string, plan *flatten.Plan) string {
	t := tree.Root(TreeRootStyle.Render(branch))
	if plan.Kind != flatten.PlanReplay {
		t.Child(DimStyle.Render(fmt.Sprintf("%s of %s", plan.Kind, shortHash(plan.Current))))
		return styleTree(t).String()
	}

	var pending []string
	for _, c := range plan.Commits {
		step := flatten.Classify(plan, c)
		label := formatCommitForTree(c.ShortHash(), c.Subject, step)
		if !step.IsResolutionPoint() {
			pending = append(pending, label)
			continue
		}
		if len(pending) == 0 {
			t.Child(label)
			continue
		}
		node := tree.Root(label)
		for _, p := range pending {
			node.Child(p)
		}
		t.Child(node)
		pending = nil
	}
	return styleTree(t).String()
}

func formatCommitForTree(hash, subject string, step flatten.Step) string {
	stepLabel := DimStyle.Render("[" + step.String() + "]")
	if step == flatten.StepOtherMerge {
		return DimStyle.Render(hash+" "+Truncate(subject, maxSubjectWidth)) + " " + stepLabel
	}
	return fmt.Sprintf("%s %s %s", hash, Truncate(subject, maxSubjectWidth), stepLabel)
}

func styleTree(t *tree.Tree) *tree.Tree {
	return t.Enumerator(roundedEnumerator).
		EnumeratorStyle(TreeEnumeratorStyle).
		Indenter(treeIndenter)
}

func roundedEnumerator(children tree.Children, i int) string {
	if i == children.Length()-1 {
		return "╰─ "
	}
	return "├─ "
}

func treeIndenter(children tree.Children, i int) string {
	if i == children.Length()-1 {
		return "   "
	}
	return "│  "
}
