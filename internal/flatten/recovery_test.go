package flatten

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bjulian5/flattengit/internal/git"
)

func entry(code, path string) git.StatusEntry {
	return git.StatusEntry{Index: code[0], WorkTree: code[1], Path: path}
}

func TestPlanRecovery(t *testing.T) {
	testCases := []struct {
		desc           string
		entries        []git.StatusEntry
		wantRemove     []string
		wantUnresolved []string
		wantResolvable bool
	}{
		{
			desc: "clean index after redundant cherry-pick",
		},
		{
			desc:    "staged changes are not conflicts",
			entries: []git.StatusEntry{entry("M ", "a.txt"), entry("A ", "b.txt"), entry("??", "junk")},
		},
		{
			desc:           "deleted by us is resolved by removal",
			entries:        []git.StatusEntry{entry("DU", "gone.txt"), entry("M ", "kept.txt")},
			wantRemove:     []string{"gone.txt"},
			wantResolvable: true,
		},
		{
			desc:           "content conflict is unresolved",
			entries:        []git.StatusEntry{entry("UU", "both.txt")},
			wantUnresolved: []string{"both.txt"},
		},
		{
			desc:           "deleted by them is not auto-resolved",
			entries:        []git.StatusEntry{entry("UD", "theirs-gone.txt")},
			wantUnresolved: []string{"theirs-gone.txt"},
		},
		{
			desc: "mixed conflicts are not resolvable",
			entries: []git.StatusEntry{
				entry("DU", "gone.txt"),
				entry("AA", "added-twice.txt"),
			},
			wantRemove:     []string{"gone.txt"},
			wantUnresolved: []string{"added-twice.txt"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			rec := PlanRecovery(tc.entries)
			assert.Equal(t, tc.wantRemove, rec.Remove)

			var unresolved []string
			for _, u := range rec.Unresolved {
				unresolved = append(unresolved, u.Path)
			}
			assert.Equal(t, tc.wantUnresolved, unresolved)
			assert.Equal(t, tc.wantResolvable, rec.Resolvable())
		})
	}
}
