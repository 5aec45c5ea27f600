package flatten

import "github.com/bjulian5/flattengit/internal/git"

// Recovery is the decision taken after a failed cherry-pick
type Recovery struct {
	// Remove lists paths deleted on the mirror but modified by the incoming
	// commit; the deletion is kept.
	Remove []string
	// Unresolved lists every other conflicted path.
	Unresolved []git.StatusEntry
}

// Resolvable reports whether applying Remove completes the cherry-pick
func (r Recovery) Resolvable() bool {
	return len(r.Unresolved) == 0 && len(r.Remove) > 0
}

// PlanRecovery inspects the index after a failed cherry-pick. It is a
// best-effort policy: only delete/modify conflicts are resolved.
func PlanRecovery(entries []git.StatusEntry) Recovery {
	var rec Recovery
	for _, e := range entries {
		if !e.IsUnmerged() {
			continue
		}
		if e.IsDeletedByUs() {
			rec.Remove = append(rec.Remove, e.Path)
			continue
		}
		rec.Unresolved = append(rec.Unresolved, e)
	}
	return rec
}
