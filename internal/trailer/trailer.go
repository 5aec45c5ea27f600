// Package trailer reads and writes the source-revision annotation that the
// mirror branch carries in its commit messages. The annotation is the only
// state that survives between runs, so its shape must not change:
//
//	<original message>
//
//	branch: develop, revision: 0123abcd...
package trailer

import (
	"fmt"
	"regexp"
	"strings"
)

// Record names the source commit a mirror commit was flattened from
type Record struct {
	SourceBranch   string
	SourceRevision string
}

// String renders the record as a trailer line
func (r Record) String() string {
	if r.SourceBranch == "" {
		return fmt.Sprintf("revision: %s", r.SourceRevision)
	}
	return fmt.Sprintf("branch: %s, revision: %s", r.SourceBranch, r.SourceRevision)
}

var trailerRegex = regexp.MustCompile(`(?:branch: (\S+), )?revision: ([0-9a-f]+)`)

// ExtractAll returns every record found in message, oldest first
func ExtractAll(message string) []Record {
	matches := trailerRegex.FindAllStringSubmatch(message, -1)
	records := make([]Record, 0, len(matches))
	for _, m := range matches {
		records = append(records, Record{SourceBranch: m[1], SourceRevision: m[2]})
	}
	return records
}

// Extract returns the last record in message. Earlier records are history
// left behind by previous amends.
func Extract(message string) (Record, bool) {
	records := ExtractAll(message)
	if len(records) == 0 {
		return Record{}, false
	}
	return records[len(records)-1], true
}

// Append adds rec to message on its own line after a blank line
func Append(message string, rec Record) string {
	message = strings.TrimRight(message, " \t\r\n")
	if message == "" {
		return rec.String() + "\n"
	}
	return message + "\n\n" + rec.String() + "\n"
}
