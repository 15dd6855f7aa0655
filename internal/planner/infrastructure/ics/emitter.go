// Package ics serializes a PlanRecord to the iCalendar wire format.
//
// The wire format here must be byte-for-byte deterministic (property order,
// CRLF line endings, exact timestamp formatting) to satisfy the plan
// export test scenario. github.com/emersion/go-ical's generic encoder does
// not promise a stable property order, so this emitter builds the text
// directly with strings.Builder instead of going through that library —
// the one component in this module built on the standard library rather
// than a pack dependency; the library is still wired elsewhere, for the
// CalDAV push exporter, where stable ordering does not matter.
package ics

import (
	"fmt"
	"strings"

	pdomain "github.com/felixgeelhaar/studyflow/internal/planner/domain"
)

const icsTimeFormat = "20060102T150405Z"

var palette = [6]string{"#6EE7B7", "#93C5FD", "#FCD34D", "#FCA5A5", "#C4B5FD", "#F9A8D4"}

// Emitter serializes a PlanRecord into the ICS text format (C11).
type Emitter struct{}

func NewEmitter() *Emitter { return &Emitter{} }

// Emit produces the calendar body, CRLF-terminated throughout.
func (Emitter) Emit(plan *pdomain.PlanRecord) string {
	var b strings.Builder
	writeLine := func(s string) {
		b.WriteString(s)
		b.WriteString("\r\n")
	}

	writeLine("BEGIN:VCALENDAR")
	writeLine("VERSION:2.0")
	writeLine("PRODID:-//StudyFlow//Planner 1.0//VI")
	writeLine("CALSCALE:GREGORIAN")

	stamp := plan.GeneratedAt.UTC().Format(icsTimeFormat)

	for _, s := range plan.Sessions {
		if s.Source == pdomain.SourceBreak {
			continue
		}

		writeLine("BEGIN:VEVENT")
		writeLine(fmt.Sprintf("UID:%s@studyflow", s.ID.String()))
		writeLine(fmt.Sprintf("DTSTAMP:%s", stamp))
		writeLine(fmt.Sprintf("DTSTART:%s", s.PlannedStart.UTC().Format(icsTimeFormat)))
		writeLine(fmt.Sprintf("DTEND:%s", s.PlannedEnd.UTC().Format(icsTimeFormat)))
		writeLine(fmt.Sprintf("SUMMARY:%s · %s", s.Subject, s.Title))
		writeLine(fmt.Sprintf("DESCRIPTION:%s", description(s.SuccessCriteria)))
		writeLine(fmt.Sprintf("CATEGORIES:%s", s.Subject))
		writeLine(fmt.Sprintf("COLOR:%s", colorFor(s.Subject)))
		writeLine("END:VEVENT")
	}

	writeLine("END:VCALENDAR")

	return b.String()
}

func description(criteria []string) string {
	if len(criteria) == 0 {
		return "Complete session"
	}
	return strings.Join(criteria, " • ")
}

// colorFor deterministically picks a palette entry from the codepoint sum
// of the subject string, per the ICS Emitter's coloring rule.
func colorFor(subject string) string {
	sum := 0
	for _, r := range subject {
		sum += int(r)
	}
	if sum < 0 {
		sum = -sum
	}
	return palette[sum%len(palette)]
}
