package catalog

import (
	"sort"
	"strings"
)

// Placeholder replaces a collapsed function body.
const Placeholder = "{ ... }"

// Redact collapses function bodies of source to Placeholder. records must be
// the catalog of source.
func Redact(source string, records []FunctionRecord) string {
	return RedactWith(source, records, Placeholder)
}

// RedactWith is Redact with a custom placeholder.
//
// Records are taken in descending Body.Start order. A body already covered by
// a committed range is skipped; a body that encloses committed ranges
// supersedes them, so only outermost bodies are collapsed and nothing declared
// inside them survives. Bodies no longer than the placeholder are left as-is,
// which keeps the output no longer than the input.
func RedactWith(source string, records []FunctionRecord, placeholder string) string {
	if len(records) == 0 {
		return source
	}

	ordered := make([]FunctionRecord, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Body.Start > ordered[j].Body.Start
	})

	var committed []Range
	for _, r := range ordered {
		body := r.Body
		if body.Start < 0 || body.End > len(source) || body.Start > body.End {
			continue
		}
		if coveredBy(body, committed) {
			continue
		}

		kept := committed[:0]
		for _, c := range committed {
			if !body.Contains(c) {
				kept = append(kept, c)
			}
		}
		committed = append(kept, body)
	}

	sort.Slice(committed, func(i, j int) bool {
		return committed[i].Start < committed[j].Start
	})

	var sb strings.Builder
	sb.Grow(len(source))
	cursor := 0
	for _, c := range committed {
		sb.WriteString(source[cursor:c.Start])
		if c.Len() > len(placeholder) {
			sb.WriteString(placeholder)
		} else {
			sb.WriteString(source[c.Start:c.End])
		}
		cursor = c.End
	}
	sb.WriteString(source[cursor:])

	return sb.String()
}

func coveredBy(r Range, committed []Range) bool {
	for _, c := range committed {
		if c.Contains(r) {
			return true
		}
	}
	return false
}
