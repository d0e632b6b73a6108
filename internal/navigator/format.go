package navigator

import (
	"errors"
	"fmt"
	"strings"
)

// divider separates headers from code in text output.
var divider = strings.Repeat("=", 60)

// Text renders the listing for humans and assistants.
func (l *FileList) Text() string {
	lines := []string{
		"Component: " + l.Component,
		"Package: " + l.Package,
		fmt.Sprintf("Total files: %d", len(l.Files)),
		"",
		"File types:",
	}
	for _, row := range l.Stats.rows() {
		lines = append(lines, fmt.Sprintf("  %-6s %d", row.Label+":", row.Count))
	}
	lines = append(lines, "", "===== Files =====", "")
	lines = append(lines, l.Files...)
	lines = append(lines, "", "Hint: pass any path above to get_file_code to read that file")
	return strings.Join(lines, "\n")
}

// Text renders the file with its header.
func (v *FileView) Text() string {
	lines := []string{
		"File: " + v.VirtualPath,
		fmt.Sprintf("Lines: %d", v.Lines),
		fmt.Sprintf("Size: %d chars", v.Chars),
	}
	if v.Redacted {
		lines = append(lines, fmt.Sprintf(
			"Processing: long file, function bodies replaced with %q. "+
				"Use fullCode=true for the complete source, or get_function_code for one function.",
			v.Placeholder))
	}
	lines = append(lines, divider)
	if v.Content != "" {
		lines = append(lines, v.Content)
	}
	return strings.Join(lines, "\n")
}

// Text renders the function with its header.
func (v *FunctionView) Text() string {
	return strings.Join([]string{
		"File: " + v.VirtualPath,
		"Function: " + v.Name,
		"",
		divider,
		"",
		v.Code,
	}, "\n")
}

// ErrorText renders err with any recovery data it carries: directory
// suggestions for a missing component, known names for a missing function.
func ErrorText(err error) string {
	var componentErr *ComponentNotFoundError
	if errors.As(err, &componentErr) {
		msg := fmt.Sprintf("No files found for component %q in %s.", componentErr.Component, componentErr.Package)
		if len(componentErr.Suggestions) > 0 {
			msg += "\n\nAvailable component directories:\n" + bulleted(componentErr.Suggestions)
		}
		return msg
	}

	var functionErr *FunctionNotFoundError
	if errors.As(err, &functionErr) {
		lines := []string{
			fmt.Sprintf("Function %q not found", functionErr.Name),
			"",
			"File: " + functionErr.VirtualPath,
			"",
			fmt.Sprintf("Functions and methods in this file (%d):", len(functionErr.Available)),
		}
		if len(functionErr.Available) > 0 {
			lines = append(lines, bulleted(functionErr.Available))
		}
		return strings.Join(lines, "\n")
	}

	return err.Error()
}

func bulleted(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "  - " + item
	}
	return strings.Join(lines, "\n")
}
