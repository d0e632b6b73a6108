package catalog

// Find returns the first record named name in catalog order. Matching is
// exact and case-sensitive; same-named functions in other scopes are never
// preferred over the earliest one.
func Find(records []FunctionRecord, name string) (FunctionRecord, bool) {
	for _, r := range records {
		if r.Name == name {
			return r, true
		}
	}
	return FunctionRecord{}, false
}

// Extract returns the full source of the first function named name.
func Extract(source string, records []FunctionRecord, name string) (string, bool) {
	r, ok := Find(records, name)
	if !ok || r.Full.Start < 0 || r.Full.End > len(source) {
		return "", false
	}
	return source[r.Full.Start:r.Full.End], true
}
