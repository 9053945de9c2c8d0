package filter

import (
	"regexp"
)

var (
	// Table-of-contents marker near the top of the file. Surrounding
	// decoration on the same line is tolerated.
	tocMarkerPattern = regexp.MustCompile(`(?i)table of contents`)

	// TOC entry for the divination card section, e.g.
	// "# [[4200]] Divination Cards".
	tocEntryPattern = regexp.MustCompile(`(?i)\[\[\s*([^\]\s]+)\s*\]\].*divination\s+cards`)

	// Any section header marker. Used to detect where a section body ends.
	sectionMarkerPattern = regexp.MustCompile(`\[\[\s*[^\]\s]+\s*\]\]`)

	// Start of a rule block ("Show"/"Hide"). TOC scanning must stop here so
	// markers quoted inside rule bodies are not mistaken for TOC entries.
	ruleStartPattern = regexp.MustCompile(`(?i)^\s*(show|hide)\b`)
)

// findDivinationSectionID scans for the table-of-contents marker and then
// for the divination card entry below it. Returns "" when either the marker
// or the entry is missing. Lines before the marker are never treated as TOC
// entries.
func findDivinationSectionID(lines []string) string {
	marker := -1
	for i, line := range lines {
		if tocMarkerPattern.MatchString(line) {
			marker = i
			break
		}
	}
	if marker < 0 {
		return ""
	}

	for _, line := range lines[marker+1:] {
		if ruleStartPattern.MatchString(line) {
			break
		}
		if m := tocEntryPattern.FindStringSubmatch(line); m != nil {
			return m[1]
		}
	}
	return ""
}

// findSectionStart returns the index of the last line carrying the section
// marker for id, or -1 if none exists. The last occurrence is the real body
// start: the same marker appears earlier as the TOC listing.
func findSectionStart(lines []string, id string) int {
	pattern := regexp.MustCompile(`(?i)\[\[\s*` + regexp.QuoteMeta(id) + `\s*\]\]`)
	last := -1
	for i, line := range lines {
		if pattern.MatchString(line) {
			last = i
		}
	}
	return last
}

// extractSectionLines returns the lines strictly after headerIdx up to the
// next section marker, or to end of input if no section follows.
func extractSectionLines(lines []string, headerIdx int) []string {
	var body []string
	for i := headerIdx + 1; i < len(lines); i++ {
		if sectionMarkerPattern.MatchString(lines[i]) {
			break
		}
		body = append(body, lines[i])
	}
	return body
}
