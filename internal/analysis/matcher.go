package analysis

import "strings"

// CountOccurrences returns the number of non-overlapping occurrences of
// keyword in line. The search resumes after the end of each match, so
// CountOccurrences("aaa", "aa") is 1. Matching is byte-exact and
// case-sensitive. An empty line or keyword yields 0.
func CountOccurrences(line, keyword string) int64 {
	if line == "" || keyword == "" {
		return 0
	}
	return int64(strings.Count(line, keyword))
}
