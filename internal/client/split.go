package client

import "strings"

// SplitStatements decomposes script text into individual statements for
// backends without native multi-statement execution.
//
// The scan is line based: lines accumulate into a buffer, and a line whose
// right-trimmed form ends with ";" closes the current statement. The buffer is
// joined with newlines, trimmed, stripped of trailing semicolons and emitted
// when non-empty. A final statement without its terminating ";" is emitted the
// same way at end of input.
//
// Known limitation: the scan has no notion of string literals or comments. A
// semicolon inside a quoted value only misleads it when it is the last
// non-whitespace character of its line; in that case the statement splits
// incorrectly.
func SplitStatements(script string) []string {
	var statements []string
	var buffer []string

	flush := func() {
		statement := strings.TrimSpace(strings.Join(buffer, "\n"))
		statement = strings.TrimRight(statement, ";")
		if statement != "" {
			statements = append(statements, statement)
		}
		buffer = buffer[:0]
	}

	for _, line := range strings.Split(script, "\n") {
		line = strings.TrimSuffix(line, "\r")
		buffer = append(buffer, line)
		if strings.HasSuffix(strings.TrimRight(line, " \t"), ";") {
			flush()
		}
	}
	if len(buffer) > 0 {
		flush()
	}

	return statements
}
