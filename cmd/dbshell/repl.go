package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dbshell/dbshell/internal/client"
)

// runREPL drives the interactive read loop: statements accumulate line by
// line until one ends with ";", then run as a whole. "exit" or "quit" at a
// fresh prompt (or end of input) ends the session.
func runREPL(cl *client.Client, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	// Scanner token limit is 64K by default; allow larger statements.
	sc.Buffer(make([]byte, 1024), 4*1024*1024)

	fmt.Fprintln(out, "Enter SQL statements terminated by a semicolon. Type 'exit' or 'quit' to leave.")

	var buffer []string
	for {
		if len(buffer) == 0 {
			fmt.Fprint(out, "db> ")
		} else {
			fmt.Fprint(out, "... ")
		}

		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}

		line := sc.Text()
		stripped := strings.TrimSpace(line)

		if len(buffer) == 0 {
			lower := strings.ToLower(stripped)
			if lower == "exit" || lower == "quit" {
				return nil
			}
		}

		buffer = append(buffer, line)
		if !strings.HasSuffix(stripped, ";") {
			continue
		}

		statement := strings.Join(buffer, "\n")
		buffer = buffer[:0]

		output, err := cl.RunStatement(statement)
		if err != nil {
			// Connection-level failure; report it and keep the session.
			fmt.Fprintln(out, "Error:", err)
			continue
		}
		fmt.Fprintln(out, output)
	}
}
