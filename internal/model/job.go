package model

import "strings"

// CommentPrefix marks a job line that is ignored
const CommentPrefix = "#"

// Job is the ordered list of page addresses processed by one run.
// Entries are passed to the browser uninterpreted.
type Job []string

// ParseJob extracts addresses from newline-delimited text, skipping blank
// lines and lines starting with CommentPrefix. Surrounding whitespace is trimmed.
func ParseJob(text string) Job {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	job := make(Job, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, CommentPrefix) {
			continue
		}
		job = append(job, line)
	}
	return job
}

// Len returns the number of addresses in the job
func (j Job) Len() int {
	return len(j)
}

// IsEmpty reports whether the job has no addresses
func (j Job) IsEmpty() bool {
	return len(j) == 0
}
