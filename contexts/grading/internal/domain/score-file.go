package domain

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	ErrMissingField       = errors.New("missing field")
	ErrInvalidScoreFormat = errors.New("invalid score format")
)

const fieldsPerLine = 3

// ParseScores reads one student per line in the format `id, full name, score`.
// Blank lines are skipped. The first malformed line stops parsing,
// the error names its line number.
func ParseScores(r io.Reader) ([]Student, error) {
	var (
		students []Student
		lineNo   int
	)

	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineNo++

		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) != fieldsPerLine {
			return nil, fmt.Errorf("%w: line %d: expected %d fields, found %d",
				ErrMissingField, lineNo, fieldsPerLine, len(fields))
		}

		id, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: invalid id %q", ErrInvalidScoreFormat, lineNo, strings.TrimSpace(fields[0]))
		}

		score, err := strconv.Atoi(strings.TrimSpace(fields[2]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: score %q is not a valid integer",
				ErrInvalidScoreFormat, lineNo, strings.TrimSpace(fields[2]))
		}

		students = append(students, Student{
			ID:       StudentID(id),
			FullName: strings.TrimSpace(fields[1]),
			Score:    score,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read scores: %w", err)
	}

	return students, nil
}

// WriteReport writes one line per student.
func WriteReport(w io.Writer, students []Student) error {
	bw := bufio.NewWriter(w)

	for _, s := range students {
		if _, err := fmt.Fprintln(bw, s); err != nil {
			return fmt.Errorf("could not write report: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("could not write report: %w", err)
	}

	return nil
}
