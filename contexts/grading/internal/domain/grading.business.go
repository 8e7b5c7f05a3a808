package domain

import (
	"fmt"

	"github.com/go-arrower/records/aindex"
	"github.com/go-arrower/records/arepo"
)

type StudentID int

type Student struct {
	ID       StudentID `json:"id"`
	FullName string    `json:"fullName" validate:"required"`
	Score    int       `json:"score"`
}

func (s Student) EntityID() StudentID { return s.ID }

func (s Student) Grade() Grade {
	return GradeOf(s.Score)
}

// String is the line of a student in the report.
func (s Student) String() string {
	return fmt.Sprintf("%s (ID: %d): Score = %d, Grade = %s", s.FullName, s.ID, s.Score, s.Grade())
}

type Grade string

const (
	GradeA       Grade = "A"
	GradeB       Grade = "B"
	GradeC       Grade = "C"
	GradeD       Grade = "D"
	GradeF       Grade = "F"
	GradeInvalid Grade = "Invalid"
)

// Grades returns all grades from best to worst.
func Grades() []Grade {
	return []Grade{GradeA, GradeB, GradeC, GradeD, GradeF, GradeInvalid}
}

// GradeOf maps a score to its grade. Scores above 100 are Invalid, all scores below 50 fail.
func GradeOf(score int) Grade {
	switch {
	case score > 100: //nolint:mnd // maximum score
		return GradeInvalid
	case score >= 80: //nolint:mnd
		return GradeA
	case score >= 70: //nolint:mnd
		return GradeB
	case score >= 60: //nolint:mnd
		return GradeC
	case score >= 50: //nolint:mnd
		return GradeD
	default:
		return GradeF
	}
}

type (
	StudentRepository = arepo.Repository[Student, StudentID]

	// GradeIndex groups students by their grade.
	GradeIndex = aindex.GroupIndex[Grade, Student]
)

func NewGradeIndex() *GradeIndex {
	return aindex.New[Grade, Student]()
}

// ByGrade is the key of the GradeIndex.
func ByGrade(s Student) Grade {
	return s.Grade()
}
