package enums

import "fmt"

// QualityGrade is the letter grade derived from an overall quality score.
type QualityGrade string

const (
	QualityGradeA QualityGrade = "A"
	QualityGradeB QualityGrade = "B"
	QualityGradeC QualityGrade = "C"
	QualityGradeD QualityGrade = "D"
	QualityGradeF QualityGrade = "F"
)

var validQualityGrades = []QualityGrade{
	QualityGradeA,
	QualityGradeB,
	QualityGradeC,
	QualityGradeD,
	QualityGradeF,
}

// GradeForScore maps a 0-100 quality score to its letter grade.
// Thresholds: >=95 A, >=85 B, >=75 C, >=60 D, else F.
func GradeForScore(score float64) QualityGrade {
	switch {
	case score >= 95:
		return QualityGradeA
	case score >= 85:
		return QualityGradeB
	case score >= 75:
		return QualityGradeC
	case score >= 60:
		return QualityGradeD
	default:
		return QualityGradeF
	}
}

// IsValid reports whether the value is a known QualityGrade.
func (q QualityGrade) IsValid() bool {
	for _, candidate := range validQualityGrades {
		if candidate == q {
			return true
		}
	}
	return false
}

// ParseQualityGrade converts raw input into a QualityGrade.
func ParseQualityGrade(value string) (QualityGrade, error) {
	for _, candidate := range validQualityGrades {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid quality grade %q", value)
}
