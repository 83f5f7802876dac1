package service

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/sarveshmore2004/Institute-Automation-System-sub002/internal/models"
	appErrors "github.com/sarveshmore2004/Institute-Automation-System-sub002/pkg/errors"
)

// ComputeSemesterSummaries derives the per-semester SPI and running CPI from
// a student's completed course records. Pure and deterministic: the input
// order does not matter, the output is ordered by ascending semester because
// CPI is a running cumulative statistic.
//
// Grades outside the table (including the "N/A" placeholder) score zero but
// their credits still weigh into the denominators. Rounding to two decimals
// happens only when emitting SPI/CPI; running totals stay unrounded so
// rounding error cannot compound across semesters.
func ComputeSemesterSummaries(records []models.CompletedCourse, table models.GradePointTable) ([]models.SemesterSummary, error) {
	type semesterTotals struct {
		credits int
		score   float64
	}

	totalsBySemester := make(map[int]*semesterTotals)
	for _, record := range records {
		credits, err := parseCredits(record.Credits)
		if err != nil {
			return nil, err
		}
		totals := totalsBySemester[record.Semester]
		if totals == nil {
			totals = &semesterTotals{}
			totalsBySemester[record.Semester] = totals
		}
		totals.credits += credits
		totals.score += float64(credits) * table.Points(record.Grade)
	}

	semesters := make([]int, 0, len(totalsBySemester))
	for semester := range totalsBySemester {
		semesters = append(semesters, semester)
	}
	sort.Ints(semesters)

	summaries := make([]models.SemesterSummary, 0, len(semesters))
	var runningCredits int
	var runningScore float64
	for _, semester := range semesters {
		totals := totalsBySemester[semester]
		if totals.credits == 0 {
			return nil, appErrors.Clone(appErrors.ErrDegenerateSemester,
				fmt.Sprintf("semester %d has zero aggregate credits", semester))
		}
		runningCredits += totals.credits
		runningScore += totals.score
		summaries = append(summaries, models.SemesterSummary{
			Semester: semester,
			SPI:      round2(totals.score / float64(totals.credits)),
			CPI:      round2(runningScore / float64(runningCredits)),
		})
	}
	return summaries, nil
}

// parseCredits coerces the source credit representation to a non-negative
// integer. Malformed values are fatal input errors, never silently zero.
func parseCredits(raw string) (int, error) {
	credits, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || credits < 0 {
		return 0, appErrors.Clone(appErrors.ErrInvalidCreditValue,
			fmt.Sprintf("credit value %q is not a non-negative integer", raw))
	}
	return credits, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
