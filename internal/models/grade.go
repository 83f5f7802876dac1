package models

// GradePointTable maps grade symbols to numeric point values. It is an
// immutable configuration value injected into the aggregation engine, not a
// package-level singleton. Symbols absent from the table (including the
// "N/A" placeholder used before grading) score zero.
type GradePointTable map[string]float64

// Points returns the point value for a grade symbol, zero when unknown.
func (t GradePointTable) Points(grade string) float64 {
	return t[grade]
}

// DefaultGradePoints returns the institute's standard ten-point scale.
func DefaultGradePoints() GradePointTable {
	return GradePointTable{
		"AA": 10,
		"AB": 9,
		"BB": 8,
		"BC": 7,
		"CC": 6,
		"CD": 5,
		"DD": 4,
		"FA": 0,
		"FP": 0,
		"FD": 0,
	}
}
