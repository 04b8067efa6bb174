package servicehistory

import "time"

const (
	// InputDateLayout accepts DD/MM/YYYY with 1 or 2 digit day and month
	InputDateLayout = "2/1/2006"
	// CanonicalDateLayout is the stored form, YYYY-MM-DD
	CanonicalDateLayout = "2006-01-02"
)

// DateResult is the outcome of ParseDate. Raw is always the input
type DateResult struct {
	OK   bool
	Date time.Time
	Raw  string
}

// ParseDate reads a DD/MM/YYYY calendar date.
// Calendar-invalid dates (31/02/2024) and trailing text are not OK
func ParseDate(s string) DateResult {
	t, err := time.Parse(InputDateLayout, s)
	if err != nil {
		return DateResult{Raw: s}
	}
	return DateResult{OK: true, Date: t, Raw: s}
}

// Canonical returns YYYY-MM-DD when the date parsed, otherwise the raw input unchanged
func (d DateResult) Canonical() string {
	if !d.OK {
		return d.Raw
	}
	return d.Date.Format(CanonicalDateLayout)
}

// NormalizeDate is ParseDate(s).Canonical()
func NormalizeDate(s string) string { return ParseDate(s).Canonical() }
