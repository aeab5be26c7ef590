package nasa

import "time"

// parseISODate validates the YYYY-MM-DD shape shared by every dated source.
func parseISODate(s string) (time.Time, bool) {
	t, err := time.Parse(isoDateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// validateDateRange checks both ends parse and start is not after end.
// Returns the parsed bounds for span checks.
func validateDateRange(source, start, end string) (time.Time, time.Time, error) {
	from, ok := parseISODate(start)
	if !ok {
		return time.Time{}, time.Time{}, invalidParams(source, "start date %q is not a valid YYYY-MM-DD date", start)
	}
	to, ok := parseISODate(end)
	if !ok {
		return time.Time{}, time.Time{}, invalidParams(source, "end date %q is not a valid YYYY-MM-DD date", end)
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, invalidRange(source, "start date %s is after end date %s", start, end)
	}
	return from, to, nil
}
