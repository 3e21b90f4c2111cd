package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"tripvoice-service/pkg/logger"
)

var (
	compactDateRe = regexp.MustCompile(`^\d{8}$`)
	dayNumberRe   = regexp.MustCompile(`\b(\d{1,2})\b`)
)

// monthNumbers maps month names and abbreviations to month numbers.
// Longer names are checked first so "june" is not matched by "jun" in
// a different month.
var monthNumbers = []struct {
	name  string
	month time.Month
}{
	{"january", time.January}, {"february", time.February}, {"march", time.March},
	{"april", time.April}, {"august", time.August}, {"september", time.September},
	{"october", time.October}, {"november", time.November}, {"december", time.December},
	{"june", time.June}, {"july", time.July},
	{"jan", time.January}, {"feb", time.February}, {"mar", time.March},
	{"apr", time.April}, {"may", time.May}, {"jun", time.June},
	{"jul", time.July}, {"aug", time.August}, {"sep", time.September},
	{"oct", time.October}, {"nov", time.November}, {"dec", time.December},
}

// DateNormalizer converts the date shapes produced by the voice layer
// into ISO dates. Inputs that cannot be interpreted fall back to a
// configured default date, never to an error.
type DateNormalizer struct {
	defaultDate string
	logger      logger.Logger
}

// NewDateNormalizer creates a date normalizer with the given fallback date
func NewDateNormalizer(defaultDate string, logger logger.Logger) *DateNormalizer {
	return &DateNormalizer{
		defaultDate: defaultDate,
		logger:      logger,
	}
}

// Normalize returns the ISO form of raw and whether the fallback default
// was used. Accepted shapes:
//   - compact 8-digit dates ("20251228") are re-dashed
//   - dates already starting with a 4-digit year pass through unchanged,
//     so normalization is idempotent
//   - natural month-and-day phrases ("January 15") get a year resolved
//     relative to ref
func (n *DateNormalizer) Normalize(raw string, ref time.Time) (string, bool) {
	date := strings.TrimSpace(raw)

	if date == "" {
		n.logger.Warn("Empty date, using default", "default", n.defaultDate)
		return n.defaultDate, true
	}

	if compactDateRe.MatchString(date) {
		converted := fmt.Sprintf("%s-%s-%s", date[0:4], date[4:6], date[6:8])
		n.logger.Info("Converted compact date", "raw", date, "date", converted)
		return converted, false
	}

	if len(date) >= 4 && isDigits(date[0:4]) {
		return date, false
	}

	if converted, ok := n.parseNaturalDate(date, ref); ok {
		n.logger.Info("Converted natural date", "raw", date, "date", converted)
		return converted, false
	}

	n.logger.Warn("Could not parse date, using default", "raw", date, "default", n.defaultDate)
	return n.defaultDate, true
}

// parseNaturalDate handles phrases like "January 15" or "15 jan"
func (n *DateNormalizer) parseNaturalDate(date string, ref time.Time) (string, bool) {
	lower := strings.ToLower(date)

	var month time.Month
	for _, m := range monthNumbers {
		if strings.Contains(lower, m.name) {
			month = m.month
			break
		}
	}
	if month == 0 {
		return "", false
	}

	dayMatch := dayNumberRe.FindStringSubmatch(lower)
	if dayMatch == nil {
		return "", false
	}
	day, err := strconv.Atoi(dayMatch[1])
	if err != nil || day < 1 || day > 31 {
		return "", false
	}

	return fmt.Sprintf("%04d-%02d-%02d", resolveYear(month, ref), month, day), true
}

// resolveYear picks a year for a date mentioned without one. Bookings in
// January and February land in the reference year, later months roll over
// to the next year.
func resolveYear(month time.Month, ref time.Time) int {
	if month <= time.February {
		return ref.Year()
	}
	return ref.Year() + 1
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
