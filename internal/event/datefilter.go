package event

import (
	"time"
)

const dateLayout = "2006-01-02"

// Range keywords accepted by the listing endpoint
const (
	RangeToday        = "today"
	RangeCurrentWeek  = "current-week"
	RangeLastWeek     = "last-week"
	RangeCurrentMonth = "current-month"
	RangeLastMonth    = "last-month"
)

// DateFilter is the resolved date predicate for a listing query. Either Exact
// is set, or From/To bound an inclusive window, or the filter is zero and no
// date constraint applies. All values are "YYYY-MM-DD" strings, which compare
// lexicographically in the same order as the calendar.
type DateFilter struct {
	Exact string
	From  string
	To    string
}

func (f DateFilter) IsZero() bool {
	return f.Exact == "" && f.From == "" && f.To == ""
}

// ResolveDateFilter maps an explicit date or a range keyword onto a date
// predicate. An explicit date always wins over the keyword. Weeks start on
// Sunday. An unrecognized or absent keyword yields the zero filter.
func ResolveDateFilter(explicitDate, rangeKeyword string, now time.Time) DateFilter {
	if explicitDate != "" {
		return DateFilter{Exact: explicitDate}
	}

	switch rangeKeyword {
	case RangeToday:
		return DateFilter{Exact: now.Format(dateLayout)}

	case RangeCurrentWeek:
		start := now.AddDate(0, 0, -int(now.Weekday()))
		end := start.AddDate(0, 0, 6)
		return DateFilter{From: start.Format(dateLayout), To: end.Format(dateLayout)}

	case RangeLastWeek:
		weekStart := now.AddDate(0, 0, -int(now.Weekday()))
		start := weekStart.AddDate(0, 0, -7)
		end := weekStart.AddDate(0, 0, -1)
		return DateFilter{From: start.Format(dateLayout), To: end.Format(dateLayout)}

	case RangeCurrentMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location())
		return DateFilter{From: start.Format(dateLayout), To: end.Format(dateLayout)}

	case RangeLastMonth:
		start := time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, now.Location())
		end := time.Date(now.Year(), now.Month(), 0, 0, 0, 0, 0, now.Location())
		return DateFilter{From: start.Format(dateLayout), To: end.Format(dateLayout)}
	}

	return DateFilter{}
}
