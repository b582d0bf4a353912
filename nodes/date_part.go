package nodes

import "strings"

// DatePart is a date/time field keyword such as YEAR or MINUTE.
type DatePart int

const (
	PartYear DatePart = iota
	PartQuarter
	PartMonth
	PartWeek
	PartDay
	PartHour
	PartMinute
	PartSecond
	PartMicrosecond
)

var datePartNames = [...]string{
	PartYear:        "year",
	PartQuarter:     "quarter",
	PartMonth:       "month",
	PartWeek:        "week",
	PartDay:         "day",
	PartHour:        "hour",
	PartMinute:      "minute",
	PartSecond:      "second",
	PartMicrosecond: "microsecond",
}

// String returns the lower-case name of the part.
func (p DatePart) String() string { return datePartNames[p] }

// LookupDatePart matches name case-insensitively against the known parts.
func LookupDatePart(name string) (DatePart, bool) {
	lower := strings.ToLower(name)
	for i, n := range datePartNames {
		if n == lower {
			return DatePart(i), true
		}
	}
	return 0, false
}

// DatePartNames returns the upper-case keyword for every part.
func DatePartNames() []string {
	out := make([]string, len(datePartNames))
	for i, n := range datePartNames {
		out[i] = strings.ToUpper(n)
	}
	return out
}

// DatePartNode is a bare date-part keyword used as a value, for example
// the first argument of DATE_TRUNC(YEAR, ...).
type DatePartNode struct {
	Part DatePart
}

func (n *DatePartNode) Accept(v Visitor) string { return v.VisitDatePart(n) }

// NewDatePart creates a DatePartNode.
func NewDatePart(p DatePart) *DatePartNode {
	return &DatePartNode{Part: p}
}
