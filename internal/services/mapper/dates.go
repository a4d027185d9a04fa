package mapper

import "time"

const (
	InvalidDate = "Invalid date"
	DateLayout  = "3:04:05 PM 1/2/2006"
)

// FormatDate renders a raw server timestamp as time then date in local time.
// Anything it cannot parse renders as InvalidDate.
func FormatDate(raw string) string {
	t := parseTimeLoose(raw)
	if t == nil {
		return InvalidDate
	}
	return t.In(time.Local).Format(DateLayout)
}

// FormatDatePtr is FormatDate for optional fields; nil is invalid.
func FormatDatePtr(raw *string) string {
	if raw == nil {
		return InvalidDate
	}
	return FormatDate(*raw)
}
