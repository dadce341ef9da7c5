package request

import (
	"fmt"

	"rentbook/internal/domain/calendar"
)

// Dates cross the HTTP boundary as "YYYY-MM-DD" strings and nothing else.

func parseDay(field, value string) (calendar.Day, error) {
	day, err := calendar.ParseDay(value)
	if err != nil {
		return calendar.Day{}, fmt.Errorf("%s: %w", field, err)
	}
	return day, nil
}

func parseDays(field string, values []string) ([]calendar.Day, error) {
	days := make([]calendar.Day, 0, len(values))
	for _, v := range values {
		day, err := parseDay(field, v)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, nil
}
