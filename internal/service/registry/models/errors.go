package models

import "fmt"

func errWeekdayRange(weekday int) error {
	return fmt.Errorf("weekday must be between 0 and 6, got %d", weekday)
}

func errWeekdayDuplicate(weekday int) error {
	return fmt.Errorf("duplicate hours for weekday %d", weekday)
}

func errHoursOrder(weekday int) error {
	return fmt.Errorf("open time must be before close time for weekday %d", weekday)
}
