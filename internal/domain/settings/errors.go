package settings

import "errors"

var (
	ErrInvalidClockWindow = errors.New("clock window boundaries must be ordered: morning start <= morning end <= afternoon start <= afternoon end")
	ErrInvalidStoredValue = errors.New("stored setting value is not a valid HH:MM time")
)
