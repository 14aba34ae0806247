package core

import (
	"time"
)

const (
	// DateLayout is the wire format of calendar dates.
	DateLayout = "2006-01-02"
	// DisplayDateLayout is the format dates are shown in.
	DisplayDateLayout = "02.01.2006"
)

// DisplayDate reformats a wire date for display; unparsable or empty dates show as "N/A".
func DisplayDate(s string) string {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return "N/A"
	}
	return d.Format(DisplayDateLayout)
}
