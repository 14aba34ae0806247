package review

import (
	"math"
	"strconv"

	"github.com/springreviewer/admin/core"
)

// SanitizeGrade keeps the ASCII digits of free text and interprets them as a grade.
// Empty input is 0; digits overflowing an int are reported as math.MaxInt32 so range checks reject them.
func SanitizeGrade(text string) (digits string, grade int) {
	digits = core.DigitsOnly(text)
	if digits == "" {
		return "", 0
	}
	grade, err := strconv.Atoi(digits)
	if err != nil || grade > math.MaxInt32 {
		return digits, math.MaxInt32
	}
	return digits, grade
}
