package utils

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// GenerateBookingID creates a unique booking ID with timestamp.
// Time-based uniqueness is sufficient here; concurrent collisions are
// accepted as negligible.
func GenerateBookingID() string {
	rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now()

	// Format: BK-YYYYMMDD-HHMMSS-RANDOM
	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", rand.Intn(10000))

	return fmt.Sprintf("BK-%s-%s-%s", datePart, timePart, randomPart)
}

// FormatEUR renders a whole-EUR amount the way it is captured, e.g. "€1000"
func FormatEUR(amount int) string {
	return fmt.Sprintf("€%d", amount)
}

// FormatLongDate renders a YYYY-MM-DD date for emails, e.g. "Monday, June 1, 2026".
// Returns the raw input when it does not parse.
func FormatLongDate(dateStr string) string {
	d, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return dateStr
	}
	return d.Format("Monday, January 2, 2006")
}
