package service

import "time"

// Greeting picks the dashboard salutation for the local hour.
func Greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 5 && h < 12:
		return "Morning"
	case h >= 12 && h < 17:
		return "Afternoon"
	case h >= 17 && h < 21:
		return "Evening"
	default:
		return "Night"
	}
}
