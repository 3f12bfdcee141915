// Package notify formats operator-facing reminders about upcoming
// appointments.
package notify

import (
	"fmt"
	"strings"

	"github.com/adilwahab585-svg/Reimagine-clinic/internal/appointments"
)

// TomorrowNotice renders the reminder shown at startup for
// appointments due tomorrow. It returns the empty string when nothing
// is due so callers can skip the banner entirely.
func TomorrowNotice(due []appointments.Record) string {
	if len(due) == 0 {
		return ""
	}

	lines := make([]string, 0, len(due)+1)
	lines = append(lines, "Appointments due tomorrow:")
	for _, rec := range due {
		lines = append(lines, fmt.Sprintf("- %s (Phone: %s) on %s", rec.Name, rec.Phone, rec.Date))
	}
	return strings.Join(lines, "\n")
}
