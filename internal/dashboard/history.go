package dashboard

import (
	"strings"
	"time"

	"github.com/ridetracker/ridetracker/internal/money"
	"github.com/ridetracker/ridetracker/internal/rides"
)

const (
	maxPlaceLen = 30
	ellipsis    = "..."
	dateLayout  = "02/01/2006 15:04"
)

// buildRows turns records into display rows, preserving order.
func buildRows(list []rides.Ride, f *money.Formatter) []Row {
	rows := make([]Row, 0, len(list))
	for _, r := range list {
		rows = append(rows, Row{
			ID:       r.ID,
			Platform: orDefault(r.Platform, MissingText),
			Date:     formatDate(r.Date),
			Path:     truncatePlace(r.Origin) + " → " + truncatePlace(r.Destination),
			Payment:  orDefault(r.PaymentMethod, MissingPayment),
			Value:    f.Format(r.Value),
		})
	}
	return rows
}

// truncatePlace cuts an origin or destination to 30 characters.
func truncatePlace(s string) string {
	if s == "" {
		return MissingText
	}
	r := []rune(s)
	if len(r) <= maxPlaceLen {
		return s
	}
	return string(r[:maxPlaceLen]) + ellipsis
}

// formatDate renders ISO timestamps as dd/mm/yyyy hh:mm. The API already
// sends that layout, so anything else passes through untouched.
func formatDate(s string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(dateLayout)
		}
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t.Format("02/01/2006")
	}
	return s
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
