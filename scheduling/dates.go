// Package scheduling materializes weekly schedule templates into concrete
// bookable slots and manages blocking windows over them.
package scheduling

import (
	"time"

	"github.com/turnosapp/backend/models"
)

// DefaultLeadDays is the generation lead: slots are materialized two weeks
// ahead so customers book against a stable horizon.
const DefaultLeadDays = 14

// NextTargetDate resolves a template weekday to the concrete date the
// generator materializes: the first date at least leadDays after today that
// falls on that weekday. The result always lands on the template's weekday,
// between leadDays and leadDays+6 days out.
func NextTargetDate(today time.Time, day models.Weekday, leadDays int) models.Date {
	target := models.DateOf(today).AddDays(leadDays)
	for i := 0; i < 6 && target.Weekday() != day.Time(); i++ {
		target = target.AddDays(1)
	}
	return target
}
