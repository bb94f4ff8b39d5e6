package curve

import (
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// tenorToYears converts tenor strings like "1W", "3M", "10Y" to year fractions.
// An unparseable tenor falls back to 0 (a zero-length pillar, which sorts
// first and is otherwise harmless to the bootstrap) but is logged, since a
// silently-dropped pillar is exactly the kind of curve-construction bug that
// is easy to miss until the fitted rates look wrong.
func tenorToYears(tenor string) float64 {
	raw := tenor
	tenor = strings.TrimSpace(strings.ToUpper(tenor))
	if strings.HasSuffix(tenor, "W") {
		v, _ := strconv.Atoi(strings.TrimSuffix(tenor, "W"))
		return float64(v) * 7.0 / 365.0
	}
	if strings.HasSuffix(tenor, "M") {
		v, _ := strconv.Atoi(strings.TrimSuffix(tenor, "M"))
		return float64(v) / 12.0
	}
	if strings.HasSuffix(tenor, "Y") {
		v, _ := strconv.Atoi(strings.TrimSuffix(tenor, "Y"))
		return float64(v)
	}
	if strings.HasSuffix(tenor, "D") {
		v, _ := strconv.Atoi(strings.TrimSuffix(tenor, "D"))
		return float64(v) / 365.0
	}
	// default attempt parse as years
	if v, err := strconv.ParseFloat(tenor, 64); err == nil {
		return v
	}
	logrus.WithField("tenor", raw).Warn("tenorToYears: unparseable tenor, treating as 0Y")
	return 0
}
