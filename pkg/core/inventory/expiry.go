package inventory

import (
	// 外部依赖
	"time"

	// 内部引用
	model "github.com/chemstack/labstock/pkg/model"
)

// Severity classifies a record's expiry status against a reference date.
type Severity string

const (
	SeverityOk           Severity = "ok"
	SeverityExpiringSoon Severity = "expiring_soon"
	SeverityExpired      Severity = "expired"
)

// ExpiryAlert pairs a record with its severity in the alert view.
type ExpiryAlert struct {
	Record   *model.Reagent
	Severity Severity
}

// ClassifyExpiry evaluates one expiry date at day resolution. The second
// return is false for an unknown date: such records are not "safe", they are
// simply unevaluated and stay out of the alert view.
func ClassifyExpiry(expiry *time.Time, reference time.Time, horizonDays int) (Severity, bool) {
	if expiry == nil {
		return SeverityOk, false
	}
	ref := time.Date(reference.Year(), reference.Month(), reference.Day(), 0, 0, 0, 0, time.UTC)
	d := time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 0, 0, 0, 0, time.UTC)

	switch {
	case d.Before(ref):
		return SeverityExpired, true
	case !d.After(ref.AddDate(0, 0, horizonDays)):
		return SeverityExpiringSoon, true
	default:
		return SeverityOk, true
	}
}

// EvaluateExpiry derives the alert view: exactly the records that are
// Expired or ExpiringSoon within the horizon, in store order.
func EvaluateExpiry(records []*model.Reagent, reference time.Time, horizonDays int) []ExpiryAlert {
	alerts := make([]ExpiryAlert, 0)
	for _, record := range records {
		severity, evaluated := ClassifyExpiry(record.ExpiryDate, reference, horizonDays)
		if !evaluated || severity == SeverityOk {
			continue
		}
		alerts = append(alerts, ExpiryAlert{Record: record, Severity: severity})
	}
	return alerts
}
