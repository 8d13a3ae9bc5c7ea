// Package domain holds the core types of the compensation dataset: the
// canonical record, pay units and the annualization policy.
package domain

import "strings"

// PayUnit is the reporting period of a wage figure.
type PayUnit string

const (
	UnitHourly   PayUnit = "hour"
	UnitWeekly   PayUnit = "week"
	UnitBiWeekly PayUnit = "bi-weekly"
	UnitMonthly  PayUnit = "month"
	UnitYearly   PayUnit = "year"
)

// ParsePayUnit maps the spellings found in source workbooks onto a
// PayUnit. Matching is case-insensitive and ignores surrounding blanks.
func ParsePayUnit(s string) (PayUnit, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hour", "hourly":
		return UnitHourly, true
	case "week", "weekly":
		return UnitWeekly, true
	case "bi-weekly", "biweekly":
		return UnitBiWeekly, true
	case "month", "monthly":
		return UnitMonthly, true
	case "year", "yearly", "annual":
		return UnitYearly, true
	}
	return "", false
}

// Record is one admissible wage disclosure. Title, City and State keep
// the display form from the source; matching happens on simplified
// copies held by the storage layer.
type Record struct {
	Title  string
	Salary float64
	Unit   PayUnit
	City   string
	State  string
}

// HasLocation reports whether the record names at least a city or a
// state.
func (r Record) HasLocation() bool {
	return r.City != "" || r.State != ""
}

// CityState joins city and state into one searchable location string,
// skipping whichever part is absent.
func (r Record) CityState() string {
	switch {
	case r.City == "":
		return r.State
	case r.State == "":
		return r.City
	default:
		return r.City + " " + r.State
	}
}

// RejectReason says why a source row did not become a record.
type RejectReason int

const (
	ReasonMissingTitle RejectReason = iota
	ReasonMissingSalary
	ReasonMissingLocation
)

func (r RejectReason) String() string {
	switch r {
	case ReasonMissingTitle:
		return "missing_title"
	case ReasonMissingSalary:
		return "missing_or_invalid_salary"
	case ReasonMissingLocation:
		return "missing_location"
	}
	return "unknown"
}
