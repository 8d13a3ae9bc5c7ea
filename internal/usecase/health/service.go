// Package health aggregates component health checks.
package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results. Records carries the dataset
// size when the store is reachable.
type Report struct {
	Status  Status
	Checks  map[string]CheckResult
	Records int
}

// Service coordinates health checks.
type Service struct {
	db      DBPinger
	records RecordCounter
}

// New creates a Service. records can be nil.
func New(db DBPinger, records RecordCounter) *Service {
	return &Service{db: db, records: records}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
	} else {
		checks["database"] = CheckOK
	}

	var records int
	if s.records != nil {
		n, err := s.records.Count(ctx)
		if err != nil {
			checks["index"] = CheckError
		} else {
			checks["index"] = CheckOK
			records = n
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks, Records: records}
}
