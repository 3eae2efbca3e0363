package scheduling

import (
	"errors"
	"fmt"
)

// RejectionKind classifies why a scheduling request was turned down.
// Rejections are decision outcomes, not faults: the public facade converts
// them to the documented false/zero/empty results.
type RejectionKind int

const (
	RejectInvalidRoute RejectionKind = iota + 1
	RejectInvalidTruck
	RejectWorkingHours
	RejectDuplicateRoute
	RejectNoFacility
	RejectNoTruck
	RejectNoDriver
	RejectNoTechnician
	RejectStorage
)

// String returns the snake_case name used in logs, metrics and audit
// records.
func (k RejectionKind) String() string {
	switch k {
	case RejectInvalidRoute:
		return "invalid_route"
	case RejectInvalidTruck:
		return "invalid_truck"
	case RejectWorkingHours:
		return "working_hours"
	case RejectDuplicateRoute:
		return "duplicate_route"
	case RejectNoFacility:
		return "no_facility"
	case RejectNoTruck:
		return "no_truck"
	case RejectNoDriver:
		return "no_driver"
	case RejectNoTechnician:
		return "no_technician"
	case RejectStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Rejection is the error carried across component boundaries when a
// request does not qualify.
type Rejection struct {
	Kind   RejectionKind
	Detail string
}

func (r *Rejection) Error() string {
	if r.Detail == "" {
		return r.Kind.String()
	}
	return fmt.Sprintf("%s: %s", r.Kind, r.Detail)
}

func reject(kind RejectionKind, format string, args ...any) *Rejection {
	return &Rejection{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// KindOf extracts the rejection kind from an error, mapping anything that
// is not a Rejection (storage faults, context cancellation) to
// RejectStorage.
func KindOf(err error) RejectionKind {
	var r *Rejection
	if errors.As(err, &r) {
		return r.Kind
	}
	return RejectStorage
}
