package model

// Availability is the tri-state outcome of the last completed check.
type Availability int

const (
	AvailabilityUnknown Availability = iota // no check has resolved
	AvailabilityFree                        // subdomain can be claimed
	AvailabilityTaken                       // subdomain is already in use
)

// AvailabilityOf maps a backend answer onto the tri-state.
func AvailabilityOf(available bool) Availability {
	if available {
		return AvailabilityFree
	}
	return AvailabilityTaken
}

// Known reports whether a check has resolved into a definite answer.
func (a Availability) Known() bool {
	return a != AvailabilityUnknown
}

func (a Availability) String() string {
	switch a {
	case AvailabilityFree:
		return "available"
	case AvailabilityTaken:
		return "taken"
	default:
		return "unknown"
	}
}

// CheckState is the transient state of one checker view.
// It is always handed out by value; ErrorMessage "" means no error.
type CheckState struct {
	QueryText    string
	Availability Availability
	IsPending    bool
	ErrorMessage string
}

// HasError reports whether an error banner should be shown.
func (s CheckState) HasError() bool {
	return s.ErrorMessage != ""
}
