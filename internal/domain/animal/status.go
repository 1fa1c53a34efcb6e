package animal

import "fmt"

// Status represents the adoption state of a listing.
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusAdopted   Status = "ADOPTED"
)

// IsValid returns true if the status is a recognized adoption status.
func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusAdopted:
		return true
	}
	return false
}

// Toggle returns the opposite status: AVAILABLE becomes ADOPTED and anything
// else becomes AVAILABLE.
func (s Status) Toggle() Status {
	if s == StatusAvailable {
		return StatusAdopted
	}
	return StatusAvailable
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a string to a Status, returning an error if invalid.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid animal status: %s", s)
	}
	return status, nil
}
