// Package auth verifies signed session tokens and attaches the authenticated
// principal to the request context.
package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Role is the closed set of account roles.
type Role int

const (
	RoleUnknown Role = iota
	RoleEmployer
	RoleJobSeeker
)

// Wire values match the strings stored by the frontend and user records.
const (
	employerValue  = "Employer"
	jobSeekerValue = "Job Seeker"
)

// ParseRole converts a wire value to a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case employerValue:
		return RoleEmployer, nil
	case jobSeekerValue:
		return RoleJobSeeker, nil
	default:
		return RoleUnknown, fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) String() string {
	switch r {
	case RoleEmployer:
		return employerValue
	case RoleJobSeeker:
		return jobSeekerValue
	default:
		return ""
	}
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Principal is the authenticated caller.
type Principal struct {
	ID   uuid.UUID
	Role Role
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal attached by Middleware.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
