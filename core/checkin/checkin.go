// Package checkin gates onboarding behind the attendance code handed out at the
// in-person orientation.
package checkin

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Checkin struct {
	UserID      string    `json:"-" db:"user_id"`
	CheckedInAt time.Time `json:"checkedInAt" db:"checked_in_at"`
}

type Status struct {
	CheckedIn   bool       `json:"checkedIn"`
	CheckedInAt *time.Time `json:"checkedInAt,omitempty"`
}

type CodeNew struct {
	Code string `json:"code" validate:"required,len=5,number"`
}

// Verifier compares attendance codes against a bcrypt hash so the plain code
// does not stay in memory.
type Verifier struct {
	hash []byte
}

func NewVerifier(code string) (Verifier, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return Verifier{}, fmt.Errorf("hashing attendance code: %w", err)
	}
	return Verifier{hash: h}, nil
}

func (v Verifier) Match(code string) bool {
	return bcrypt.CompareHashAndPassword(v.hash, []byte(code)) == nil
}
