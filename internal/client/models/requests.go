package models

import (
	"fmt"
	"time"

	"github.com/careerkey/portal/internal/common"
)

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Credentials) Validate() error {
	if c.Email == "" || c.Password == "" {
		return fmt.Errorf("email and password: %w", common.ErrorMissingField)
	}
	return nil
}

// StudentRegistration is the register-student request body.
type StudentRegistration struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	CNIC           string `json:"cnic"`
	DateOfBirth    string `json:"dateOfBirth"`
	Gender         string `json:"gender"`
	ContactNumber  string `json:"contactNumber"`
	Address        string `json:"address"`
	UniversityName string `json:"universityName"`
}

func (s *StudentRegistration) Validate() error {
	required := map[string]string{
		"name":     s.Name,
		"email":    s.Email,
		"password": s.Password,
		"cnic":     s.CNIC,
	}
	for field, value := range required {
		if value == "" {
			return fmt.Errorf("%s: %w", field, common.ErrorMissingField)
		}
	}
	if len(s.Password) < 8 {
		return common.ErrorPasswordLength
	}
	return nil
}

// UniversityRegistration is the register-university request body, submitted
// by HEC administrators when onboarding an institution.
type UniversityRegistration struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	Name             string `json:"name"`
	Image            string `json:"image"`
	UniversityName   string `json:"universityName"`
	City             string `json:"city"`
	CharterNumber    string `json:"charterNumber"`
	IssuingAuthority string `json:"issuingAuthority"`
	HECRecognized    bool   `json:"hecRecognized"`
}

func (u *UniversityRegistration) Validate() error {
	required := map[string]string{
		"email":            u.Email,
		"password":         u.Password,
		"name":             u.Name,
		"universityName":   u.UniversityName,
		"city":             u.City,
		"charterNumber":    u.CharterNumber,
		"issuingAuthority": u.IssuingAuthority,
	}
	for field, value := range required {
		if value == "" {
			return fmt.Errorf("%s: %w", field, common.ErrorMissingField)
		}
	}
	if len(u.Password) < 8 {
		return common.ErrorPasswordLength
	}
	return nil
}

// Attestation-request statuses used by the legacy local cache.
const (
	StatusPending       = "Pending"
	StatusVerified      = "Verified"
	StatusRejected      = "Rejected"
	StatusRejectedByHEC = "Rejected by HEC"
)

// AttestationRequest is one entry of the legacy local cache of attestation
// requests, keyed by the requesting student's email.
type AttestationRequest struct {
	ID           string
	StudentEmail string
	Degree       string
	Status       string
	RequestedAt  time.Time
	TxHash       string
}

// Settled reports whether the request reached a terminal status.
func (a *AttestationRequest) Settled() bool {
	return a.Status == StatusVerified ||
		a.Status == StatusRejected ||
		a.Status == StatusRejectedByHEC
}
