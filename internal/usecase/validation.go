package usecase

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/xavierca1/dealflow/internal/entity"
)

const minPasswordLength = 6

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateCreateLeadInput collects every problem with an individual lead form.
func ValidateCreateLeadInput(input entity.LeadForm) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.CompanyName) == "" {
		errors = append(errors, ValidationError{"companyName", "Company name is required"})
	} else if utf8.RuneCountInString(input.CompanyName) > 255 {
		errors = append(errors, ValidationError{"companyName", "Company name too long"})
	}

	if strings.TrimSpace(input.Sector) == "" {
		errors = append(errors, ValidationError{"sector", "Sector is required"})
	} else if utf8.RuneCountInString(input.Sector) > 100 {
		errors = append(errors, ValidationError{"sector", "Sector too long"})
	}

	if utf8.RuneCountInString(input.SubSector) > 150 {
		errors = append(errors, ValidationError{"subSector", "Sub-sector too long"})
	}

	if input.Website != "" && !isValidWebsite(input.Website) {
		errors = append(errors, ValidationError{"website", "Invalid website URL"})
	}

	if input.RevenueInrCr != nil && *input.RevenueInrCr <= 0 {
		errors = append(errors, ValidationError{"revenueInrCr", "Revenue must be positive"})
	}

	return errors
}

// ValidateResetPassword mirrors the reset form: minimum length and matching
// confirmation.
func ValidateResetPassword(password, confirm string) []ValidationError {
	var errors []ValidationError
	if utf8.RuneCountInString(password) < minPasswordLength {
		errors = append(errors, ValidationError{"password", fmt.Sprintf("must have at least %d characters", minPasswordLength)})
	}
	if password != confirm {
		errors = append(errors, ValidationError{"confirmPassword", "passwords do not match"})
	}
	return errors
}

func isValidWebsite(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
