package validation

import (
	"regexp"
	"strings"
	"time"

	"userregistry/internal/models"
)

const minimumAgeYears = 18

var (
	mobileRegex = regexp.MustCompile(`^\d{10}$`)
	emailRegex  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	dobRegex    = regexp.MustCompile(`^(0[1-9]|[12][0-9]|3[01])/(0[1-9]|1[0-2])/\d{4}$`)
	pinRegex    = regexp.MustCompile(`^\d{6}$`)
)

const (
	msgFullName     = "Full Name is required and must be at least 2 characters long"
	msgMobile       = "Mobile Number must be exactly 10 digits"
	msgEmail        = "Valid Email Address is required"
	msgDateOfBirth  = "Date of Birth must be a valid date in dd/mm/yyyy format"
	msgMinimumAge   = "User must be at least 18 years old"
	msgAddressLine1 = "Address Line 1 is required and must be at least 5 characters long"
	msgCity         = "City is required and must be at least 2 characters long"
	msgPinCode      = "Pin Code must be exactly 6 digits"
)

// ValidateCreate checks every field of a registration payload and returns all
// failures, not just the first. An empty slice means the payload is valid.
func ValidateCreate(in models.CreateUser) []string {
	return validateCreateAt(in, time.Now())
}

func validateCreateAt(in models.CreateUser, now time.Time) []string {
	var errs []string

	if len(strings.TrimSpace(in.FullName)) < 2 {
		errs = append(errs, msgFullName)
	}
	if !mobileRegex.MatchString(in.MobileNumber) {
		errs = append(errs, msgMobile)
	}
	if !emailRegex.MatchString(in.EmailAddress) {
		errs = append(errs, msgEmail)
	}
	errs = append(errs, dateOfBirthErrors(in.DateOfBirth, now)...)
	if len(strings.TrimSpace(in.AddressLine1)) < 5 {
		errs = append(errs, msgAddressLine1)
	}
	if len(strings.TrimSpace(in.City)) < 2 {
		errs = append(errs, msgCity)
	}
	if !pinRegex.MatchString(in.PinCode) {
		errs = append(errs, msgPinCode)
	}

	return errs
}

// ValidatePatch applies the same rules to the fields present in a partial
// update payload. Absent fields are not checked.
func ValidatePatch(in models.UserPatch) []string {
	return validatePatchAt(in, time.Now())
}

func validatePatchAt(in models.UserPatch, now time.Time) []string {
	var errs []string

	if in.FullName != nil && len(strings.TrimSpace(*in.FullName)) < 2 {
		errs = append(errs, msgFullName)
	}
	if in.MobileNumber != nil && !mobileRegex.MatchString(*in.MobileNumber) {
		errs = append(errs, msgMobile)
	}
	if in.EmailAddress != nil && !emailRegex.MatchString(*in.EmailAddress) {
		errs = append(errs, msgEmail)
	}
	if in.DateOfBirth != nil {
		errs = append(errs, dateOfBirthErrors(*in.DateOfBirth, now)...)
	}
	if in.AddressLine1 != nil && len(strings.TrimSpace(*in.AddressLine1)) < 5 {
		errs = append(errs, msgAddressLine1)
	}
	if in.City != nil && len(strings.TrimSpace(*in.City)) < 2 {
		errs = append(errs, msgCity)
	}
	if in.PinCode != nil && !pinRegex.MatchString(*in.PinCode) {
		errs = append(errs, msgPinCode)
	}

	return errs
}

// dateOfBirthErrors checks the dd/mm/yyyy pattern, that the date exists on
// the calendar (31/02/2000 matches the pattern but not the calendar), and
// that the holder is at least 18 as of now.
func dateOfBirthErrors(value string, now time.Time) []string {
	if !dobRegex.MatchString(value) {
		return []string{msgDateOfBirth}
	}

	dob, err := time.Parse("02/01/2006", value)
	if err != nil {
		return []string{msgDateOfBirth}
	}

	eighteenth := dob.AddDate(minimumAgeYears, 0, 0)
	if now.Before(eighteenth) {
		return []string{msgMinimumAge}
	}
	return nil
}
