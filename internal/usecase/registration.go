package usecase

import "regexp"

// Registration field rules mirror what the onboarding client enforces inline:
// the same submission that fails here renders as per-field messages, clears
// when the field is edited, and never blocks other steps.
var (
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-()]+$`)
)

const minPasswordLength = 8

func ValidateRegistration(input RegisterInput) FieldErrors {
	errs := FieldErrors{}

	switch {
	case input.Email == "":
		errs["email"] = "Email is required"
	case !emailPattern.MatchString(input.Email):
		errs["email"] = "Email is invalid"
	}

	switch {
	case input.Phone == "":
		errs["phone"] = "Phone number is required"
	case !phonePattern.MatchString(input.Phone):
		errs["phone"] = "Phone number is invalid"
	}

	switch {
	case input.Password == "":
		errs["password"] = "Password is required"
	case len(input.Password) < minPasswordLength:
		errs["password"] = "Password must be at least 8 characters"
	}

	if input.Password != input.ConfirmPassword {
		errs["confirmPassword"] = "Passwords do not match"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
