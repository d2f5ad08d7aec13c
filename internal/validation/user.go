package validation

// UserPayload is a candidate account body. Nil pointers mark fields
// absent from the request, which matters in partial mode.
type UserPayload struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Phone    *string `json:"phone"`
}

// ValidateUser checks u against the account rules. Full mode requires
// name, email and password; partial mode only validates fields present.
func ValidateUser(u UserPayload, partial bool) Result {
	var errs []string

	if !partial {
		if u.Name == nil || trimmedLen(*u.Name) < 2 {
			errs = append(errs, "Name is required and must be at least 2 characters")
		}
		if u.Email == nil || !IsValidEmail(*u.Email) {
			errs = append(errs, "Valid email address is required")
		}
		if u.Password == nil || len(*u.Password) < 6 {
			errs = append(errs, "Password must be at least 6 characters long")
		}
	} else {
		if u.Name != nil && trimmedLen(*u.Name) < 2 {
			errs = append(errs, "Name must be at least 2 characters")
		}
		if u.Email != nil && !IsValidEmail(*u.Email) {
			errs = append(errs, "Valid email address is required")
		}
	}

	if u.Name != nil && len(*u.Name) > 50 {
		errs = append(errs, "Name must be less than 50 characters")
	}

	if u.Phone != nil && *u.Phone != "" && len(*u.Phone) < 10 {
		errs = append(errs, "Phone number must be at least 10 characters")
	}

	return result(errs)
}
