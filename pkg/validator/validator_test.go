package validator

import "testing"

func TestHHMMRule(t *testing.T) {
	type payload struct {
		Time string `validate:"required,hhmm"`
	}

	cv := NewValidator()

	valid := []string{"00:00", "09:30", "13:05", "23:59"}
	for _, v := range valid {
		if err := cv.Validate(&payload{Time: v}); err != nil {
			t.Errorf("Validate(%q) unexpectedly failed: %v", v, err)
		}
	}

	invalid := []string{"24:00", "9:30", "09:60", "0930", "09:30:00", "abcde"}
	for _, v := range invalid {
		if err := cv.Validate(&payload{Time: v}); err == nil {
			t.Errorf("Validate(%q) unexpectedly passed", v)
		}
	}
}

func TestFormatValidationErrors(t *testing.T) {
	type payload struct {
		Email string `validate:"required,email"`
		Start string `validate:"required,hhmm"`
	}

	cv := NewValidator()
	err := cv.Validate(&payload{Email: "not-an-email", Start: "25:00"})
	if err == nil {
		t.Fatal("expected validation errors")
	}

	formatted := cv.FormatValidationErrors(err)
	if formatted["Email"] != "Email must be a valid email address" {
		t.Errorf("Email message = %q", formatted["Email"])
	}
	if formatted["Start"] != "Start must be a time in HH:MM format" {
		t.Errorf("Start message = %q", formatted["Start"])
	}
}
