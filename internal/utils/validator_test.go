package utils

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{"user@example.com", "a.b+tag@sub.domain.org"}
	for _, e := range valid {
		if err := ValidateEmail(e); err != nil {
			t.Errorf("ValidateEmail(%q) = %v, want nil", e, err)
		}
	}

	invalid := []string{"", "user", "user@", "@example.com", "user@domain"}
	for _, e := range invalid {
		if err := ValidateEmail(e); err == nil {
			t.Errorf("ValidateEmail(%q) = nil, want error", e)
		}
	}
}

func TestValidateHexColor(t *testing.T) {
	if err := ValidateHexColor("#5C7AEA"); err != nil {
		t.Errorf("valid color rejected: %v", err)
	}
	for _, c := range []string{"5C7AEA", "#5C7AE", "#5C7AEAA", "#GGGGGG", ""} {
		if err := ValidateHexColor(c); err == nil {
			t.Errorf("ValidateHexColor(%q) = nil, want error", c)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("Sup3rsecret"); err != nil {
		t.Errorf("valid password rejected: %v", err)
	}

	invalid := map[string]string{
		"short":        "Ab1",
		"no digit":     "Nodigitshere",
		"no upper":     "alllower123",
		"no lower":     "ALLUPPER123",
	}
	for name, pw := range invalid {
		if err := ValidatePassword(pw); err == nil {
			t.Errorf("%s: ValidatePassword(%q) = nil, want error", name, pw)
		}
	}
}

func TestGenerateToken(t *testing.T) {
	a := GenerateToken()
	b := GenerateToken()
	if len(a) != 64 {
		t.Fatalf("token length = %d, want 64", len(a))
	}
	if a == b {
		t.Fatal("two tokens should not collide")
	}
}
