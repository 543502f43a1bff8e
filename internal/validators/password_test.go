package validators

import "testing"

func TestIsPasswordStrong(t *testing.T) {
	tests := []struct {
		pw   string
		want bool
	}{
		{"Str0ng!Pass", true},
		{"short1!A", true},
		{"alllowercase1!", false},
		{"ALLUPPERCASE1!", false},
		{"NoDigits!!", false},
		{"NoSpecial123", false},
		{"Ab1!", false},
	}
	for _, tt := range tests {
		if got := IsPasswordStrong(tt.pw); got != tt.want {
			t.Errorf("IsPasswordStrong(%q) = %v, want %v", tt.pw, got, tt.want)
		}
	}
}

func TestIsPhoneValid(t *testing.T) {
	valid := []string{"+14155552671", "14155552671", "+5511987654321"}
	for _, p := range valid {
		if !IsPhoneValid(p) {
			t.Errorf("IsPhoneValid(%q) = false", p)
		}
	}
	invalid := []string{"", "+0123", "555-1234", "abc", "+1 415 555 2671"}
	for _, p := range invalid {
		if IsPhoneValid(p) {
			t.Errorf("IsPhoneValid(%q) = true", p)
		}
	}
}

func TestIsZipValid(t *testing.T) {
	if !IsZipValid("94105") || !IsZipValid("94105-1234") {
		t.Error("valid ZIPs rejected")
	}
	if IsZipValid("9410") || IsZipValid("94105-12") {
		t.Error("invalid ZIPs accepted")
	}
}
