package donor

import "testing"

func TestParseAvailability(t *testing.T) {
	tests := []struct {
		in   string
		want Availability
		ok   bool
	}{
		{"AVAILABLE", Available, true},
		{"UNAVAILABLE", Unavailable, true},
		{"available", "", false},
		{"BUSY", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseAvailability(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseAvailability(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestValidBloodGroup(t *testing.T) {
	for _, bg := range []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"} {
		if !ValidBloodGroup(bg) {
			t.Errorf("ValidBloodGroup(%q) = false, want true", bg)
		}
	}
	for _, bg := range []string{"C+", "ab+", "O", "", "O +"} {
		if ValidBloodGroup(bg) {
			t.Errorf("ValidBloodGroup(%q) = true, want false", bg)
		}
	}
}
