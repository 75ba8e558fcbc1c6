package idgen

import (
	"strings"
	"testing"
)

func TestGenerateSecureID(t *testing.T) {
	id, err := GenerateSecureID("conv", 16)
	if err != nil {
		t.Fatalf("GenerateSecureID: %v", err)
	}
	if !strings.HasPrefix(id, "conv_") {
		t.Errorf("id %q missing conv_ prefix", id)
	}
	if len(id) != len("conv_")+16 {
		t.Errorf("id length = %d, want %d", len(id), len("conv_")+16)
	}
	if !ValidateIDFormat(id, "conv") {
		t.Errorf("generated id %q fails its own format check", id)
	}
}

func TestGenerateSecureID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id, err := GenerateSecureID("msg", 16)
		if err != nil {
			t.Fatalf("GenerateSecureID: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q after %d generations", id, i)
		}
		seen[id] = true
	}
}

func TestGenerateSecureID_RejectsBadInput(t *testing.T) {
	if _, err := GenerateSecureID("", 16); err == nil {
		t.Error("empty prefix accepted")
	}
	if _, err := GenerateSecureID("conv", 0); err == nil {
		t.Error("zero length accepted")
	}
	if _, err := GenerateSecureID("conv", -1); err == nil {
		t.Error("negative length accepted")
	}
}

func TestValidateIDFormat(t *testing.T) {
	cases := []struct {
		id     string
		prefix string
		want   bool
	}{
		{"conv_abc123", "conv", true},
		{"conv_", "conv", false},
		{"conv_ABC", "conv", false},
		{"conv_abc-123", "conv", false},
		{"msg_abc123", "conv", false},
		{"", "conv", false},
		{"convabc123", "conv", false},
	}
	for _, tc := range cases {
		if got := ValidateIDFormat(tc.id, tc.prefix); got != tc.want {
			t.Errorf("ValidateIDFormat(%q, %q) = %v, want %v", tc.id, tc.prefix, got, tc.want)
		}
	}
}
