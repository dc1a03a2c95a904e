package utils

import "testing"

func TestNormalizeNumber(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"4750", "4750"},
		{" 4,750 ", "4750"},
		{"4 750", "4750"},
		{"۴۷۵۰", "4750"},
		{"٤٬٧٥٠", "4750"},
		{"1_000", "1000"},
		{"-5", "-5"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeNumber(tt.input); got != tt.want {
				t.Errorf("NormalizeNumber(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
