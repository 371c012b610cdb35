package currency

import "testing"

func TestFormatINR(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"zero", 0, "₹0.00"},
		{"small", 50, "₹50.00"},
		{"three digits", 999, "₹999.00"},
		{"thousand", 1000, "₹1,000.00"},
		{"with paise", 1234.5, "₹1,234.50"},
		{"lakh", 123456, "₹1,23,456.00"},
		{"crore", 12345678.9, "₹1,23,45,678.90"},
		{"ten crore", 123456789, "₹12,34,56,789.00"},
		{"rounds paise", 99.999, "₹100.00"},
		{"negative", -1234.5, "-₹1,234.50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatINR(tt.amount); got != tt.want {
				t.Errorf("FormatINR(%v) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}
