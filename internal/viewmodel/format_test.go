package viewmodel

import "testing"

func TestFormatGB(t *testing.T) {
	tests := []struct {
		gb   float64
		want string
	}{
		{0, "0 GB"},
		{1.8, "1.8 GB"},
		{2, "2 GB"},
		{float64(38) / 10, "3.8 GB"},
	}

	for _, tt := range tests {
		if got := FormatGB(tt.gb); got != tt.want {
			t.Errorf("FormatGB(%v) = %q, want %q", tt.gb, got, tt.want)
		}
	}
}
