package piechart

import "testing"

func TestFormatValue(t *testing.T) {
	tests := []struct {
		v        float64
		decimals int
		want     string
	}{
		{0, 0, "0"},
		{7, 2, "7.00"},
		{999, 0, "999"},
		{1000, 0, "1 000"},
		{1234567.891, 2, "1 234 567.89"},
		{1000000, 0, "1 000 000"},
		{12.5, 0, "13"},
		{0.125, 2, "0.13"},
		{2.25, 1, "2.3"},
		{123456, 3, "123 456.000"},
		{-1234.5, 1, "-1 234.5"},
		{-0.001, 2, "0.00"},
		{42, -1, "42"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.v, tt.decimals); got != tt.want {
			t.Errorf("FormatValue(%v, %d) = %q, want %q", tt.v, tt.decimals, got, tt.want)
		}
	}
}

func TestDetectSignificance(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   int
	}{
		{"mixed", []float64{1.5, 2.25, 3}, 2},
		{"integers", []float64{1, 20, 300}, 0},
		{"empty", nil, 0},
		{"single decimal", []float64{0.125}, 3},
		{"trailing zero dropped", []float64{1.50}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectSignificance(tt.values); got != tt.want {
				t.Errorf("DetectSignificance(%v) = %d, want %d", tt.values, got, tt.want)
			}
		})
	}
}
