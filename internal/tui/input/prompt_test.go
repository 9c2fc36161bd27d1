package input

import (
	"errors"
	"testing"

	"github.com/javiermolinar/daybar/internal/partition"
)

func TestParseHour(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "9", want: 9},
		{in: " 17 ", want: 17},
		{in: "9.5", want: 9.5},
		{in: "9:30", want: 9.5},
		{in: "0:45", want: 0.75},
		{in: "9:3", wantErr: true},
		{in: "9:60", wantErr: true},
		{in: "nine", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHour(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrBadInput) {
					t.Fatalf("ParseHour(%q) error = %v, want ErrBadInput", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHour(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseHour(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		in      string
		want    partition.Range
		wantErr bool
	}{
		{in: "9 17", want: partition.Range{Start: 9, End: 17}},
		{in: "9-17", want: partition.Range{Start: 9, End: 17}},
		{in: "6:30, 22", want: partition.Range{Start: 6.5, End: 22}},
		{in: "17 9", want: partition.Range{Start: 17, End: 9}},
		{in: "9", wantErr: true},
		{in: "1 2 3", wantErr: true},
		{in: "a b", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRange(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseRange(%q) expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRange(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseRange(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in        string
		wantName  string
		wantColor partition.Color
	}{
		{in: "Reading", wantName: "Reading"},
		{in: "  Deep Reading  ", wantName: "Deep Reading"},
		{in: "Deep Reading #00BCD4", wantName: "Deep Reading", wantColor: "#00bcd4"},
		{in: "Reading #zzzzzz", wantName: "Reading #zzzzzz"},
		{in: "#00bcd4", wantColor: "#00bcd4"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			name, color := ParseCategory(tt.in)
			if name != tt.wantName || color != tt.wantColor {
				t.Errorf("ParseCategory(%q) = (%q, %q), want (%q, %q)", tt.in, name, color, tt.wantName, tt.wantColor)
			}
		})
	}
}
