package models

import (
	"testing"
)

func TestNewPrice(t *testing.T) {
	t.Run("rejects negative pence", func(t *testing.T) {
		if _, err := NewPrice(-1); err == nil {
			t.Fatal("expected an error for negative pence")
		}
	})

	t.Run("renders pounds and pence", func(t *testing.T) {
		tests := []struct {
			pence int
			want  string
		}{
			{0, "£0.00"},
			{9, "£0.09"},
			{609, "£6.09"},
			{12345, "£123.45"},
		}
		for _, tc := range tests {
			p, err := NewPrice(tc.pence)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := p.String(); got != tc.want {
				t.Fatalf("String(%d) = %q, want %q", tc.pence, got, tc.want)
			}
		}
	})
}
