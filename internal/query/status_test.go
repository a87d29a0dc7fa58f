package query

import (
	"testing"
	"time"
)

func TestDeriveStatus(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		daysOld int
		want    string
	}{
		{"older than a month", 31, "resolved"},
		{"less than a week", 6, "pending"},
		{"second week", 10, "urgent"},
		{"third week", 20, "active"},
		{"brand new", 0, "pending"},
		{"exactly thirty days", 30, "active"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			createdAt := now.Add(-time.Duration(tt.daysOld) * 24 * time.Hour)
			if got := DeriveStatus(now, createdAt); got != tt.want {
				t.Errorf("DeriveStatus(-%dd) = %q, want %q", tt.daysOld, got, tt.want)
			}
		})
	}
}

func TestDeriveStatusZeroTime(t *testing.T) {
	if got := DeriveStatus(time.Now(), time.Time{}); got != "active" {
		t.Errorf("DeriveStatus(zero) = %q, want active", got)
	}
}
