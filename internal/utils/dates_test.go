package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDueDate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  *time.Time
	}{
		{
			name:  "date only",
			value: "2026-09-15",
			want:  timePtr(time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)),
		},
		{
			name:  "date and time",
			value: "2026-09-15T14:30:00",
			want:  timePtr(time.Date(2026, 9, 15, 14, 30, 0, 0, time.UTC)),
		},
		{
			name:  "space separated",
			value: "2026-09-15 14:30:00",
			want:  timePtr(time.Date(2026, 9, 15, 14, 30, 0, 0, time.UTC)),
		},
		{
			name:  "rfc3339 with zone",
			value: "2026-09-15T14:30:00Z",
			want:  timePtr(time.Date(2026, 9, 15, 14, 30, 0, 0, time.UTC)),
		},
		{
			name:  "garbage",
			value: "next tuesday",
			want:  nil,
		},
		{
			name:  "empty",
			value: "",
			want:  nil,
		},
		{
			name:  "partial date",
			value: "2026-09",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDueDate(tt.value)
			if tt.want == nil {
				require.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			require.True(t, tt.want.Equal(*got), "got %v, want %v", got, tt.want)
		})
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
