package models

import (
	"encoding/json"
	"testing"
)

func TestClock_Add(t *testing.T) {
	tests := []struct {
		name  string
		start string
		delta int
		want  string
	}{
		{name: "simple forward", start: "08:00", delta: 15, want: "08:15"},
		{name: "minute carry", start: "08:50", delta: 15, want: "09:05"},
		{name: "wraps past midnight", start: "23:55", delta: 15, want: "00:10"},
		{name: "negative delta", start: "09:10", delta: -15, want: "08:55"},
		{name: "negative wraps before midnight", start: "00:05", delta: -15, want: "23:50"},
		{name: "full day is identity", start: "13:37", delta: 24 * 60, want: "13:37"},
		{name: "zero delta", start: "07:00", delta: 0, want: "07:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MustClock(tt.start).Add(tt.delta).String()
			if got != tt.want {
				t.Errorf("Clock(%s).Add(%d) = %s, want %s", tt.start, tt.delta, got, tt.want)
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "00:00", want: 0},
		{input: "07:30", want: 450},
		{input: "23:59", want: 1439},
		{input: "24:00", wantErr: true},
		{input: "7:3", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, err := ParseClock(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseClock(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && c.Minutes() != tt.want {
				t.Errorf("ParseClock(%q).Minutes() = %d, want %d", tt.input, c.Minutes(), tt.want)
			}
		})
	}
}

func TestClock_JSON(t *testing.T) {
	block := TimeBlock{ID: "b1", Time: MustClock("06:05"), Activity: "Wake", Category: CategoryPersonal, Status: StatusPending}
	data, err := json.Marshal(block)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded TimeBlock
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded.Time != block.Time {
		t.Errorf("expected time %s, got %s", block.Time, decoded.Time)
	}

	if err := json.Unmarshal([]byte(`{"time":"25:99"}`), &decoded); err == nil {
		t.Error("expected error for out-of-range time")
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    Category
		wantErr bool
	}{
		{input: "work", want: CategoryWork},
		{input: " Chore ", want: CategoryChore},
		{input: "sacred", want: CategoryRestorative},
		{input: "leisure", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCategory(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseCategory(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
