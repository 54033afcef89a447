package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "2025-03-05", want: "2025-03-05"},
		{in: "2025-03-05T00:00:00.000Z", want: "2025-03-05"},
		{in: "2025-03-05T17:30:00+02:00", want: "2025-03-05"},
		{in: "05/03/2025", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := ParseDate(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDate(%q) expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.in, err)
			}
			if d.String() != tt.want {
				t.Errorf("ParseDate(%q) = %q, want %q", tt.in, d.String(), tt.want)
			}
		})
	}
}

func TestDateDisplay(t *testing.T) {
	d := NewDate(time.Date(2025, time.March, 5, 14, 0, 0, 0, time.UTC))
	if got := d.Display(); got != "05 Mar 2025" {
		t.Errorf("Display() = %q, want %q", got, "05 Mar 2025")
	}
	if got := (Date{}).Display(); got != "" {
		t.Errorf("zero Display() = %q, want empty", got)
	}
}

func TestEventUnmarshalAcceptsTimestamps(t *testing.T) {
	body := `{"id":5,"name":"Launch","description":"Product launch","date":"2025-03-05T00:00:00.000Z"}`

	var e Event
	if err := json.Unmarshal([]byte(body), &e); err != nil {
		t.Fatalf("Unmarshal() unexpected error: %v", err)
	}
	if e.ID != 5 || e.Name != "Launch" {
		t.Errorf("unexpected event: %+v", e)
	}
	if e.Date.String() != "2025-03-05" {
		t.Errorf("Date = %q, want %q", e.Date.String(), "2025-03-05")
	}
}

func TestEventRequestMarshalsDateOnly(t *testing.T) {
	d, _ := ParseDate("2025-03-05")
	b, err := json.Marshal(EventRequest{Name: "n", Description: "d", Date: d})
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}
	want := `{"name":"n","description":"d","date":"2025-03-05"}`
	if string(b) != want {
		t.Errorf("Marshal() = %s, want %s", b, want)
	}
}

func TestDateUnmarshalNull(t *testing.T) {
	var e Event
	if err := json.Unmarshal([]byte(`{"id":1,"date":null}`), &e); err != nil {
		t.Fatalf("Unmarshal() unexpected error: %v", err)
	}
	if !e.Date.IsZero() {
		t.Errorf("Date = %v, want zero", e.Date)
	}
}
