package scheduling

import (
	"reflect"
	"testing"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "09:30", want: "09:30"},
		{in: "9:30", want: "09:30"},
		{in: "09:30:00", want: "09:30"},
		{in: "00:00", want: "00:00"},
		{in: "23:59", want: "23:59"},
		{in: "25:00", wantErr: true},
		{in: "molde", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q) = %q, want error", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q) error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseClock(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTimeSteps(t *testing.T) {
	cases := []struct {
		name     string
		start    string
		end      string
		interval int
		want     []string
		wantErr  bool
	}{
		{name: "half hour steps", start: "09:00", end: "10:00", interval: 30, want: []string{"09:00", "09:30"}},
		{name: "uneven tail is cut", start: "09:00", end: "10:10", interval: 45, want: []string{"09:00", "09:45"}},
		{name: "hour steps", start: "08:00", end: "12:00", interval: 60, want: []string{"08:00", "09:00", "10:00", "11:00"}},
		{name: "empty range", start: "09:00", end: "09:00", interval: 30, want: nil},
		{name: "zero interval", start: "09:00", end: "10:00", interval: 0, wantErr: true},
		{name: "bad start", start: "x", end: "10:00", interval: 30, wantErr: true},
		{name: "bad end", start: "09:00", end: "x", interval: 30, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := TimeSteps(tc.start, tc.end, tc.interval)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("TimeSteps() = %v, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("TimeSteps() error: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("TimeSteps() = %v, want %v", got, tc.want)
			}
		})
	}
}
