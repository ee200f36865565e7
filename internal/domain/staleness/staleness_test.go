package staleness

import (
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	nowUnix := now.Unix()

	tests := []struct {
		name string
		in   Input
		want Status
	}{
		{"zero max staleness", Input{LastUpdate: nowUnix, MaxStaleness: 0}, Unknown},
		{"negative max staleness", Input{LastUpdate: nowUnix, MaxStaleness: -5}, Unknown},
		{"just updated", Input{LastUpdate: nowUnix, MaxStaleness: 3600}, Fresh},
		{"below half", Input{LastUpdate: nowUnix - 1799, MaxStaleness: 3600}, Fresh},
		{"exactly half", Input{LastUpdate: nowUnix - 1800, MaxStaleness: 3600}, Warning},
		{"below full", Input{LastUpdate: nowUnix - 3599, MaxStaleness: 3600}, Warning},
		{"exactly full", Input{LastUpdate: nowUnix - 3600, MaxStaleness: 3600}, Stale},
		{"way past", Input{LastUpdate: nowUnix - 86400, MaxStaleness: 3600}, Stale},
		{"never updated", Input{LastUpdate: 0, MaxStaleness: 3600}, Stale},
		{"upstream flag overrides fresh", Input{LastUpdate: nowUnix, MaxStaleness: 3600, UpstreamStale: true}, Stale},
		{"upstream flag overrides unknown", Input{LastUpdate: nowUnix, MaxStaleness: 0, UpstreamStale: true}, Stale},
		{"future update", Input{LastUpdate: nowUnix + 60, MaxStaleness: 3600}, Fresh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.in, now)
			if got.Status != tt.want {
				t.Errorf("Classify(%+v) = %s, want %s", tt.in, got.Status, tt.want)
			}
			if got != HealthOf(tt.want) {
				t.Errorf("Classify(%+v) display = %+v, want %+v", tt.in, got, HealthOf(tt.want))
			}
		})
	}
}

func TestHealthOfUnknownStatus(t *testing.T) {
	if got := HealthOf(Status("bogus")); got.Status != Unknown || got.Color != "#6c757d" {
		t.Errorf("HealthOf(bogus) = %+v, want unknown display", got)
	}
}

func TestGauge(t *testing.T) {
	if Fresh.Gauge() != 1 || Warning.Gauge() != 2 || Stale.Gauge() != 3 || Unknown.Gauge() != 0 {
		t.Error("unexpected gauge mapping")
	}
}
