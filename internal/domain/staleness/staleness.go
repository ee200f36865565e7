// Package staleness classifies how fresh a vault's on-chain price-per-share is.
package staleness

import "time"

// Status is the PPS health bucket.
type Status string

const (
	Fresh   Status = "Fresh"
	Warning Status = "Warning"
	Stale   Status = "Stale"
	Unknown Status = "Unknown"
)

const (
	freshRatio   = 0.5
	warningRatio = 1.0
)

// Health is a classified status together with its display attributes.
type Health struct {
	Status Status `json:"status"`
	Color  string `json:"color"`
	Icon   string `json:"icon"`
}

var healthByStatus = map[Status]Health{
	Fresh:   {Status: Fresh, Color: "#28a745", Icon: "fas fa-check-circle"},
	Warning: {Status: Warning, Color: "#ffc107", Icon: "fas fa-exclamation-triangle"},
	Stale:   {Status: Stale, Color: "#dc3545", Icon: "fas fa-times-circle"},
	Unknown: {Status: Unknown, Color: "#6c757d", Icon: "fas fa-question-circle"},
}

// HealthOf returns the display attributes for s.
func HealthOf(s Status) Health {
	if h, ok := healthByStatus[s]; ok {
		return h
	}
	return healthByStatus[Unknown]
}

// Input is what the classifier needs from a PPS reading.
type Input struct {
	// LastUpdate is the unix time of the last on-chain PPS update.
	LastUpdate int64
	// MaxStaleness is the allowed age in seconds.
	MaxStaleness int64
	// UpstreamStale is the API's own is_pps_stale flag.
	UpstreamStale bool
}

// Classify buckets a PPS reading by age relative to its allowed staleness.
// The upstream stale flag always wins.
func Classify(in Input, now time.Time) Health {
	if in.UpstreamStale {
		return healthByStatus[Stale]
	}
	return HealthOf(classify(in.LastUpdate, in.MaxStaleness, now.Unix()))
}

func classify(lastUpdate, maxStaleness, now int64) Status {
	if maxStaleness <= 0 {
		return Unknown
	}

	ratio := float64(now-lastUpdate) / float64(maxStaleness)
	switch {
	case ratio < freshRatio:
		return Fresh
	case ratio < warningRatio:
		return Warning
	default:
		return Stale
	}
}

// Gauge maps a status onto the numeric value exported as a metric.
func (s Status) Gauge() float64 {
	switch s {
	case Fresh:
		return 1
	case Warning:
		return 2
	case Stale:
		return 3
	default:
		return 0
	}
}
