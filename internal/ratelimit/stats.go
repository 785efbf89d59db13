// Package ratelimit provides decision counters.
package ratelimit

// Stats is a point-in-time snapshot of limiter counters.
type Stats struct {
	Allowed int64
	Denied  int64
	Expired int64
	Reaped  int64
	Clients int
}

// StatsSnapshot returns current counter values.
func (l *Limiter) StatsSnapshot() Stats {
	if l == nil {
		return Stats{}
	}
	return Stats{
		Allowed: l.allowed.Load(),
		Denied:  l.denied.Load(),
		Expired: l.expired.Load(),
		Reaped:  l.reaped.Load(),
		Clients: l.Clients(),
	}
}
