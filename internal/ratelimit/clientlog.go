// Package ratelimit provides client log storage.
package ratelimit

import "time"

// clientLog holds one client's admitted request timestamps in insertion
// order. It is created lazily on the client's first request and only ever
// mutated under the owning shard's lock.
type clientLog struct {
	stamps []time.Time
}

// expire drops the prefix of stamps aged window or more at now and returns
// how many were dropped. A stamp exactly window old is expired. The scan
// stops at the first live stamp.
func (cl *clientLog) expire(now time.Time, window time.Duration) int {
	cutoff := now.Add(-window)
	i := 0
	for i < len(cl.stamps) && !cl.stamps[i].After(cutoff) {
		i++
	}
	if i == 0 {
		return 0
	}
	n := copy(cl.stamps, cl.stamps[i:])
	cl.stamps = cl.stamps[:n]
	return i
}

func (cl *clientLog) record(now time.Time) {
	cl.stamps = append(cl.stamps, now)
}

func (cl *clientLog) size() int {
	return len(cl.stamps)
}

// drained reports whether no stamp would survive an expire at now.
func (cl *clientLog) drained(now time.Time, window time.Duration) bool {
	if len(cl.stamps) == 0 {
		return true
	}
	newest := cl.stamps[len(cl.stamps)-1]
	return !newest.After(now.Add(-window))
}
