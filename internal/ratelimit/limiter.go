// Package ratelimit provides per-client sliding window log admission control.
package ratelimit

import (
	"errors"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"
)

// Policy configures limiter internals.
type Policy struct {
	Shards int
}

// Limiter admits or denies requests per client by keeping a log of each
// client's recently admitted request timestamps. Configuration is fixed at
// construction; one instance covers one limiting scope.
type Limiter struct {
	maxRequests int
	window      time.Duration
	shards      []limiterShard

	allowed atomic.Int64
	denied  atomic.Int64
	expired atomic.Int64
	reaped  atomic.Int64
}

type limiterShard struct {
	mu   sync.Mutex
	logs map[string]*clientLog
}

// New constructs a limiter with the default policy.
func New(maxRequests int, window time.Duration) (*Limiter, error) {
	return NewWithPolicy(maxRequests, window, Policy{})
}

// NewWithPolicy constructs a limiter with explicit policy knobs.
func NewWithPolicy(maxRequests int, window time.Duration, policy Policy) (*Limiter, error) {
	if maxRequests <= 0 {
		return nil, Wrap(CodeInvalidConfiguration, "max requests must be positive", nil)
	}
	if window <= 0 {
		return nil, Wrap(CodeInvalidConfiguration, "window must be positive", nil)
	}
	if policy.Shards <= 0 {
		policy.Shards = 16
	}

	shards := make([]limiterShard, policy.Shards)
	for i := range shards {
		shards[i] = limiterShard{logs: make(map[string]*clientLog)}
	}

	return &Limiter{
		maxRequests: maxRequests,
		window:      window,
		shards:      shards,
	}, nil
}

// Allow reports whether the request from clientID at now is admitted.
//
// Stamps aged window or more at now are dropped from the front of the
// client's log, the request is admitted iff the remaining log is shorter
// than the configured maximum, and an admitted request's timestamp is
// recorded. Denied requests leave no trace. The expire-decide-record
// sequence is atomic per client; calls for different clients proceed on
// separate shard locks.
//
// Timestamps for one client must be non-decreasing across calls. The
// expiry scan trusts insertion order, so a call with an earlier now than
// a prior call's may leave stale stamps behind.
func (l *Limiter) Allow(clientID string, now time.Time) (bool, error) {
	if l == nil {
		return false, errors.New("limiter is not initialized")
	}
	if clientID == "" {
		return false, ErrInvalidArgument
	}
	if now.IsZero() {
		return false, ErrInvalidArgument
	}

	shard := l.shardFor(clientID)
	shard.mu.Lock()
	log, ok := shard.logs[clientID]
	if !ok {
		log = &clientLog{}
		shard.logs[clientID] = log
	}
	dropped := log.expire(now, l.window)
	allowed := log.size() < l.maxRequests
	if allowed {
		log.record(now)
	}
	shard.mu.Unlock()

	if dropped > 0 {
		l.expired.Add(int64(dropped))
	}
	if allowed {
		l.allowed.Add(1)
	} else {
		l.denied.Add(1)
	}
	return allowed, nil
}

// MaxRequests returns the admission cap per window.
func (l *Limiter) MaxRequests() int {
	if l == nil {
		return 0
	}
	return l.maxRequests
}

// Window returns the sliding window size.
func (l *Limiter) Window() time.Duration {
	if l == nil {
		return 0
	}
	return l.window
}

// Clients returns the number of tracked client logs.
func (l *Limiter) Clients() int {
	if l == nil {
		return 0
	}
	total := 0
	for i := range l.shards {
		shard := &l.shards[i]
		shard.mu.Lock()
		total += len(shard.logs)
		shard.mu.Unlock()
	}
	return total
}

func (l *Limiter) shardFor(clientID string) *limiterShard {
	index := shardIndex(clientID, len(l.shards))
	return &l.shards[index]
}

func shardIndex(clientID string, total int) int {
	if total <= 1 {
		return 0
	}
	hasher := fnv.New32a()
	_, _ = hasher.Write([]byte(clientID))
	return int(hasher.Sum32() % uint32(total))
}
