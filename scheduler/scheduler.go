package scheduler

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"newsdesk/cascade"
	"newsdesk/config"
	"newsdesk/dedup"
	"newsdesk/normalize"
	"newsdesk/persist"
	"newsdesk/types"

	"github.com/google/uuid"
)

// CandidateSource exposes the pool surface the scheduler reads. The
// snapshot is re-read fresh on every cycle so refreshes are visible without
// restarting the loop.
type CandidateSource interface {
	Snapshot() []*types.SourceItem
	Size() int
}

// Transformer produces a draft for one candidate.
type Transformer interface {
	Transform(ctx context.Context, item *types.SourceItem) cascade.Result
}

// Options wires the scheduler's collaborators. Cooldown fields default to
// the package constants when zero.
type Options struct {
	Pool       CandidateSource
	Tracker    dedup.Tracker
	Cascade    Transformer
	Normalizer *normalize.Normalizer
	Gateway    persist.Gateway
	Sinks      []persist.Sink
	Log        *ActivityLog

	ScanCooldown time.Duration
	CooldownMin  time.Duration
	CooldownMax  time.Duration
}

// Scheduler drives the generate-wait-generate cycle. A single run goroutine
// owns the whole cycle chain, so at most one cycle is ever in flight and no
// locking is needed around the tracker or the pool snapshot.
type Scheduler struct {
	opts Options
	rng  *rand.Rand

	mu          sync.Mutex
	state       types.State
	cancel      context.CancelFunc
	done        chan struct{}
	cycles      int
	generated   int
	degraded    int
	skipped     int
	failed      int
	lastOutcome *types.CycleOutcome
}

// New builds an idle scheduler.
func New(opts Options) *Scheduler {
	if opts.ScanCooldown == 0 {
		opts.ScanCooldown = config.ScanCooldown
	}
	if opts.CooldownMin == 0 {
		opts.CooldownMin = config.CycleCooldownMin
	}
	if opts.CooldownMax == 0 {
		opts.CooldownMax = config.CycleCooldownMax
	}
	if opts.Log == nil {
		opts.Log = NewActivityLog(config.MaxLogEntries)
	}
	return &Scheduler{
		opts:  opts,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		state: types.StateIdle,
	}
}

// Log exposes the activity log for the API layer.
func (s *Scheduler) Log() *ActivityLog { return s.opts.Log }

// Start launches the generation loop. Starting a running scheduler is a
// no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.run(ctx)
	s.opts.Log.Info("auto-generation started")
}

// Stop cancels the pending timer and any in-flight cycle, then waits for
// the loop to exit. Results of calls that were already in flight are
// discarded, not acted upon.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	done := s.done
	s.cancel = nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.opts.Log.Info("auto-generation stopped")
}

// Running reports whether the loop is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

// Status returns a snapshot for the operator API.
func (s *Scheduler) Status() types.StatusResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	return types.StatusResponse{
		State:          s.state,
		PoolSize:       s.opts.Pool.Size(),
		AttemptedCount: s.opts.Tracker.Count(),
		Cycles:         s.cycles,
		Generated:      s.generated,
		Degraded:       s.degraded,
		Skipped:        s.skipped,
		Failed:         s.failed,
		LastOutcome:    s.lastOutcome,
		Logs:           s.opts.Log.Entries(),
	}
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.done)
	defer s.setState(types.StateIdle)

	for {
		if ctx.Err() != nil {
			return
		}

		delay := s.cycle(ctx)
		if ctx.Err() != nil {
			return
		}

		s.setState(types.StateCooldown)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			// Stop during cooldown: the next scan never starts.
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// cycle runs one scan-transform-persist pass and returns the cooldown to
// wait before the next scan. Panics are recovered here: the loop itself is
// never fatal.
func (s *Scheduler) cycle(ctx context.Context) (delay time.Duration) {
	delay = s.cooldown()

	defer func() {
		if r := recover(); r != nil {
			if ctx.Err() == nil {
				s.opts.Log.Warn("cycle aborted: %v", r)
				s.recordOutcome(types.CycleOutcome{
					CycleID:   uuid.New().String(),
					Kind:      types.OutcomeFailed,
					Message:   "unexpected failure, see log",
					StartedAt: time.Now(),
				})
			}
		}
	}()

	s.setState(types.StateScanning)

	snapshot := s.opts.Pool.Snapshot()
	candidate := s.selectCandidate(snapshot)
	if candidate == nil {
		if ctx.Err() != nil {
			return delay
		}
		s.reportEmptyScan(len(snapshot))
		return s.opts.ScanCooldown
	}

	// At-most-one-attempt: the candidate is marked before the cascade
	// runs, so a crashed cycle burns it rather than reprocessing it.
	s.opts.Tracker.MarkAttempted(candidate.ID)

	s.setState(types.StateProcessing)
	outcome := s.process(ctx, candidate)
	if ctx.Err() != nil {
		// Stop was issued while the cycle was in flight; discard the
		// result without mutating state or logging it.
		return delay
	}

	s.recordOutcome(outcome)
	return delay
}

func (s *Scheduler) selectCandidate(snapshot []*types.SourceItem) *types.SourceItem {
	for _, item := range snapshot {
		if s.opts.Tracker.IsEligible(item.ID) {
			return item
		}
	}
	return nil
}

func (s *Scheduler) reportEmptyScan(total int) {
	attempted := s.opts.Tracker.Count()
	if total == 0 {
		s.opts.Log.Info("scan: no items in pool (window empty)")
	} else {
		s.opts.Log.Warn("scan: no eligible candidates (%d in window, %d already attempted)", total, attempted)
	}
	s.recordOutcome(types.CycleOutcome{
		CycleID:   uuid.New().String(),
		Kind:      types.OutcomeSkipped,
		StartedAt: time.Now(),
	})
}

// process transforms, normalizes and persists one candidate. All failures
// degrade to warnings; nothing escapes the scheduler boundary.
func (s *Scheduler) process(ctx context.Context, item *types.SourceItem) types.CycleOutcome {
	outcome := types.CycleOutcome{
		CycleID:   uuid.New().String(),
		ItemID:    item.ID,
		StartedAt: time.Now(),
	}

	result := s.opts.Cascade.Transform(ctx, item)
	article := s.opts.Normalizer.Normalize(item, result.Draft, result.Payload)

	stored, err := s.opts.Gateway.Create(ctx, article)
	if err != nil {
		if ctx.Err() == nil {
			s.opts.Log.Warn("persistence failed for %q: %v (article dropped)", article.Title, err)
		}
		outcome.Kind = types.OutcomeFailed
		outcome.Message = err.Error()
		return outcome
	}

	if ctx.Err() != nil {
		outcome.Kind = types.OutcomeFailed
		return outcome
	}

	for _, sink := range s.opts.Sinks {
		if err := sink.Store(ctx, stored); err != nil {
			log.Printf("scheduler: %s failed for %s: %v", sink.Name(), stored.SourceID, err)
		}
	}

	if result.Draft.Fallback {
		outcome.Kind = types.OutcomeDegraded
	} else {
		outcome.Kind = types.OutcomeGenerated
	}
	outcome.Message = article.Title
	s.opts.Log.Info("stored %q via %s strategy (%s)", article.Title, result.Strategy, article.Author)
	return outcome
}

func (s *Scheduler) recordOutcome(outcome types.CycleOutcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cycles++
	s.lastOutcome = &outcome
	switch outcome.Kind {
	case types.OutcomeGenerated:
		s.generated++
	case types.OutcomeDegraded:
		s.degraded++
	case types.OutcomeSkipped:
		s.skipped++
	case types.OutcomeFailed:
		s.failed++
	}
}

func (s *Scheduler) setState(state types.State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// cooldown picks a randomized wait in [CooldownMin, CooldownMax].
func (s *Scheduler) cooldown() time.Duration {
	span := s.opts.CooldownMax - s.opts.CooldownMin
	if span <= 0 {
		return s.opts.CooldownMin
	}
	return s.opts.CooldownMin + time.Duration(s.rng.Int63n(int64(span)))
}
