package authenticator

import (
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/dmitrymomot/otpkit/pkg/totp"
)

const (
	// PlaceholderCode is displayed for an account whose code could not be
	// computed, e.g. a secret that decodes to an empty key.
	PlaceholderCode = "------"

	// periodUnit is the global refresh cycle in seconds. The countdown and the
	// regeneration boundary run on this single 30-second cycle for every
	// account, even when an account carries a different period; per-account
	// periods only affect the counter math inside code generation.
	periodUnit = 30
)

// Snapshot is the scheduler output handed to display layers: the current code
// per account id and the seconds remaining until the next period boundary.
type Snapshot struct {
	Codes    map[string]string
	TimeLeft int
}

// SchedulerOption configures scheduler construction.
type SchedulerOption func(*Scheduler)

// WithOnRefresh registers a callback invoked with a fresh snapshot after every
// tick. The callback runs on the goroutine that triggered the refresh and must
// not block for long; it receives a copy, so it is free to call back into the
// scheduler or the vault.
func WithOnRefresh(fn func(Snapshot)) SchedulerOption {
	return func(s *Scheduler) { s.onRefresh = fn }
}

// WithClock injects the time source, for tests.
func WithClock(now func() time.Time) SchedulerOption {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
	}
}

// WithTickInterval overrides the one-second tick granularity, for tests.
func WithTickInterval(d time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithSchedulerLogger sets the logger used for lifecycle diagnostics.
func WithSchedulerLogger(log *slog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		if log != nil {
			s.log = log
		}
	}
}

// Scheduler drives code regeneration for all accounts in a vault.
//
// It has two states. Idle: the vault is empty and no timer runs. Active: a
// repeating tick recomputes the countdown every interval and regenerates codes
// only when the 30-second period index advances, plus once unconditionally on
// activation so codes are available before the first boundary. Transitions
// between the states follow the vault's change notifications.
type Scheduler struct {
	vault *Vault

	mu         sync.Mutex
	codes      map[string]string
	timeLeft   int
	lastPeriod int64
	ticker     *time.Ticker
	done       chan struct{}
	running    bool
	started    bool

	wg sync.WaitGroup

	onRefresh func(Snapshot)
	now       func() time.Time
	interval  time.Duration
	log       *slog.Logger
}

// NewScheduler binds a scheduler to the vault. Call Start to begin ticking.
func NewScheduler(vault *Vault, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		vault:    vault,
		codes:    make(map[string]string),
		now:      time.Now,
		interval: time.Second,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start subscribes to vault changes and, if accounts already exist, activates
// immediately. With an empty vault no timer runs and no code is computed until
// the first account arrives.
func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	s.vault.OnChange(s.accountsChanged)
	s.accountsChanged(s.vault.Len())
}

// Stop tears the scheduler down deterministically: after Stop returns no
// further tick fires and no refresh callback runs.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	s.deactivateLocked()
	s.mu.Unlock()

	s.vault.OnChange(nil)
	s.wg.Wait()
}

// Snapshot returns a copy of the current codes and countdown.
func (s *Scheduler) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Scheduler) snapshotLocked() Snapshot {
	codes := make(map[string]string, len(s.codes))
	maps.Copy(codes, s.codes)
	return Snapshot{Codes: codes, TimeLeft: s.timeLeft}
}

// accountsChanged is the vault observer driving the idle/active transitions.
func (s *Scheduler) accountsChanged(count int) {
	s.mu.Lock()

	if !s.started {
		s.mu.Unlock()
		return
	}

	var notify bool
	switch {
	case count > 0 && !s.running:
		s.activateLocked()
		notify = true
	case count == 0 && s.running:
		s.deactivateLocked()
	case s.running:
		// Membership changed while active: refresh the code set right away so
		// a freshly added account does not wait for the next boundary.
		s.refreshLocked(true)
		notify = true
	}

	snap := s.snapshotLocked()
	s.mu.Unlock()

	if notify && s.onRefresh != nil {
		s.onRefresh(snap)
	}
}

func (s *Scheduler) activateLocked() {
	s.running = true
	s.lastPeriod = -1
	s.refreshLocked(false)

	s.ticker = time.NewTicker(s.interval)
	s.done = make(chan struct{})
	s.wg.Add(1)
	go s.loop(s.ticker, s.done)

	s.log.Debug("scheduler activated")
}

func (s *Scheduler) deactivateLocked() {
	if !s.running {
		return
	}
	s.running = false
	s.ticker.Stop()
	close(s.done)
	s.codes = make(map[string]string)

	s.log.Debug("scheduler idle")
}

func (s *Scheduler) loop(ticker *time.Ticker, done chan struct{}) {
	defer s.wg.Done()
	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			if !s.running {
				s.mu.Unlock()
				return
			}
			s.refreshLocked(false)
			snap := s.snapshotLocked()
			s.mu.Unlock()

			if s.onRefresh != nil {
				s.onRefresh(snap)
			}
		case <-done:
			return
		}
	}
}

// refreshLocked recomputes the countdown and, only when the global period
// index advanced (or force is set), regenerates every account's code. The
// whole account set is read at once so a concurrent mutation can never produce
// a torn batch.
func (s *Scheduler) refreshLocked(force bool) {
	now := s.now().Unix()
	s.timeLeft = periodUnit - int(now%periodUnit)

	period := now / periodUnit
	if !force && period == s.lastPeriod {
		return
	}
	s.lastPeriod = period

	accounts := s.vault.Accounts()
	codes := make(map[string]string, len(accounts))
	for _, a := range accounts {
		codes[a.ID] = generateCode(a, s.now())
	}
	s.codes = codes
}

// generateCode computes one account's code, substituting the placeholder when
// the secret decodes to an empty key. A failure for one account never affects
// the rest of the batch.
func generateCode(a Account, at time.Time) string {
	if len(totp.DecodeSecret(a.Secret)) == 0 {
		return PlaceholderCode
	}
	return totp.GenerateCode(a.Secret, a.Digits, a.Period, at)
}
