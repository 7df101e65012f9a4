// Package kernel owns the scheduler, component tree and store, and runs
// the time-slice dispatch loop that ties every other package together:
// it drains all events due at the earliest pending instant, fans them
// out to worker goroutines, waits for every Effector, applies them in
// component-ID order, and advances to the next instant.
package kernel

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/discrete-sim/kernel/componenttree"
	"github.com/discrete-sim/kernel/config"
	"github.com/discrete-sim/kernel/effector"
	"github.com/discrete-sim/kernel/event"
	"github.com/discrete-sim/kernel/metrics"
	"github.com/discrete-sim/kernel/observability"
	"github.com/discrete-sim/kernel/scheduler"
	"github.com/discrete-sim/kernel/simerrors"
	"github.com/discrete-sim/kernel/simlog"
	"github.com/discrete-sim/kernel/simstate"
	"github.com/discrete-sim/kernel/simtime"
	"github.com/discrete-sim/kernel/snapshot"
	"github.com/discrete-sim/kernel/store"
	"github.com/discrete-sim/kernel/worker"
)

// Kernel owns every mutable piece of a running simulation. Nothing
// outside the kernel goroutine may touch its Tree, Store or Scheduler
// directly; workers only ever see the read-only SimState passed to them.
type Kernel struct {
	runID uuid.UUID
	cfg   *config.Config
	tree  *componenttree.Tree
	st    *store.Store
	sched *scheduler.Scheduler

	logger   *simlog.Logger
	metrics  metrics.Collector
	reporter observability.Reporter

	workers map[componenttree.ID]*worker.Handle

	now         simtime.Time
	fingerprint uint64
	exitReason  string
}

// Option configures a Kernel at construction time.
type Option func(*Kernel)

// WithLogger overrides the default stdout logger.
func WithLogger(l *simlog.Logger) Option {
	return func(k *Kernel) { k.logger = l }
}

// WithMetrics installs a metrics.Collector (metrics.NoOp{} by default).
func WithMetrics(m metrics.Collector) Option {
	return func(k *Kernel) { k.metrics = m }
}

// WithReporter installs an observability.Reporter. By default none is
// installed and fatal errors are only returned, not reported.
func WithReporter(r observability.Reporter) Option {
	return func(k *Kernel) { k.reporter = r }
}

// New returns a Kernel configured by cfg, ready to have components
// registered on it before Init/Run.
func New(cfg *config.Config, opts ...Option) *Kernel {
	k := &Kernel{
		runID:   uuid.New(),
		cfg:     cfg,
		tree:    componenttree.New(),
		st:      store.New(),
		sched:   scheduler.New(),
		logger:  simlog.New(nil, cfg.LogLevel),
		metrics: metrics.NoOp{},
		workers: make(map[componenttree.ID]*worker.Handle),
	}
	for _, opt := range opts {
		opt(k)
	}
	for pattern, level := range cfg.LogLevels {
		k.logger.AddPattern(pattern, level)
	}
	return k
}

// RegisterPassive adds a component with no worker of its own — typically
// used as a grouping node, e.g. "bots" under which several active bots
// are registered.
func (k *Kernel) RegisterPassive(name string, parent componenttree.ID) (componenttree.ID, error) {
	return k.tree.Add(name, parent)
}

// RegisterActive adds a component and starts a worker goroutine running
// fn for it, seeded deterministically from the kernel's configured seed.
func (k *Kernel) RegisterActive(name string, parent componenttree.ID, fn worker.Func) (componenttree.ID, error) {
	id, err := k.tree.Add(name, parent)
	if err != nil {
		return componenttree.NoComponent, err
	}
	k.workers[id] = worker.Start(id, name, k.cfg.Seed, fn)
	k.metrics.ActiveComponents(len(k.workers))
	return id, nil
}

// Tree exposes the component tree read-only, for use by simulation setup
// code that needs to look up IDs before wiring ports together.
func (k *Kernel) Tree() *componenttree.Tree { return k.tree }

// Store exposes the store read-only, for inspection between runs.
func (k *Kernel) Store() *store.Store { return k.st }

// Now returns the kernel's current logical time.
func (k *Kernel) Now() simtime.Time { return k.now }

// Fingerprint returns the kernel's running determinism checksum.
func (k *Kernel) Fingerprint() uint64 { return k.fingerprint }

// Snapshot builds a point-in-time export of the current tree and store.
func (k *Kernel) Snapshot() snapshot.Snapshot {
	return snapshot.Build(k.runID, k.now, k.tree, k.st)
}

// Init runs Config.NumInitStages "init N" passes at time zero across
// every active component. An Effector.Exit() observed during Init still
// lets the current pass finish applying before Run reports it.
func (k *Kernel) Init(ctx context.Context) (string, error) {
	for stage := 0; stage < k.cfg.NumInitStages; stage++ {
		ev, err := event.New(fmt.Sprintf("init %d", stage))
		if err != nil {
			return "", err
		}
		for id := range k.workers {
			k.sched.Push(scheduler.Entry{At: 0, Target: id, Event: ev})
		}
		exited, err := k.dispatchPass(ctx, true)
		if err != nil {
			k.report(err)
			return "", err
		}
		if exited {
			k.exitReason = "Effector.exit was called during initialization"
			return k.exitReason, nil
		}
	}
	return "", nil
}

// Run executes the main dispatch loop until the scheduler runs dry, the
// configured time budget is exhausted, or a worker requests exit.
// It returns the human-readable exit reason and, if the run ended
// because of a kernel-fatal condition, the error describing it.
func (k *Kernel) Run(ctx context.Context) (string, error) {
	start := time.Now()
	defer func() {
		if k.exitReason == "" {
			return
		}
		k.logger.Emit("", effector.LogRecord{Level: effector.LevelDebug, Topic: "kernel",
			Message: fmt.Sprintf("exiting: %s (elapsed %s)", k.exitReason, time.Since(start))})
		k.logger.Emit("", effector.LogRecord{Level: effector.LevelInfo, Topic: "kernel",
			Message: fmt.Sprintf("fingerprint %016x", k.fingerprint)})
	}()
	if k.exitReason != "" {
		return k.exitReason, nil
	}
	for {
		next, ok := k.sched.Peek()
		if !ok {
			k.exitReason = "no events"
			return k.exitReason, nil
		}

		if !math.IsInf(k.cfg.MaxSecs, 1) {
			maxTicks := k.cfg.MaxSecs * k.cfg.TimeUnits
			if float64(k.now) >= maxTicks {
				k.exitReason = "reached max_secs"
				return k.exitReason, nil
			}
		}

		k.now = next.At
		exited, err := k.dispatchPass(ctx, false)
		if err != nil {
			k.report(err)
			return "", err
		}
		if exited {
			k.exitReason = "effector.exit was called"
			return k.exitReason, nil
		}
	}
}

func (k *Kernel) report(err error) {
	if k.reporter == nil {
		return
	}
	k.reporter.ReportFatal(err, map[string]any{"time": int64(k.now)})
}

type dispatched struct {
	id  componenttree.ID
	eff *effector.Effector
}

// dispatchPass drains every entry scheduled at the current instant,
// sends each to its target worker concurrently, waits for every
// Effector, applies them in ascending component-ID order, and returns
// whether any worker requested Exit.
func (k *Kernel) dispatchPass(ctx context.Context, duringInit bool) (exited bool, err error) {
	entries := k.sched.DrainAt(k.now)
	if len(entries) == 0 {
		return false, nil
	}

	start := time.Now()
	k.metrics.DispatchPassStarted(len(k.workers))

	state := simstate.SimState{Tree: k.tree, Store: k.st, Now: k.now}

	results := make(chan dispatched, len(entries))
	errs := make(chan error, len(entries))

	for _, entry := range entries {
		k.fold(entry)

		h, ok := k.workers[entry.Target]
		if !ok {
			errs <- &simerrors.InactiveTargetError{Target: k.tree.FullPath(entry.Target)}
			continue
		}

		go func(entry scheduler.Entry, h *worker.Handle) {
			timeoutCtx, cancel := context.WithTimeout(ctx, time.Duration(k.cfg.WorkerTimeoutMS)*time.Millisecond)
			defer cancel()

			eff, timedOut, panicVal, gone := h.Dispatch(timeoutCtx, entry.Event, state)
			switch {
			case timedOut:
				k.metrics.WorkerTimeout()
				errs <- &simerrors.WorkerStalledError{Target: k.tree.FullPath(entry.Target), Event: entry.Event.Name}
			case gone:
				errs <- &simerrors.WorkerGoneError{Target: k.tree.FullPath(entry.Target)}
			case panicVal != nil:
				errs <- &simerrors.WorkerGoneError{Target: k.tree.FullPath(entry.Target), Panic: panicVal}
			default:
				results <- dispatched{id: entry.Target, eff: eff}
			}
		}(entry, h)
	}

	var collected []dispatched
	for i := 0; i < len(entries); i++ {
		select {
		case d := <-results:
			collected = append(collected, d)
		case e := <-errs:
			return false, e
		}
	}

	sort.Slice(collected, func(i, j int) bool { return collected[i].id < collected[j].id })

	for _, d := range collected {
		if k.applyEffector(d.id, d.eff) {
			exited = true
		}
	}

	k.metrics.DispatchPassFinished(time.Since(start), len(entries))
	k.metrics.StoreEdition(k.st.Edition())
	if k.reporter != nil {
		k.reporter.RecordBreadcrumb(observability.Breadcrumb{
			Category: "dispatch",
			Message:  fmt.Sprintf("pass at t=%d", k.now),
			Data:     map[string]any{"events": len(entries)},
		})
	}

	if exited && duringInit {
		return true, nil
	}
	return exited, nil
}

// fold accumulates one scheduled entry into the running finger-print:
// time + target + the first up-to-8 bytes of the event name, each byte
// treated as an unsigned 8-bit value, all combined with wrapping
// addition (uint64 arithmetic in Go wraps on overflow by definition).
func (k *Kernel) fold(entry scheduler.Entry) {
	k.fingerprint += uint64(int64(entry.At))
	k.fingerprint += uint64(int64(entry.Target))
	k.fingerprint += foldName(entry.Event.Name)
}

func foldName(name string) uint64 {
	var sum uint64
	n := len(name)
	if n > 8 {
		n = 8
	}
	for i := 0; i < n; i++ {
		sum += uint64(name[i])
	}
	return sum
}

// applyEffector applies one worker's staged side effects in the fixed
// order: logs, newly scheduled sends, store writes, then exit/remove.
// It returns whether this effector requested Exit.
func (k *Kernel) applyEffector(id componenttree.ID, eff *effector.Effector) bool {
	if eff == nil {
		return false
	}
	path := k.tree.FullPath(id)

	for _, l := range eff.Logs {
		k.logger.Emit(path, l)
	}

	for _, send := range eff.Sends {
		k.sched.Push(scheduler.Entry{At: send.At, Target: send.Target, Event: send.Event})
	}

	for _, w := range eff.IntWrites() {
		if err := k.st.SetInt(path+"."+w.Key, w.Value, k.now); err == nil {
			k.metrics.StoreWrite()
		}
	}
	for _, w := range eff.FloatWrites() {
		if err := k.st.SetFloat(path+"."+w.Key, w.Value, k.now); err == nil {
			k.metrics.StoreWrite()
		}
	}
	for _, w := range eff.StringWrites() {
		if err := k.st.SetString(path+"."+w.Key, w.Value, k.now); err == nil {
			k.metrics.StoreWrite()
		}
	}

	if eff.RemoveSelf {
		k.remove(id)
	}

	return eff.ExitRequested
}

// remove marks id and every descendant of id as removed in the store and
// replaces each one's worker, if any, with a sink that answers every
// later event with an empty Effector.
func (k *Kernel) remove(id componenttree.ID) {
	path := k.tree.FullPath(id)
	_ = k.st.SetInt(path+".removed", 1, k.now)
	if h, ok := k.workers[id]; ok {
		h.Stop()
		k.workers[id] = worker.Start(id, h.Name, k.cfg.Seed, func(_ context.Context, _ event.Event, state simstate.SimState, _ *rand.Rand) *effector.Effector {
			return effector.New(id, state.Now)
		})
	}

	c, ok := k.tree.Get(id)
	if !ok {
		return
	}
	for _, child := range c.Children {
		k.remove(child)
	}
}
