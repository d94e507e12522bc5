package app

import (
	"context"
	"errors"
	"sync"

	"github.com/bft-labs/consvc/internal/domain"
	"github.com/bft-labs/consvc/internal/ports"
)

// fakeChannel records status reports and lets tests deliver controls.
type fakeChannel struct {
	mu          sync.Mutex
	dispatcher  ports.Dispatcher
	reports     []domain.Status
	registerErr error
	reportErr   error
	closed      int
}

func (c *fakeChannel) Register(d ports.Dispatcher) error {
	if c.registerErr != nil {
		return c.registerErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dispatcher = d
	return nil
}

func (c *fakeChannel) ReportStatus(st domain.Status) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.reportErr != nil {
		return c.reportErr
	}
	c.reports = append(c.reports, st)
	return nil
}

func (c *fakeChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed++
	return nil
}

func (c *fakeChannel) deliver(ev domain.Event) uint32 {
	c.mu.Lock()
	d := c.dispatcher
	c.mu.Unlock()
	return d.Dispatch(ev)
}

func (c *fakeChannel) Reports() []domain.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Status(nil), c.reports...)
}

// States returns the sequence of distinct consecutive reported states.
func (c *fakeChannel) States() []domain.State {
	var out []domain.State
	for _, r := range c.Reports() {
		if len(out) == 0 || out[len(out)-1] != r.State {
			out = append(out, r.State)
		}
	}
	return out
}

// fakeSupervisor calls entry synchronously unless err is set.
type fakeSupervisor struct {
	err     error
	args    []string
	channel *fakeChannel
	served  int
}

func (s *fakeSupervisor) Serve(name string, entry ports.EntryFunc) error {
	if s.err != nil {
		return s.err
	}
	s.served++
	entry(s.args, s.channel)
	return nil
}

// recordingWorker runs the base lifecycle and records every hook call.
type recordingWorker struct {
	mu    sync.Mutex
	calls []string
	ran   bool

	preShutdownResult uint32
	preShutdownInfo   domain.PreShutdownInfo
	unknown           []domain.Event
}

func (w *recordingWorker) record(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = append(w.calls, name)
}

func (w *recordingWorker) Calls() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.calls...)
}

func (w *recordingWorker) Ran() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ran
}

func (w *recordingWorker) Run(l *Lifecycle) domain.ExitCode {
	w.mu.Lock()
	w.ran = true
	w.mu.Unlock()
	return l.Run()
}

func (w *recordingWorker) OnPause(l *Lifecycle) {
	w.record("pause")
	l.Pause()
}

func (w *recordingWorker) OnContinue(l *Lifecycle) {
	w.record("continue")
	l.Continue()
}

func (w *recordingWorker) OnInterrogate(l *Lifecycle) { w.record("interrogate") }

func (w *recordingWorker) OnShutdown(l *Lifecycle) { w.record("shutdown") }

func (w *recordingWorker) OnPreShutdown(l *Lifecycle, info domain.PreShutdownInfo) uint32 {
	w.record("preshutdown")
	w.mu.Lock()
	w.preShutdownInfo = info
	w.mu.Unlock()
	return w.preShutdownResult
}

func (w *recordingWorker) OnSessionChange(l *Lifecycle, eventType uint32, n domain.SessionNotification) uint32 {
	w.record("session")
	return 0
}

func (w *recordingWorker) OnUnknown(l *Lifecycle, ev domain.Event) {
	w.record("unknown")
	w.mu.Lock()
	w.unknown = append(w.unknown, ev)
	w.mu.Unlock()
}

// fakePlugin records lifecycle calls into a shared journal.
type fakePlugin struct {
	name    string
	journal *[]string
	mu      *sync.Mutex
	initErr error
}

func (p *fakePlugin) Name() string { return p.name }

func (p *fakePlugin) Initialize(ctx context.Context, cfg PluginConfig) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	*p.journal = append(*p.journal, "init:"+p.name)
	return p.initErr
}

func (p *fakePlugin) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	*p.journal = append(*p.journal, "shutdown:"+p.name)
	return nil
}

// memoryStatusRepo keeps saved snapshots in memory.
type memoryStatusRepo struct {
	mu    sync.Mutex
	saved []domain.Snapshot
}

func (r *memoryStatusRepo) Load(ctx context.Context) (domain.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.saved) == 0 {
		return domain.Snapshot{}, nil
	}
	return r.saved[len(r.saved)-1], nil
}

func (r *memoryStatusRepo) Save(ctx context.Context, snap domain.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, snap)
	return nil
}

func (r *memoryStatusRepo) Saved() []domain.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Snapshot(nil), r.saved...)
}

var errBoom = errors.New("boom")

// runningLifecycle returns a lifecycle already reported Running on ch,
// without a worker goroutine.
func runningLifecycle(w Worker, cfg Config) (*Lifecycle, *fakeChannel) {
	cfg.Worker = w
	l := NewLifecycle(cfg)
	ch := &fakeChannel{}
	l.reporter.Attach(ch)
	_ = ch.Register(l)
	_ = l.SetState(domain.StateStartPending)
	_ = l.SetState(domain.StateRunning)
	return l, ch
}
