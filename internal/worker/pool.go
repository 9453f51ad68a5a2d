package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// ErrPoolClosed is returned by Shutdown when called twice.
var ErrPoolClosed = errors.New("worker pool already shut down")

// Job is one unit of background work. Run receives a context detached from
// any HTTP request and bounded by the pool's job timeout.
type Job struct {
	Name   string
	Fields logrus.Fields
	Run    func(ctx context.Context) error
}

// Config sizes the pool.
type Config struct {
	Workers    int
	QueueSize  int
	JobTimeout time.Duration
}

// Pool runs jobs on a fixed number of goroutines fed by a bounded queue.
// Submit never blocks: when the queue is full the job is dropped and logged.
type Pool struct {
	cfg  Config
	log  logrus.FieldLogger
	jobs chan Job

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup

	baseCtx context.Context
	cancel  context.CancelFunc

	jobsTotal *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewPool creates a pool and registers its metrics with reg.
// Call Start to launch the workers.
func NewPool(cfg Config, log logrus.FieldLogger, reg prometheus.Registerer) (*Pool, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize < 0 {
		cfg.QueueSize = 0
	}

	p := &Pool{
		cfg:  cfg,
		log:  log.WithField("component", "worker"),
		jobs: make(chan Job, cfg.QueueSize),
		jobsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "background_jobs_total",
				Help: "Background jobs by name and outcome (success, failure, dropped).",
			},
			[]string{"job", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "background_job_duration_seconds",
				Help:    "Duration of background jobs.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"job"},
		),
	}
	p.baseCtx, p.cancel = context.WithCancel(context.Background())

	for _, c := range []prometheus.Collector{p.jobsTotal, p.duration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register worker metrics: %w", err)
		}
	}
	return p, nil
}

// Start launches the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.cfg.Workers; i++ {
		p.wg.Add(1)
		go func(id int) {
			defer p.wg.Done()
			for job := range p.jobs {
				p.run(id, job)
			}
		}(i)
	}
	p.log.WithFields(logrus.Fields{
		"workers":    p.cfg.Workers,
		"queue_size": p.cfg.QueueSize,
	}).Info("worker_pool_started")
}

// Submit enqueues job and reports whether it was accepted.
func (p *Pool) Submit(job Job) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	entry := p.log.WithFields(job.Fields).WithField("job", job.Name)
	if p.closed {
		entry.Warn("job_rejected_pool_closed")
		p.jobsTotal.WithLabelValues(job.Name, "dropped").Inc()
		return false
	}

	select {
	case p.jobs <- job:
		entry.Debug("job_enqueued")
		return true
	default:
		entry.Error("job_dropped_queue_full")
		p.jobsTotal.WithLabelValues(job.Name, "dropped").Inc()
		return false
	}
}

func (p *Pool) run(worker int, job Job) {
	start := time.Now()
	entry := p.log.WithFields(job.Fields).WithFields(logrus.Fields{
		"job":    job.Name,
		"worker": worker,
	})

	// shutdown deadline passed: drain the backlog without running it
	if p.baseCtx.Err() != nil {
		p.jobsTotal.WithLabelValues(job.Name, "dropped").Inc()
		entry.Warn("job_dropped_shutdown")
		return
	}

	ctx := p.baseCtx
	if p.cfg.JobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.JobTimeout)
		defer cancel()
	}

	err := safeRun(ctx, job.Run)
	elapsed := time.Since(start)
	p.duration.WithLabelValues(job.Name).Observe(elapsed.Seconds())

	entry = entry.WithField("duration_ms", elapsed.Milliseconds())
	if err != nil {
		p.jobsTotal.WithLabelValues(job.Name, "failure").Inc()
		entry.WithError(err).Error("job_failed")
		return
	}
	p.jobsTotal.WithLabelValues(job.Name, "success").Inc()
	entry.Info("job_completed")
}

func safeRun(ctx context.Context, fn func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panicked: %v", r)
		}
	}()
	return fn(ctx)
}

// Shutdown stops accepting jobs and waits for queued jobs to finish.
// If ctx expires first, in-flight jobs are cancelled, jobs still queued are
// dropped and ctx.Err is returned at once. Jobs that ignore cancellation may
// still be running when it returns.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPoolClosed
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		p.log.Info("worker_pool_stopped")
		return nil
	case <-ctx.Done():
		p.cancel()
		p.log.WithError(ctx.Err()).Warn("worker_pool_stop_deadline")
		return ctx.Err()
	}
}
