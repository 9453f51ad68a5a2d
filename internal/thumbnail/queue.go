package thumbnail

import (
	"context"

	"github.com/sirupsen/logrus"

	"pdfmanager/internal/worker"
)

// JobName labels thumbnail jobs in logs and metrics.
const JobName = "thumbnail"

// Submitter accepts background jobs; *worker.Pool satisfies it.
type Submitter interface {
	Submit(job worker.Job) bool
}

// Queue schedules thumbnail generation on a background pool. Callers never
// wait for the result; the pool logs completion or failure.
type Queue struct {
	gen  *Generator
	pool Submitter
}

// NewQueue wires a Generator to a pool.
func NewQueue(gen *Generator, pool Submitter) *Queue {
	return &Queue{gen: gen, pool: pool}
}

// Enqueue schedules a thumbnail for pdfPath at thumbPath and reports whether
// the job was accepted.
func (q *Queue) Enqueue(pdfPath, thumbPath string) bool {
	return q.pool.Submit(worker.Job{
		Name: JobName,
		Fields: logrus.Fields{
			"pdf_path":   pdfPath,
			"thumb_path": thumbPath,
		},
		Run: func(ctx context.Context) error {
			return q.gen.Generate(ctx, pdfPath, thumbPath)
		},
	})
}
