package reporter

import (
	"ratefeed/internal/domain"
	"ratefeed/internal/platform/metrics"
	"sync"

	"github.com/sirupsen/logrus"
)

const defaultBufferSize = 256

// Reporter is a fire-and-forget error tracker. Report enqueues without
// blocking; a background goroutine logs and counts queued errors.
type Reporter struct {
	queue  chan error
	done   chan struct{}
	once   sync.Once
	mu     sync.RWMutex
	closed bool
}

func (r *Reporter) Report(err error) {
	if err == nil {
		return
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return
	}
	select {
	case r.queue <- err:
	default:
		metrics.ErrorsDropped.Inc()
	}
}

func (r *Reporter) run() {
	defer close(r.done)
	for err := range r.queue {
		kind := domain.KindOf(err)
		metrics.ErrorsReported.WithLabelValues(kind.String()).Inc()
		logrus.WithError(err).WithField("kind", kind.String()).Error("Tracked error")
	}
}

// Close stops accepting reports and waits until queued ones are drained.
func (r *Reporter) Close() {
	r.once.Do(func() {
		r.mu.Lock()
		r.closed = true
		close(r.queue)
		r.mu.Unlock()
	})
	<-r.done
}

func New(bufferSize int) *Reporter {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	r := &Reporter{
		queue: make(chan error, bufferSize),
		done:  make(chan struct{}),
	}
	go r.run()
	return r
}
