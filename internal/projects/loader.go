package projects

import (
	"context"
	"iter"
	"runtime"
	"sync"

	"folio.dev/internal/models"
)

// Sequence is a lazy, finite, single-pass stream of projects. A producer
// goroutine pulls from the Source and hands items over one at a time.
//
// Next reports false once the stream is exhausted, failed or cancelled;
// Err then tells which. A Sequence must be drained or closed, otherwise
// its producer goroutine stays blocked.
type Sequence struct {
	items  chan models.Project
	cancel context.CancelFunc
	once   sync.Once

	// written by the producer before items is closed
	err error
}

// Load starts a fresh pass over src. Cancelling ctx stops the sequence
// and surfaces ctx.Err() from Err.
func Load(ctx context.Context, src Source) *Sequence {
	ctx, cancel := context.WithCancel(ctx)
	seq := &Sequence{
		items:  make(chan models.Project),
		cancel: cancel,
	}
	go seq.produce(ctx, src)
	return seq
}

func (s *Sequence) produce(ctx context.Context, src Source) {
	defer close(s.items)

	projects, err := src.Projects(ctx)
	if err != nil {
		s.err = err
		return
	}

	for _, p := range projects {
		if err := ctx.Err(); err != nil {
			s.err = err
			return
		}
		select {
		case s.items <- p:
		case <-ctx.Done():
			s.err = ctx.Err()
			return
		}
		// yield point between items; a paginated source would block here
		runtime.Gosched()
	}
}

// Next returns the next project, or false when the sequence has ended
func (s *Sequence) Next() (models.Project, bool) {
	p, ok := <-s.items
	if !ok {
		s.cancel()
	}
	return p, ok
}

// Err returns the error that ended the sequence, if any. It is only
// meaningful after Next has returned false.
func (s *Sequence) Err() error {
	return s.err
}

// Close stops the producer and waits for it to exit. It is safe to call
// more than once and after the sequence is exhausted.
func (s *Sequence) Close() {
	s.once.Do(func() {
		s.cancel()
		for range s.items {
		}
	})
}

// All adapts the sequence to a range-over-func iterator. Breaking out of
// the loop closes the sequence.
func (s *Sequence) All() iter.Seq[models.Project] {
	return func(yield func(models.Project) bool) {
		for {
			p, ok := s.Next()
			if !ok {
				return
			}
			if !yield(p) {
				s.Close()
				return
			}
		}
	}
}
