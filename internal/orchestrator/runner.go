package orchestrator

import (
	"context"
	"time"
)

// Runner executes tasks for headless use. Tasks run on their own
// goroutines; their messages are funneled through one channel and handed to
// the orchestrator from the goroutine that called Run.
type Runner struct {
	orch    *Orchestrator
	timeout time.Duration
}

// NewRunner creates a runner. timeout bounds each task; zero means no bound.
func NewRunner(orch *Orchestrator, timeout time.Duration) *Runner {
	return &Runner{orch: orch, timeout: timeout}
}

// Run executes tasks and every follow-up task they produce, returning once
// nothing is outstanding or ctx is done.
func (r *Runner) Run(ctx context.Context, tasks []Task) error {
	msgs := make(chan Msg)
	outstanding := 0

	start := func(t Task) {
		outstanding++
		go func() {
			taskCtx, cancel := ctx, context.CancelFunc(func() {})
			if r.timeout > 0 {
				taskCtx, cancel = context.WithTimeout(ctx, r.timeout)
			}
			defer cancel()

			msg := t(taskCtx)
			select {
			case msgs <- msg:
			case <-ctx.Done():
			}
		}()
	}

	for _, t := range tasks {
		start(t)
	}

	for outstanding > 0 {
		select {
		case msg := <-msgs:
			outstanding--
			for _, t := range r.orch.Handle(msg) {
				start(t)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Do runs op on the orchestrator and waits for the work it starts
func (r *Runner) Do(ctx context.Context, op func(*Orchestrator) []Task) error {
	return r.Run(ctx, op(r.orch))
}
