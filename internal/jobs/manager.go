package jobs

import (
	"context"
	"sync"
)

// Job is a long-running background task tied to the server lifetime.
type Job interface {
	Start(ctx context.Context)
}

// Manager runs registered jobs until the context is cancelled, then waits
// for them to drain.
type Manager struct {
	jobs []Job
}

func New() *Manager {
	return &Manager{}
}

func (m *Manager) Register(job Job) {
	m.jobs = append(m.jobs, job)
}

func (m *Manager) Start(ctx context.Context) {
	var wg sync.WaitGroup

	for _, job := range m.jobs {
		wg.Add(1)

		go func(j Job) {
			defer wg.Done()
			j.Start(ctx)
		}(job)
	}

	<-ctx.Done()
	wg.Wait()
}
