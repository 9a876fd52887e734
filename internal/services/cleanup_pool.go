package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Augustwise/fullstack-task-manager/internal/storage"
)

const removeTimeout = 30 * time.Second

// CleanupPool removes stored blobs off the request path. Removal is best
// effort: failures are logged and never reach the client.
type CleanupPool struct {
	queue   chan string
	wg      sync.WaitGroup
	storage storage.Storage
	logger  *slog.Logger

	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool
}

func NewCleanupPool(store storage.Storage, workers, queueSize int, logger *slog.Logger) *CleanupPool {
	if workers < 1 {
		workers = 1
	}
	p := &CleanupPool{
		queue:   make(chan string, queueSize),
		storage: store,
		logger:  logger,
	}

	for i := 1; i <= workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	return p
}

// Enqueue schedules name for removal. When the queue is full or the pool
// is shutting down the blob is removed inline instead.
func (p *CleanupPool) Enqueue(name string) {
	if name == "" {
		return
	}

	p.mu.RLock()
	if !p.closed {
		select {
		case p.queue <- name:
			p.mu.RUnlock()
			return
		default:
		}
	}
	p.mu.RUnlock()

	p.remove(0, name)
}

func (p *CleanupPool) worker(workerID int) {
	defer p.wg.Done()

	for name := range p.queue {
		p.remove(workerID, name)
	}
}

func (p *CleanupPool) remove(workerID int, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), removeTimeout)
	defer cancel()

	if err := p.storage.Remove(ctx, name); err != nil {
		p.logger.Error("failed to remove stored file",
			"worker", workerID, "file", name, "provider", p.storage.Provider(), "error", err)
		return
	}
	p.logger.Debug("removed stored file", "worker", workerID, "file", name)
}

// Shutdown stops accepting work and waits for queued removals to finish
// or for ctx to expire.
func (p *CleanupPool) Shutdown(ctx context.Context) {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.queue)
		p.mu.Unlock()
	})

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("cleanup pool shut down cleanly")
	case <-ctx.Done():
		p.logger.Warn("cleanup pool shutdown timed out")
	}
}
