// Package worker 背景工作池，用於回應送出後才執行的清理工作
package worker

import (
	"log/slog"
	"sync"
)

// Task 交給工作池執行的單位
type Task func()

// Pool 背景工作池
type Pool interface {
	Submit(Task)
	Stop()
}

// NewPool 建立 n 個 worker 的工作池，n<=0 時為 1
// 單一 Task panic 只會被記錄，不影響其他 worker
func NewPool(n int, logger *slog.Logger) Pool {
	if n <= 0 {
		n = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	p := &pool{jobs: make(chan Task, n), logger: logger}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.exec(job)
			}
		}()
	}
	return p
}

type pool struct {
	jobs   chan Task
	wg     sync.WaitGroup
	logger *slog.Logger

	mu      sync.RWMutex
	stopped bool
}

func (p *pool) exec(job Task) {
	if job == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("worker task panicked", "panic", r)
		}
	}()
	job()
}

// Submit 停止後送入的 Task 直接在呼叫端執行
func (p *pool) Submit(t Task) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		p.exec(t)
		return
	}
	p.jobs <- t
}

// Stop 等待佇列中的工作全部完成；可重複呼叫
func (p *pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}
