// Package worker runs movetext imports on a pool of goroutines.
package worker

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/lgbarn/movetree-go/internal/movetree"
)

// WorkItem is one movetext input waiting to be imported. Text may hold
// several documents.
type WorkItem struct {
	Source string // File name or other label for messages
	Text   string
	Index  int // Position in the input, used to restore order
}

// ProcessResult is what a worker made of a WorkItem. On error Trees holds
// the documents imported before the failure.
type ProcessResult struct {
	Source string
	Index  int
	Trees  []*movetree.Tree
	Output string // Rendered form of Trees, if the ProcessFunc renders
	Error  error
}

// ProcessFunc imports and optionally renders one item.
type ProcessFunc func(item WorkItem) ProcessResult

// Pool fans WorkItems out to a fixed number of workers.
type Pool struct {
	numWorkers  int
	bufferSize  int
	workChan    chan WorkItem
	resultChan  chan ProcessResult
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopFlag    atomic.Bool
	failFast    bool
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// WithFailFast makes Run stop the pool after the first failed item. Items
// still queued at that point produce no result.
func WithFailFast(on bool) PoolOption {
	return func(p *Pool) {
		p.failFast = on
	}
}

// NewPool creates a pool. processFunc is required; by default there is one
// worker and a buffer of 10.
func NewPool(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  10,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.workChan = make(chan WorkItem, p.bufferSize)
	p.resultChan = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.IsStopped() {
			continue // drain
		}
		p.resultChan <- p.processFunc(item)
	}
}

// Submit queues an item. It blocks while the buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.workChan <- item
}

// Stop makes workers discard the items still queued.
func (p *Pool) Stop() {
	p.stopFlag.Store(true)
}

// IsStopped reports whether Stop has been called.
func (p *Pool) IsStopped() bool {
	return p.stopFlag.Load()
}

// Close closes the work channel, waits for the workers and then closes the
// result channel.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the result channel.
func (p *Pool) Results() <-chan ProcessResult {
	return p.resultChan
}

// Run processes every item on a fresh pool and returns the results in input
// order. With WithFailFast the results may stop short of the input.
func Run(items []WorkItem, processFunc ProcessFunc, opts ...PoolOption) []ProcessResult {
	pool := NewPool(processFunc, opts...)
	pool.Start()

	go func() {
		for _, item := range items {
			if pool.IsStopped() {
				break
			}
			pool.Submit(item)
		}
		pool.Close()
	}()

	results := make([]ProcessResult, 0, len(items))
	for res := range pool.Results() {
		if res.Error != nil && pool.failFast {
			pool.Stop()
		}
		results = append(results, res)
	}
	slices.SortFunc(results, func(a, b ProcessResult) int {
		return a.Index - b.Index
	})
	return results
}
