package hasher

import (
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/moyu-x/dupsweep/pkg/logger"
)

// Pool 用固定数量的 goroutine 并发执行哈希任务
type Pool struct {
	workers int
	pool    *ants.Pool
	wg      sync.WaitGroup
}

func NewPool(workers int) (*Pool, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger.Get().Debug().Msgf("创建哈希计算池，工作线程数: %d", workers)

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, err
	}
	return &Pool{workers: workers, pool: pool}, nil
}

func (p *Pool) Workers() int {
	return p.workers
}

// Submit 提交任务；池已关闭时在当前 goroutine 中直接执行
func (p *Pool) Submit(task func()) {
	p.wg.Add(1)
	err := p.pool.Submit(func() {
		defer p.wg.Done()
		task()
	})
	if err != nil {
		logger.Get().Warn().Err(err).Msg("提交哈希任务失败，改为同步执行")
		task()
		p.wg.Done()
	}
}

// Wait 等待所有已提交的任务完成
func (p *Pool) Wait() {
	p.wg.Wait()
}

func (p *Pool) Close() {
	p.pool.Release()
}
