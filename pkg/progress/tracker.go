package progress

import (
	"sync"
	"sync/atomic"
)

// Phase 扫描所处的阶段，只会前进不会后退
type Phase int

const (
	PhaseCollecting Phase = iota
	PhaseHashing
	PhaseAssembling
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseCollecting:
		return "collecting"
	case PhaseHashing:
		return "hashing"
	case PhaseAssembling:
		return "assembling"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Update 一次进度通知。只报告标签的扫描（大文件、目录大小）Fraction 恒为 0。
type Update struct {
	Phase    Phase
	Label    string
	Fraction float64
}

// Func 接收进度通知，仅供参考，调用方可以忽略
type Func func(Update)

// Gate 串行化并发来源的进度通知，保证阶段和比例都不回退
type Gate struct {
	mu       sync.Mutex
	fn       Func
	phase    Phase
	fraction float64
}

// NewGate fn 为 nil 时所有通知都被丢弃
func NewGate(fn Func) *Gate {
	return &Gate{fn: fn}
}

func (g *Gate) Report(phase Phase, label string, fraction float64) {
	if g == nil || g.fn == nil {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if phase < g.phase {
		phase = g.phase
	}
	if fraction < g.fraction {
		fraction = g.fraction
	}
	if fraction > 1 {
		fraction = 1
	}
	g.phase = phase
	g.fraction = fraction

	g.fn(Update{Phase: phase, Label: label, Fraction: fraction})
}

// Label 只更新标签，阶段和比例保持不变
func (g *Gate) Label(label string) {
	if g == nil || g.fn == nil {
		return
	}
	g.mu.Lock()
	phase, fraction := g.phase, g.fraction
	g.mu.Unlock()
	g.Report(phase, label, fraction)
}

// Reporter 把进度通知写入有界通道；通道满时丢弃，扫描永远不会因消费方缓慢而阻塞
type Reporter struct {
	ch      chan Update
	mu      sync.RWMutex
	closed  bool
	dropped atomic.Int64
}

func NewReporter(buffer int) *Reporter {
	if buffer < 1 {
		buffer = 1
	}
	return &Reporter{ch: make(chan Update, buffer)}
}

// Send 非阻塞发送
func (r *Reporter) Send(u Update) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return
	}
	select {
	case r.ch <- u:
	default:
		r.dropped.Add(1)
	}
}

// Func 返回可直接交给扫描器的回调
func (r *Reporter) Func() Func {
	return r.Send
}

func (r *Reporter) Updates() <-chan Update {
	return r.ch
}

// Dropped 因通道已满被丢弃的通知数
func (r *Reporter) Dropped() int64 {
	return r.dropped.Load()
}

// Close 关闭通道，之后的 Send 被忽略
func (r *Reporter) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.closed {
		r.closed = true
		close(r.ch)
	}
}
