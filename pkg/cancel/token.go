package cancel

import (
	"context"
	"sync/atomic"
)

// Token 是一次扫描会话共享的取消标志，只会从 false 变为 true
type Token struct {
	stopped atomic.Bool
}

func NewToken() *Token {
	return &Token{}
}

// Cancel 设置取消标志，可重复调用
func (t *Token) Cancel() {
	t.stopped.Store(true)
}

// Cancelled nil 令牌视为永不取消
func (t *Token) Cancelled() bool {
	return t != nil && t.stopped.Load()
}

// Switch 为同一个扫描器管理逐次扫描的令牌。
// 扫描开始前调用 Cancel 会让下一次扫描立即结束；每次扫描结束后换上新令牌。
type Switch struct {
	current atomic.Pointer[Token]
}

func (s *Switch) token() *Token {
	for {
		if t := s.current.Load(); t != nil {
			return t
		}
		s.current.CompareAndSwap(nil, NewToken())
	}
}

// Cancel 取消当前（或下一次）扫描
func (s *Switch) Cancel() {
	s.token().Cancel()
}

// Begin 取出本次扫描使用的令牌，并在 ctx 结束时同步取消。
// 返回的 end 必须在扫描结束时调用。
func (s *Switch) Begin(ctx context.Context) (*Token, func()) {
	tok := s.token()
	// AfterFunc 在 ctx 已结束时异步执行，这里必须同步取消
	if ctx.Err() != nil {
		tok.Cancel()
	}
	stop := context.AfterFunc(ctx, tok.Cancel)
	return tok, func() {
		stop()
		s.current.CompareAndSwap(tok, NewToken())
	}
}
