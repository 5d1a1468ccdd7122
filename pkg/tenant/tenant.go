package tenant

import (
	"context"
	"errors"
)

// Scope 当前请求的租户作用域：租户 + 操作人
// 显式通过 context 传递，禁止使用全局变量，避免并发请求间串租户
type Scope struct {
	TenantID string
	UserID   string
}

type ctxKey struct{}

var ErrNoScope = errors.New("tenant scope missing from context")

func With(ctx context.Context, s Scope) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func From(ctx context.Context) (Scope, bool) {
	if ctx == nil {
		return Scope{}, false
	}
	s, ok := ctx.Value(ctxKey{}).(Scope)
	if !ok || s.TenantID == "" {
		return Scope{}, false
	}
	return s, true
}

// FromOrError 仓储层入口统一校验
func FromOrError(ctx context.Context) (Scope, error) {
	s, ok := From(ctx)
	if !ok {
		return Scope{}, ErrNoScope
	}
	return s, nil
}
