package router

import "context"

type contextKey struct{}

var paramsKey contextKey

// ContextWithParams adds the bound path variables to the context.
func ContextWithParams(ctx context.Context, params Params) context.Context {
	return context.WithValue(ctx, paramsKey, params)
}

// ParamsFromContext extracts the bound path variables from context.
func ParamsFromContext(ctx context.Context) Params {
	if ps, ok := ctx.Value(paramsKey).(Params); ok {
		return ps
	}
	return nil
}
