package router

import (
	"context"
	"net/http"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before (or after) the handler. It may derive a new
// context, which is passed down the chain.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response has been written, regardless of outcome.
type CloserFunc func(ctx context.Context)

type Router struct {
	ctx context.Context
	mux *http.ServeMux

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

// New creates a router rooted at ctx. The context must already carry the
// database, configs, logger, and token engine; every request context derives
// from it.
func New(ctx context.Context) *Router {
	return &Router{ctx: ctx, mux: http.NewServeMux()}
}

// Branch returns a router sharing the same mux and base context but with an
// independent middleware chain.
func (r *Router) Branch() *Router {
	return &Router{
		ctx:     r.ctx,
		mux:     r.mux,
		befores: append([]MiddlewareFunc{}, r.befores...),
		afters:  append([]MiddlewareFunc{}, r.afters...),
		closers: append([]CloserFunc{}, r.closers...),
	}
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(middleware MiddlewareFunc) {
	r.afters = append(r.afters, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	register(r, http.MethodGet, pattern, handler)
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	register(r, http.MethodPost, pattern, handler)
}

func register[Request, Response any](
	r *Router, method, pattern string, handler HandlerFunc[Request, Response],
) {
	// Snapshot the chain at registration time so later Before/After calls on
	// this router do not retroactively apply.
	befores := append([]MiddlewareFunc{}, r.befores...)
	afters := append([]MiddlewareFunc{}, r.afters...)
	closers := append([]CloserFunc{}, r.closers...)
	base := r.ctx

	r.mux.HandleFunc(pattern, func(w http.ResponseWriter, req *http.Request) {
		if req.Method != method {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		ctx := newRequestContext(base, req, w)
		defer func() {
			for _, closer := range closers {
				closer(ctx)
			}
		}()

		// A middleware returning a nil context keeps the current one.
		for _, before := range befores {
			next, err := before(ctx)
			if err != nil {
				setError(ctx, err)
				writeResult(ctx, method)
				return
			}

			if next != nil {
				ctx = next
			}
		}

		request := new(Request)
		if err := bindRequest(req, method, request); err != nil {
			setError(ctx, err)
			writeResult(ctx, method)
			return
		}

		resp, err := handler(ctx, request)
		if err != nil {
			setError(ctx, err)
		} else {
			setResponse(ctx, resp)
		}

		for _, after := range afters {
			next, err := after(ctx)
			if err != nil {
				setError(ctx, err)
				break
			}

			if next != nil {
				ctx = next
			}
		}

		writeResult(ctx, method)
	})
}
