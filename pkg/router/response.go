package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/squareblocks/backend/pkg/errorx"
	"github.com/squareblocks/backend/pkg/xcontext"
)

type response struct {
	Code  int64  `json:"code"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func newResponse(data any) response {
	return response{Code: 0, Data: data}
}

func newErrorResponse(err error) response {
	errx := errorx.Error{}
	if errors.As(err, &errx) {
		return response{
			Code:  int64(errx.Code),
			Error: errx.Message,
		}
	}

	return response{
		Code:  int64(errorx.Unknown.Code),
		Error: errorx.Unknown.Message,
	}
}

type resultHolder struct {
	resp any
	err  error
}

type resultKey struct{}

func newRequestContext(base context.Context, req *http.Request, w http.ResponseWriter) context.Context {
	ctx := xcontext.WithHTTPRequest(base, req)
	ctx = xcontext.WithHTTPWriter(ctx, w)
	return context.WithValue(ctx, resultKey{}, &resultHolder{})
}

func setError(ctx context.Context, err error) {
	if holder, ok := ctx.Value(resultKey{}).(*resultHolder); ok {
		holder.err = err
	}
}

func setResponse(ctx context.Context, resp any) {
	if holder, ok := ctx.Value(resultKey{}).(*resultHolder); ok {
		holder.resp = resp
	}
}

// Error returns the error recorded for this request, for use in closers.
func Error(ctx context.Context) error {
	if holder, ok := ctx.Value(resultKey{}).(*resultHolder); ok {
		return holder.err
	}

	return nil
}

// Response returns the handler response recorded for this request.
func Response(ctx context.Context) any {
	if holder, ok := ctx.Value(resultKey{}).(*resultHolder); ok {
		return holder.resp
	}

	return nil
}

func writeResult(ctx context.Context, method string) {
	w := xcontext.HTTPWriter(ctx)
	if w == nil {
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := Error(ctx); err != nil {
		errx := errorx.Error{}
		if errors.As(err, &errx) {
			w.WriteHeader(errorx.StatusCode(errx.Code))
		} else {
			w.WriteHeader(http.StatusInternalServerError)
		}

		if err := json.NewEncoder(w).Encode(newErrorResponse(err)); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot write the error response: %v", err)
		}

		return
	}

	if method == http.MethodPost {
		w.WriteHeader(http.StatusCreated)
	}

	if err := json.NewEncoder(w).Encode(newResponse(Response(ctx))); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
	}
}
