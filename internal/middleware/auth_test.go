package middleware

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/squareblocks/backend/internal/model"
	"github.com/squareblocks/backend/pkg/authenticator"
	"github.com/squareblocks/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func authContext(t *testing.T, authorization string) context.Context {
	ctx := xcontext.WithTokenEngine(context.Background(), authenticator.NewTokenEngine("secret"))
	req := &http.Request{Header: http.Header{}}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	return xcontext.WithHTTPRequest(ctx, req)
}

func TestWithAuth(t *testing.T) {
	engine := authenticator.NewTokenEngine("secret")
	token, err := engine.Generate(time.Minute, model.AccessToken{ID: "user1", Role: "user"})
	require.NoError(t, err)

	// A valid token puts the caller identity on the context.
	ctx := authContext(t, "Bearer "+token)
	next, err := WithAuth()(ctx)
	require.NoError(t, err)
	require.Equal(t, "user1", xcontext.RequestUserID(next))
	require.Equal(t, "user", xcontext.RequestRole(next))

	// No token at all passes through anonymously.
	next, err = WithAuth()(authContext(t, ""))
	require.NoError(t, err)
	require.Nil(t, next)

	// A garbage token is rejected outright.
	_, err = WithAuth()(authContext(t, "Bearer garbage"))
	require.Error(t, err)

	// A token signed with another secret is rejected.
	otherToken, err := authenticator.NewTokenEngine("other").
		Generate(time.Minute, model.AccessToken{ID: "user1"})
	require.NoError(t, err)
	_, err = WithAuth()(authContext(t, "Bearer "+otherToken))
	require.Error(t, err)
}

func TestMustAuth(t *testing.T) {
	_, err := MustAuth()(context.Background())
	require.Error(t, err)

	_, err = MustAuth()(xcontext.WithRequestUserID(context.Background(), "user1"))
	require.NoError(t, err)
}
