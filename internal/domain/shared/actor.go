package shared

import "context"

// Actor is the caller identity resolved from request headers or a bearer token
type Actor struct {
	UserID   string
	IsAdmin  bool
	IsDriver bool
}

// Anonymous reports whether no user id was supplied
func (a Actor) Anonymous() bool {
	return a.UserID == ""
}

type actorKey struct{}

// WithActor stores the actor in ctx
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the actor stored in ctx, or an anonymous actor
func ActorFromContext(ctx context.Context) Actor {
	if actor, ok := ctx.Value(actorKey{}).(Actor); ok {
		return actor
	}
	return Actor{}
}
