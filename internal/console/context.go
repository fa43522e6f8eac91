package console

import "context"

type contextKey string

const contextKeySession contextKey = "session"

func sessionIntoContext(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, contextKeySession, session)
}

func sessionFromContext(ctx context.Context) *Session {
	if session, ok := ctx.Value(contextKeySession).(*Session); ok {
		return session
	}
	return nil
}
