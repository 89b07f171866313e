package httpx

import "context"

type ctxKey string

const (
	// CtxKeySubjectID is the domain actor the session belongs to
	// (coach id or player id, depending on scope).
	CtxKeySubjectID ctxKey = "subject_id"
	CtxKeyScopes    ctxKey = "scopes"
	CtxKeyClaims    ctxKey = "claims"
)

// SubjectID returns the authenticated subject from the request context,
// or "" when the request is unauthenticated.
func SubjectID(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeySubjectID).(string); ok {
		return v
	}
	return ""
}

func scopesFromCtx(ctx context.Context) []string {
	if v, ok := ctx.Value(CtxKeyScopes).([]string); ok {
		return v
	}
	return nil
}
