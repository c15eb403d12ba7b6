package request // import "github.com/openleaf/openleaf/http/request"

import "net/http"

type ContextKey int

const (
	ClientIPContextKey ContextKey = iota
	UserIDContextKey
	UserNameContextKey
	UserRoleContextKey
)

func getContextStringValue(r *http.Request, key ContextKey) string {
	if v := r.Context().Value(key); v != nil {
		if value, valid := v.(string); valid {
			return value
		}
	}
	return ""
}

func getContextInt32Value(r *http.Request, key ContextKey) int32 {
	if v := r.Context().Value(key); v != nil {
		if value, valid := v.(int32); valid {
			return value
		}
	}
	return 0
}

// ClientIP returns the client IP address stored in the context.
func ClientIP(r *http.Request) string {
	return getContextStringValue(r, ClientIPContextKey)
}

// UserID returns the authenticated user ID stored in the context.
func UserID(r *http.Request) int32 {
	return getContextInt32Value(r, UserIDContextKey)
}

// UserName returns the authenticated username stored in the context.
func UserName(r *http.Request) string {
	return getContextStringValue(r, UserNameContextKey)
}

// UserRole returns the authenticated user role stored in the context.
func UserRole(r *http.Request) string {
	return getContextStringValue(r, UserRoleContextKey)
}
