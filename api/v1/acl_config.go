package v1

var authenticationAllowlist = map[string]bool{
	"/api/v1/auth/register": true,
	"/api/v1/auth/login":    true,
}

// isUnauthorizeAllowed returns whether the path is exempted from authentication.
func isUnauthorizeAllowed(fullMethodName string) bool {
	return authenticationAllowlist[fullMethodName]
}

var allowedPathOnlyForAdmin = map[string]bool{}

// isOnlyForAdminAllowedPath returns true if the path is allowed to be called only by admin.
func isOnlyForAdminAllowedPath(methodName string) bool {
	return allowedPathOnlyForAdmin[methodName]
}
