// Package validation contiene validadores estructurales puros para las
// requests de admisión. Sin I/O; los callers branchean sobre el resultado.
package validation

import "strings"

// ValidWhitelistRequest: accountName y provider no vacíos (trim incluido).
func ValidWhitelistRequest(accountName, provider string) bool {
	return strings.TrimSpace(accountName) != "" &&
		strings.TrimSpace(provider) != ""
}

// ValidRegisterRequest: accountName, provider y providerID no vacíos.
// El role no se valida acá: si no viene, el caller defaultea a user.
func ValidRegisterRequest(accountName, provider, providerID string) bool {
	return ValidWhitelistRequest(accountName, provider) &&
		strings.TrimSpace(providerID) != ""
}
