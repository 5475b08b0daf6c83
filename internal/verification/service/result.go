package service

// VerifyResult is the outcome of a verify-style action. A failed ceremony is
// a result, not an error: Verified=false with a 200 response.
type VerifyResult struct {
	Verified     bool
	CredentialID string // base64url; set on successful registration/authentication
}

// StatusResult answers the status query for one resolved employee.
type StatusResult struct {
	EmployeeName    string
	CredentialCount int
	RPID            string
}
