package service

import "context"

// Status resolves the token and reports the employee's display name, how many
// active credentials they have, and the rpId the request's origin maps to.
func (s *Service) Status(ctx context.Context, rp RelyingParty, rawToken string) (*StatusResult, error) {
	id, err := s.resolveIdentity(ctx, rawToken)
	if err != nil {
		return nil, err
	}
	creds, err := s.credentials.ListActiveByEmployee(ctx, id.OrgID, id.EmployeeID)
	if err != nil {
		return nil, err
	}
	return &StatusResult{
		EmployeeName:    id.DisplayName,
		CredentialCount: len(creds),
		RPID:            rp.ID,
	}, nil
}
