package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	credentialdomain "field-attendance/backend/internal/credential/domain"
	employeedomain "field-attendance/backend/internal/employee/domain"
)

func TestResolveIdentity_ShortTokenRejectedBeforeLookup(t *testing.T) {
	env := newTestEnv()
	_, err := env.svc.Status(context.Background(), testRP, "short")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestResolveIdentity_UnknownToken(t *testing.T) {
	env := newTestEnv()
	_, err := env.svc.Status(context.Background(), testRP, "some-other-token-that-is-long")
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, env.audit.actions(), "token_rejected")
}

func TestResolveIdentity_DisabledEmployee(t *testing.T) {
	env := newTestEnv()
	env.employees.mu.Lock()
	env.employees.employees[testOrgID+"/"+testEmpID].Status = employeedomain.EmployeeStatusDisabled
	env.employees.mu.Unlock()

	_, err := env.svc.Status(context.Background(), testRP, testRawToken)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestResolveIdentity_TrimsWhitespace(t *testing.T) {
	env := newTestEnv()
	st, err := env.svc.Status(context.Background(), testRP, "  "+testRawToken+"\n")
	require.NoError(t, err)
	assert.Equal(t, testEmpName, st.EmployeeName)
}

func TestStatus_CredentialCounts(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	for _, want := range []int{0, 1, 3} {
		for i := len(env.credentials.credentials); i < want; i++ {
			env.credentials.Create(ctx, &credentialdomain.Credential{
				ID:           string(rune('a' + i)),
				OrgID:        testOrgID,
				EmployeeID:   testEmpID,
				CredentialID: encodeCredentialID([]byte{byte(i), 1, 2, 3}),
				PublicKey:    encodeCredentialID([]byte{4, 5, 6}),
				Active:       true,
				CreatedAt:    time.Now().UTC(),
			})
		}
		st, err := env.svc.Status(ctx, testRP, testRawToken)
		require.NoError(t, err)
		assert.Equal(t, want, st.CredentialCount)
		assert.Equal(t, testEmpName, st.EmployeeName)
		assert.Equal(t, testRP.ID, st.RPID)
	}
}

func TestFallbackVerify(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	// No code assigned yet.
	result, err := env.svc.FallbackVerify(ctx, testRawToken, "123456")
	require.NoError(t, err)
	assert.False(t, result.Verified)

	hash, err := env.svc.hasher.Hash([]byte("123456"))
	require.NoError(t, err)
	require.NoError(t, env.employees.SetFallbackCodeHash(ctx, testOrgID, testEmpID, hash))

	result, err = env.svc.FallbackVerify(ctx, testRawToken, "123456")
	require.NoError(t, err)
	assert.True(t, result.Verified)

	result, err = env.svc.FallbackVerify(ctx, testRawToken, "654321")
	require.NoError(t, err)
	assert.False(t, result.Verified)

	_, err = env.svc.FallbackVerify(ctx, testRawToken, "")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseAction(t *testing.T) {
	for name, want := range map[string]Action{
		"status":                 ActionStatus,
		"registration_options":   ActionRegistrationOptions,
		"registration_verify":    ActionRegistrationVerify,
		"authentication_options": ActionAuthenticationOptions,
		"authentication_verify":  ActionAuthenticationVerify,
		"fallback_verify":        ActionFallbackVerify,
	} {
		got, err := ParseAction(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, name, got.String())
	}

	_, err := ParseAction("checkin")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRelyingPartyFromOrigin(t *testing.T) {
	rp, err := RelyingPartyFromOrigin("https://checkin.example.com:8443")
	require.NoError(t, err)
	assert.Equal(t, "checkin.example.com", rp.ID)
	assert.Equal(t, "https://checkin.example.com:8443", rp.Origin)

	_, err = RelyingPartyFromOrigin("")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = RelyingPartyFromOrigin("not a url")
	require.ErrorIs(t, err, ErrInvalidInput)
}
