package monarch

import (
	"context"

	"github.com/eshaffer321/monarch-insights-go/internal/auth"
	internalTypes "github.com/eshaffer321/monarch-insights-go/internal/types"
)

// authService implements the AuthService interface
type authService struct {
	client  *Client
	service *auth.Service
}

// newAuthService creates a new auth service
func newAuthService(client *Client) *authService {
	return &authService{
		client: client,
		service: auth.NewService(
			client.baseURL,
			client.httpClient,
			client.options.Logger,
		),
	}
}

// Login performs authentication
func (a *authService) Login(ctx context.Context, email, password string) error {
	return a.completeLogin(a.service.Login(ctx, email, password))
}

// LoginWithMFA performs login with MFA
func (a *authService) LoginWithMFA(ctx context.Context, email, password, mfaCode string) error {
	return a.completeLogin(a.service.LoginWithMFA(ctx, email, password, mfaCode))
}

// LoginWithTOTP performs login with TOTP secret
func (a *authService) LoginWithTOTP(ctx context.Context, email, password, totpSecret string) error {
	return a.completeLogin(a.service.LoginWithTOTP(ctx, email, password, totpSecret))
}

// completeLogin propagates a fresh session to the client and transport,
// persisting it when a session file is configured.
func (a *authService) completeLogin(loginErr error) error {
	if loginErr != nil {
		return loginErr
	}

	session, err := a.service.GetSession()
	if err != nil {
		return err
	}

	a.client.session = convertSession(session)
	a.client.transport.SetSession(session)

	if a.client.options.SessionFile != "" {
		_ = a.service.SaveSession(a.client.options.SessionFile)
	}

	return nil
}

// GetSession returns the current session
func (a *authService) GetSession() (*Session, error) {
	session, err := a.service.GetSession()
	if err != nil {
		return nil, err
	}
	return convertSession(session), nil
}

// SaveSession saves session to file
func (a *authService) SaveSession(path string) error {
	return a.service.SaveSession(path)
}

// LoadSession loads session from file
func (a *authService) LoadSession(path string) error {
	if err := a.service.LoadSession(path); err != nil {
		return err
	}

	session, err := a.service.GetSession()
	if err != nil {
		return err
	}

	a.client.session = convertSession(session)
	a.client.transport.SetSession(session)

	return nil
}

// convertSession converts internal types.Session to monarch.Session
func convertSession(s *internalTypes.Session) *Session {
	if s == nil {
		return nil
	}
	return &Session{
		Token:      s.Token,
		UserID:     s.UserID,
		Email:      s.Email,
		ExpiresAt:  s.ExpiresAt,
		DeviceUUID: s.DeviceUUID,
	}
}
