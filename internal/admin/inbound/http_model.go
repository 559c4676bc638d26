package inbound

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token,omitempty"`
	//
	MfaRequired      bool     `json:"mfa_required,omitempty"`
	ChallengeToken   string   `json:"challenge_token,omitempty"`
	AvailableMethods []string `json:"available_methods,omitempty"`
}

type Login2FARequest struct {
	ChallengeToken string `json:"challenge_token"`
	Method         string `json:"method"`
	Code           string `json:"code"`
}

type Login2FAResponse struct {
	AccessToken string `json:"access_token"`
}

type LoginOAuthRequest struct {
	Code string `json:"code"`
}

type TOTPSetupRequest struct {
	CurrentPassword string `json:"current_password"`
}

type TOTPSetupResponse struct {
	ChallengeToken string `json:"challenge_token"`
	Key            string `json:"key"`
	URI            string `json:"uri"`
}

type TOTPConfirmRequest struct {
	ChallengeToken string `json:"challenge_token"`
	Code           string `json:"code"`
}

type BackupCodeRegenerateRequest struct {
	CurrentPassword string `json:"current_password"`
}

type BackupCodeRegenerateResponse struct {
	Codes []string `json:"codes"`
}

func (BackupCodeRegenerateResponse) Message() string {
	return "Store these codes safely, they will not be shown again"
}

type CodeSendResponse struct {
	Email string `json:"email"`
}

func (CodeSendResponse) Message() string {
	return "Verification code sent"
}

type CodeVerifyRequest struct {
	Code string `json:"code"`
}
