package entity

// ChallengePurpose names the flow a challenge belongs to.
type ChallengePurpose int16

const (
	ChallengePurposeUnknown ChallengePurpose = 0

	// ChallengePurposeMFALogin gates the second step of a 2FA login.
	ChallengePurposeMFALogin ChallengePurpose = 1

	// ChallengePurposeTOTPConfirm gates TOTP enrollment confirmation.
	ChallengePurposeTOTPConfirm ChallengePurpose = 2
)

func (cp ChallengePurpose) String() string {
	switch cp {
	case ChallengePurposeMFALogin:
		return "mfa_login"
	case ChallengePurposeTOTPConfirm:
		return "totp_confirm"
	default:
		return "unknown"
	}
}

// MFAMethod is the second factor presented during a 2FA login.
type MFAMethod string

const (
	MFAMethodTOTP       MFAMethod = "totp"
	MFAMethodBackupCode MFAMethod = "backup_code"
)
