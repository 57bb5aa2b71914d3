package domain

import "time"

// User is the single document stored per account. Messages are embedded and
// owned exclusively by the user.
type User struct {
	UserID              string    `json:"id" dynamodbav:"user_id"`
	Username            string    `json:"username" dynamodbav:"username"`
	Email               string    `json:"email" dynamodbav:"email"`
	PasswordHash        string    `json:"-" dynamodbav:"password_hash"`
	IsVerified          bool      `json:"isVerified" dynamodbav:"is_verified"`
	IsAcceptingMessages bool      `json:"isAcceptingMessages" dynamodbav:"is_accepting_messages"`
	VerifyCode          string    `json:"-" dynamodbav:"verify_code"`
	VerifyCodeExpiry    time.Time `json:"-" dynamodbav:"verify_code_expiry"`
	Messages            []Message `json:"messages,omitempty" dynamodbav:"messages"`
	CreatedAt           time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt           time.Time `json:"updated" dynamodbav:"updated_at"`
}

// CodeMatches reports whether code equals the outstanding one-time code.
// An empty stored code never matches.
func (u *User) CodeMatches(code string) bool {
	return u.VerifyCode != "" && u.VerifyCode == code
}

// CodeExpired reports whether the outstanding code's window has elapsed at now.
func (u *User) CodeExpired(now time.Time) bool {
	return !now.Before(u.VerifyCodeExpiry)
}

// SignUpRequest is the registration payload.
type SignUpRequest struct {
	Username string `json:"username" validate:"required,username"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// VerifyCodeRequest confirms a registration code.
type VerifyCodeRequest struct {
	Username string `json:"username" validate:"required"`
	Code     string `json:"code" validate:"required,len=6,numeric"`
}

// ResetRequest asks for a password-reset code. Identifier is a username or an email.
type ResetRequest struct {
	Identifier string `json:"identifier" validate:"required"`
}

// ResetConfirmRequest consumes a reset code and sets a new password.
type ResetConfirmRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email" validate:"omitempty,email"`
	Code        string `json:"code" validate:"required,len=6,numeric"`
	NewPassword string `json:"password" validate:"required,min=6,max=72"`
}

// SignInRequest authenticates with a username or email.
type SignInRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// RegistrationResult is returned by a successful sign-up. Username is the
// name the account must be verified under, which differs from the submitted
// one when an unverified record was reused.
type RegistrationResult struct {
	Username string
	Reused   bool
}
