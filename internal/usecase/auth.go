package usecase

import (
	"context"
	"strings"
)

type AuthUseCase struct {
	Provider AuthProvider
	// RedirectTo is where the recovery e-mail link lands.
	RedirectTo string
}

func NewAuthUseCase(provider AuthProvider, redirectTo string) *AuthUseCase {
	return &AuthUseCase{Provider: provider, RedirectTo: redirectTo}
}

// ForgotPassword sends a recovery e-mail. Unknown addresses are not reported.
func (uc *AuthUseCase) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if !isValidEmail(email) {
		return validationFailed([]ValidationError{{"email", "is invalid"}})
	}
	if err := uc.Provider.RecoverPassword(ctx, email, uc.RedirectTo); err != nil {
		return upstreamError("failed to send recovery e-mail", err)
	}
	return nil
}

func (uc *AuthUseCase) ResetPassword(ctx context.Context, caller Caller, password, confirm string) error {
	if errs := ValidateResetPassword(password, confirm); len(errs) > 0 {
		return validationFailed(errs)
	}
	if err := uc.Provider.UpdatePassword(ctx, caller.Token, password); err != nil {
		return upstreamError("failed to update password", err)
	}
	return nil
}
