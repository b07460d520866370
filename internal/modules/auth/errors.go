package auth

import "shesafe/internal/pkg/apperror"

var (
	ErrInvalidCredentials = apperror.New(apperror.KindUnauthenticated, "INVALID_CREDENTIALS", "Email or password is incorrect")
	ErrEmailAlreadyExists = apperror.Conflict("EMAIL_EXISTS", "This email is already registered")
	ErrRoleNotAllowed     = apperror.Validation("INVALID_ROLE", "Role must be user or vendor")
	ErrUserNotFound       = apperror.NotFound("USER_NOT_FOUND", "User not found")
)
