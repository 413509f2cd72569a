package domain

import "errors"

var ErrValidation = errors.New("invalid input")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrDuplicateEmail = errors.New("email already registered")
var ErrUserNotFound = errors.New("user not found")
var ErrForbidden = errors.New("access forbidden")
var ErrTooManyAttempts = errors.New("too many login attempts")
