package domain

import "errors"

// Token verification failures. Both collapse to a generic 401 at the HTTP
// layer so callers cannot distinguish a forged token from a stale one.
var ErrTokenInvalid = errors.New("invalid token")
var ErrTokenExpired = errors.New("token expired")
