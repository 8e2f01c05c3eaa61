package services

import (
	"errors"
	"net/http"
)

// Base taxonomy. Every mutation reports one of these synchronously; nothing is
// retried internally.
var (
	ErrNotFound        = errors.New("resource not found")
	ErrConflict        = errors.New("resource already exists")
	ErrForbidden       = errors.New("operation not permitted")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnauthenticated = errors.New("invalid credentials")
)

// Wrapped per-case errors so handlers can keep the base mapping while the
// message stays specific.
var (
	ErrPostNotFound         = wrap(ErrNotFound, "post not found")
	ErrReelNotFound         = wrap(ErrNotFound, "reel not found")
	ErrUserNotFound         = wrap(ErrNotFound, "user not found")
	ErrStoryNotFound        = wrap(ErrNotFound, "story not found")
	ErrLikeNotFound         = wrap(ErrNotFound, "like not found")
	ErrCommentNotFound      = wrap(ErrNotFound, "comment not found")
	ErrParentNotFound       = wrap(ErrNotFound, "parent comment not found")
	ErrFollowNotFound       = wrap(ErrNotFound, "follow relationship not found")
	ErrNotificationNotFound = wrap(ErrNotFound, "notification not found")

	ErrAlreadyLiked    = wrap(ErrConflict, "already liked")
	ErrAlreadyFollowed = wrap(ErrConflict, "already following this user")
	ErrUsernameTaken   = wrap(ErrConflict, "username already registered")
	ErrEmailTaken      = wrap(ErrConflict, "email already registered")

	ErrSelfFollow              = wrap(ErrInvalidArgument, "cannot follow yourself")
	ErrInvalidNotificationType = wrap(ErrInvalidArgument, "invalid notification type")

	ErrAccountInactive = wrap(ErrForbidden, "account is inactive")
)

type wrappedError struct {
	base error
	msg  string
}

func (e *wrappedError) Error() string { return e.msg }
func (e *wrappedError) Unwrap() error { return e.base }

func wrap(base error, msg string) error {
	return &wrappedError{base: base, msg: msg}
}

// HTTPStatus maps a service error onto the status the request layer should
// return. Unknown errors are internal.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
