package errorx

import "net/http"

type Code int

const (
	// Common codes
	BadRequest       Code = 100001
	BadResponse      Code = 100002
	PermissionDenied Code = 100003
	NotFound         Code = 100004
	Unauthenticated  Code = 100005
	AlreadyExists    Code = 100006
	Internal         Code = 100007
	Unavailable      Code = 100008
	NotImplemented   Code = 100009
	TooManyRequests  Code = 100010

	// Blocks game codes
	BlockUnavailable  Code = 300001
	GameLocked        Code = 300002
	InvalidPromoCode  Code = 300003
	InsufficientFunds Code = 300004
	AlreadySettled    Code = 300005
)

// StatusCode maps an error code to the HTTP status written by the router.
func StatusCode(code Code) int {
	switch code {
	case BadRequest, InvalidPromoCode:
		return http.StatusBadRequest
	case PermissionDenied, GameLocked:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Unauthenticated:
		return http.StatusUnauthorized
	case AlreadyExists, BlockUnavailable, AlreadySettled:
		return http.StatusConflict
	case Unavailable:
		return http.StatusServiceUnavailable
	case TooManyRequests:
		return http.StatusTooManyRequests
	case InsufficientFunds:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}
