package backup

import (
	"errors"
	"io/fs"

	"github.com/mlefevre/savepoint/naming"
)

// ErrInvalidRequest wraps request validation failures (missing or
// non-directory paths).
var ErrInvalidRequest = errors.New("invalid backup request")

// Kind buckets an execution failure for callers that want to branch on the
// class of error rather than parse messages.
type Kind int

const (
	KindNone Kind = iota
	KindInvalidRequest
	KindNotFound
	KindPermission
	KindNameExhausted
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInvalidRequest:
		return "invalid-request"
	case KindNotFound:
		return "not-found"
	case KindPermission:
		return "permission-denied"
	case KindNameExhausted:
		return "name-exhausted"
	default:
		return "io-failure"
	}
}

// Classify maps an error from Execute onto its Kind. Anything not
// recognised is an I/O failure mid-operation (disk full, device error,
// source vanished during the copy).
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrInvalidRequest):
		return KindInvalidRequest
	case errors.Is(err, naming.ErrVersionsExhausted):
		return KindNameExhausted
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrPermission):
		return KindPermission
	default:
		return KindIO
	}
}
