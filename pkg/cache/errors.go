package cache

import (
	"errors"
	"fmt"

	"github.com/axiome/firstprinciples/pkg/httputil"
)

// ErrNetwork marks a failed round trip to a remote cache backend. Such
// errors are wrapped with [httputil.Retryable] so writers can retry them.
var ErrNetwork = errors.New("cache backend unreachable")

func backendError(op string, err error) error {
	return httputil.Retryable(fmt.Errorf("%w: %s: %v", ErrNetwork, op, err))
}
