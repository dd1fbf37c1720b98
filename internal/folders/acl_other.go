//go:build !linux && !windows

package folders

import (
	"runtime"

	"github.com/tyler-technologies/go-provision/internal/provisionerrors"
)

// NewGranter returns a granter that fails every grant; this platform has
// no supported inheritable ACL interface.
func NewGranter() Granter {
	return GranterFunc(func(path, account string) error {
		return provisionerrors.ErrUnsupportedPlatform{OS: runtime.GOOS}
	})
}
