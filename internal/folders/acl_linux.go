//go:build linux

package folders

import (
	"errors"
	"os"
	"os/user"
	"strconv"

	"github.com/tyler-technologies/go-provision/internal/provisionerrors"
	"golang.org/x/sys/unix"
)

// NewGranter returns the POSIX ACL granter.
func NewGranter() Granter {
	return posixACLGranter{}
}

type posixACLGranter struct{}

// Grant adds a rwx entry for account to both the access ACL and the default
// ACL of path. The default ACL is what new files and subdirectories inherit.
func (posixACLGranter) Grant(path, account string) error {
	tag, id, err := lookupPrincipal(account)
	if err != nil {
		return err
	}
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}

	for _, attr := range []string{aclXattrAccess, aclXattrDefault} {
		acl, err := readACL(path, attr)
		if err != nil {
			return err
		}
		if acl == nil {
			acl = aclFromMode(fi.Mode())
		}
		if err := unix.Setxattr(path, attr, acl.withGrant(tag, id).encode(), 0); err != nil {
			return &os.PathError{Op: "setxattr " + attr, Path: path, Err: err}
		}
	}
	return nil
}

// readACL returns nil when path carries no ACL of that kind.
func readACL(path, attr string) (posixACL, error) {
	size, err := unix.Getxattr(path, attr, nil)
	if errors.Is(err, unix.ENODATA) {
		return nil, nil
	}
	if err != nil {
		return nil, &os.PathError{Op: "getxattr " + attr, Path: path, Err: err}
	}
	buf := make([]byte, size)
	n, err := unix.Getxattr(path, attr, buf)
	if err != nil {
		return nil, &os.PathError{Op: "getxattr " + attr, Path: path, Err: err}
	}
	return decodePosixACL(buf[:n])
}

// lookupPrincipal resolves account as a user first, then as a group.
func lookupPrincipal(account string) (aclTag, uint32, error) {
	if u, err := user.Lookup(account); err == nil {
		uid, err := strconv.ParseUint(u.Uid, 10, 32)
		if err != nil {
			return 0, 0, provisionerrors.ErrLookupAccount{Account: account, Err: err}
		}
		return aclUser, uint32(uid), nil
	}
	g, err := user.LookupGroup(account)
	if err != nil {
		return 0, 0, provisionerrors.ErrLookupAccount{Account: account, Err: err}
	}
	gid, err := strconv.ParseUint(g.Gid, 10, 32)
	if err != nil {
		return 0, 0, provisionerrors.ErrLookupAccount{Account: account, Err: err}
	}
	return aclGroup, uint32(gid), nil
}
