//go:build windows

package folders

import (
	"errors"

	"github.com/tyler-technologies/go-provision/internal/provisionerrors"
	"golang.org/x/sys/windows"
)

// FILE_ALL_ACCESS
const fileAllAccess windows.ACCESS_MASK = windows.STANDARD_RIGHTS_REQUIRED | windows.SYNCHRONIZE | 0x1FF

// NewGranter returns the DACL granter.
func NewGranter() Granter {
	return daclGranter{}
}

type daclGranter struct{}

// Grant merges an inheritable full control entry for account into the DACL
// of path. Inherited entries are left untouched.
func (daclGranter) Grant(path, account string) error {
	sid, _, _, err := windows.LookupSID("", account)
	if err != nil {
		return provisionerrors.ErrLookupAccount{Account: account, Err: err}
	}

	sd, err := windows.GetNamedSecurityInfo(path, windows.SE_FILE_OBJECT, windows.DACL_SECURITY_INFORMATION)
	if err != nil {
		return err
	}
	dacl, _, err := sd.DACL()
	if err != nil && !errors.Is(err, windows.ERROR_OBJECT_NOT_FOUND) {
		return err
	}

	acl, err := windows.ACLFromEntries([]windows.EXPLICIT_ACCESS{
		{
			AccessPermissions: fileAllAccess,
			AccessMode:        windows.GRANT_ACCESS,
			Inheritance:       windows.SUB_CONTAINERS_AND_OBJECTS_INHERIT,
			Trustee: windows.TRUSTEE{
				TrusteeForm:  windows.TRUSTEE_IS_SID,
				TrusteeType:  windows.TRUSTEE_IS_UNKNOWN,
				TrusteeValue: windows.TrusteeValueFromSID(sid),
			},
		},
	}, dacl)
	if err != nil {
		return err
	}

	return windows.SetNamedSecurityInfo(path, windows.SE_FILE_OBJECT, windows.DACL_SECURITY_INFORMATION, nil, nil, acl, nil)
}
