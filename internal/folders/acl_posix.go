package folders

import (
	"encoding/binary"
	"fmt"
	"os"
	"sort"
)

// POSIX ACL extended attribute layout, see linux/posix_acl_xattr.h.
const (
	aclXattrAccess  = "system.posix_acl_access"
	aclXattrDefault = "system.posix_acl_default"
	aclXattrVersion = 0x0002
	aclUndefinedID  = 0xFFFFFFFF

	aclHeaderSize = 4
	aclEntrySize  = 8
)

type aclTag uint16

const (
	aclUserObj  aclTag = 0x01
	aclUser     aclTag = 0x02
	aclGroupObj aclTag = 0x04
	aclGroup    aclTag = 0x08
	aclMask     aclTag = 0x10
	aclOther    aclTag = 0x20
)

// rwx
const aclPermFull uint16 = 0x7

type aclEntry struct {
	Tag  aclTag
	Perm uint16
	ID   uint32
}

type posixACL []aclEntry

func decodePosixACL(b []byte) (posixACL, error) {
	if len(b) < aclHeaderSize || (len(b)-aclHeaderSize)%aclEntrySize != 0 {
		return nil, fmt.Errorf("malformed acl xattr of %d bytes", len(b))
	}
	if v := binary.LittleEndian.Uint32(b); v != aclXattrVersion {
		return nil, fmt.Errorf("unsupported acl xattr version %d", v)
	}
	acl := make(posixACL, 0, (len(b)-aclHeaderSize)/aclEntrySize)
	for off := aclHeaderSize; off < len(b); off += aclEntrySize {
		acl = append(acl, aclEntry{
			Tag:  aclTag(binary.LittleEndian.Uint16(b[off:])),
			Perm: binary.LittleEndian.Uint16(b[off+2:]),
			ID:   binary.LittleEndian.Uint32(b[off+4:]),
		})
	}
	return acl, nil
}

func (a posixACL) encode() []byte {
	b := make([]byte, aclHeaderSize+len(a)*aclEntrySize)
	binary.LittleEndian.PutUint32(b, aclXattrVersion)
	off := aclHeaderSize
	for _, e := range a {
		binary.LittleEndian.PutUint16(b[off:], uint16(e.Tag))
		binary.LittleEndian.PutUint16(b[off+2:], e.Perm)
		binary.LittleEndian.PutUint32(b[off+4:], e.ID)
		off += aclEntrySize
	}
	return b
}

// aclFromMode is the minimal ACL equivalent to the permission bits of mode.
func aclFromMode(mode os.FileMode) posixACL {
	perm := uint32(mode.Perm())
	return posixACL{
		{Tag: aclUserObj, Perm: uint16(perm>>6) & aclPermFull, ID: aclUndefinedID},
		{Tag: aclGroupObj, Perm: uint16(perm>>3) & aclPermFull, ID: aclUndefinedID},
		{Tag: aclOther, Perm: uint16(perm) & aclPermFull, ID: aclUndefinedID},
	}
}

// withGrant returns a copy of a granting rwx to the named user or group.
// Existing entries are kept. An entry for the same principal is widened
// rather than duplicated, since the kernel rejects duplicate qualifiers.
// The mask is widened so the grant is effective.
func (a posixACL) withGrant(tag aclTag, id uint32) posixACL {
	out := make(posixACL, 0, len(a)+2)
	found := false
	var mask *aclEntry
	for _, e := range a {
		if e.Tag == tag && e.ID == id {
			e.Perm |= aclPermFull
			found = true
		}
		out = append(out, e)
	}
	if !found {
		out = append(out, aclEntry{Tag: tag, Perm: aclPermFull, ID: id})
	}

	var groupClass uint16
	for i := range out {
		switch out[i].Tag {
		case aclUser, aclGroupObj, aclGroup:
			groupClass |= out[i].Perm
		case aclMask:
			mask = &out[i]
		}
	}
	if mask != nil {
		mask.Perm |= groupClass
	} else {
		out = append(out, aclEntry{Tag: aclMask, Perm: groupClass, ID: aclUndefinedID})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Tag != out[j].Tag {
			return out[i].Tag < out[j].Tag
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// grants reports whether a gives the principal full control.
func (a posixACL) grants(tag aclTag, id uint32) bool {
	for _, e := range a {
		if e.Tag == tag && e.ID == id && e.Perm&aclPermFull == aclPermFull {
			return true
		}
	}
	return false
}
