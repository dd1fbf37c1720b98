package folders

import (
	"github.com/stretchr/testify/suite"
)

type PosixACLTestSuite struct {
	suite.Suite
}

func (s *PosixACLTestSuite) TestFromMode() {
	acl := aclFromMode(0750)
	s.Equal(posixACL{
		{Tag: aclUserObj, Perm: 7, ID: aclUndefinedID},
		{Tag: aclGroupObj, Perm: 5, ID: aclUndefinedID},
		{Tag: aclOther, Perm: 0, ID: aclUndefinedID},
	}, acl)
}

func (s *PosixACLTestSuite) TestEncodeLayout() {
	b := posixACL{{Tag: aclUser, Perm: 7, ID: 1001}}.encode()
	s.Equal([]byte{
		0x02, 0x00, 0x00, 0x00,
		0x02, 0x00, 0x07, 0x00, 0xe9, 0x03, 0x00, 0x00,
	}, b)
}

func (s *PosixACLTestSuite) TestDecode() {
	acl := aclFromMode(0755).withGrant(aclUser, 1001)
	decoded, err := decodePosixACL(acl.encode())
	s.NoError(err)
	s.Equal(acl, decoded)
}

func (s *PosixACLTestSuite) TestDecodeMalformed() {
	_, err := decodePosixACL([]byte{0x02, 0x00})
	s.Error(err)
	_, err = decodePosixACL([]byte{0x02, 0x00, 0x00, 0x00, 0x01})
	s.Error(err)
	_, err = decodePosixACL([]byte{0x01, 0x00, 0x00, 0x00})
	s.Error(err, "unknown version should be rejected")
}

func (s *PosixACLTestSuite) TestWithGrantAddsEntryAndMask() {
	acl := aclFromMode(0755).withGrant(aclUser, 1001)
	s.Equal(posixACL{
		{Tag: aclUserObj, Perm: 7, ID: aclUndefinedID},
		{Tag: aclUser, Perm: 7, ID: 1001},
		{Tag: aclGroupObj, Perm: 5, ID: aclUndefinedID},
		{Tag: aclMask, Perm: 7, ID: aclUndefinedID},
		{Tag: aclOther, Perm: 5, ID: aclUndefinedID},
	}, acl)
	s.True(acl.grants(aclUser, 1001))
}

func (s *PosixACLTestSuite) TestWithGrantKeepsExistingEntries() {
	existing := aclFromMode(0750).withGrant(aclGroup, 2000)
	existing[2].Perm = 5 // narrow the group entry

	acl := existing.withGrant(aclUser, 1001).withGrant(aclUser, 1000)

	s.True(acl.grants(aclUser, 1000))
	s.True(acl.grants(aclUser, 1001))
	s.False(acl.grants(aclGroup, 2000), "unrelated entries keep their permissions")
	s.Len(acl, 7)
	s.Equal(aclUser, acl[1].Tag)
	s.Equal(uint32(1000), acl[1].ID, "named entries are ordered by id")
	s.Equal(uint32(1001), acl[2].ID)
}

func (s *PosixACLTestSuite) TestWithGrantWidensDuplicate() {
	acl := aclFromMode(0755).withGrant(aclUser, 1001)
	acl[1].Perm = 4

	again := acl.withGrant(aclUser, 1001)

	s.Len(again, len(acl), "a repeated grant should not add an entry")
	s.True(again.grants(aclUser, 1001))
}

func (s *PosixACLTestSuite) TestWithGrantGroup() {
	acl := aclFromMode(0700).withGrant(aclGroup, 3000)
	s.True(acl.grants(aclGroup, 3000))
	for _, e := range acl {
		if e.Tag == aclMask {
			s.Equal(uint16(7), e.Perm)
		}
	}
}
