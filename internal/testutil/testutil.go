package testutil

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/tyler-technologies/go-provision/internal/models"
)

var (
	DefaultImageID        = "ami-0abcdef1234567890"
	DefaultInstanceType   = "t3.micro"
	DefaultKeyName        = "ops-key"
	DefaultSubnetID       = "subnet-0123456789abcdef0"
	DefaultSecurityGroups = []string{"sg-0123456789abcdef0"}
	DefaultVolumeSize     = int32(20)
	DefaultVolumeType     = "gp3"
)

// NewInstanceRequest returns a valid request for the dev environment.
func NewInstanceRequest() models.InstanceRequest {
	return models.InstanceRequest{
		ImageID:          DefaultImageID,
		InstanceType:     DefaultInstanceType,
		KeyName:          DefaultKeyName,
		SubnetID:         DefaultSubnetID,
		SecurityGroupIDs: append([]string(nil), DefaultSecurityGroups...),
		VolumeSizeGiB:    DefaultVolumeSize,
		VolumeType:       DefaultVolumeType,
		Tags: models.InstanceTags{
			System:      "billing",
			Owner:       "platform-team",
			Environment: "dev",
			Billable:    "true",
		},
	}
}

// WriteAccountList writes lines to dir/accounts.txt and returns the path.
func WriteAccountList(dir string, lines ...string) (string, error) {
	p := filepath.Join(dir, "accounts.txt")
	return p, os.WriteFile(p, []byte(strings.Join(lines, "\n")+"\n"), 0644)
}
