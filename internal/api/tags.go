package api

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/tyler-technologies/go-provision/internal/models"
)

const (
	TagName        = "Name"
	TagSystem      = "System"
	TagOwner       = "Owner"
	TagEnvironment = "Environment"
	TagBillable    = "Billable"
)

// InstanceName is the Name tag given to the instance.
func InstanceName(tags models.InstanceTags) string {
	return fmt.Sprintf("%s-%s", tags.System, tags.Environment)
}

// VolumeName is the Name tag given to the data volume.
func VolumeName(tags models.InstanceTags) string {
	return fmt.Sprintf("%s-%s-data", tags.System, tags.Environment)
}

// BuildTagSpecifications returns the instance and volume tag specifications.
// Both carry the same mandatory tags and differ only in Name.
func BuildTagSpecifications(tags models.InstanceTags) (types.TagSpecification, types.TagSpecification) {
	instance := types.TagSpecification{
		ResourceType: types.ResourceTypeInstance,
		Tags:         append([]types.Tag{newTag(TagName, InstanceName(tags))}, commonTags(tags)...),
	}
	volume := types.TagSpecification{
		ResourceType: types.ResourceTypeVolume,
		Tags:         append([]types.Tag{newTag(TagName, VolumeName(tags))}, commonTags(tags)...),
	}
	return instance, volume
}

// TagMap flattens EC2 tags for reporting.
func TagMap(tags []types.Tag) map[string]string {
	m := make(map[string]string, len(tags))
	for _, t := range tags {
		m[aws.ToString(t.Key)] = aws.ToString(t.Value)
	}
	return m
}

func commonTags(tags models.InstanceTags) []types.Tag {
	return []types.Tag{
		newTag(TagSystem, tags.System),
		newTag(TagOwner, tags.Owner),
		newTag(TagEnvironment, tags.Environment),
		newTag(TagBillable, tags.Billable),
	}
}

func newTag(key, value string) types.Tag {
	return types.Tag{Key: aws.String(key), Value: aws.String(value)}
}
