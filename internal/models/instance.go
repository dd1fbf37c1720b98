package models

// InstanceTags holds the mandatory metadata applied to every provisioned resource.
type InstanceTags struct {
	System      string `json:"system" validate:"required"`
	Owner       string `json:"owner" validate:"required"`
	Environment string `json:"environment" validate:"required,oneof=dev test staging prod qa"`
	Billable    string `json:"billable" validate:"required"`
}

// InstanceRequest describes one instance and its data volume.
type InstanceRequest struct {
	ImageID          string       `json:"image_id" validate:"required"`
	InstanceType     string       `json:"instance_type" validate:"required"`
	KeyName          string       `json:"key_name" validate:"required"`
	SubnetID         string       `json:"subnet_id" validate:"required"`
	SecurityGroupIDs []string     `json:"security_group_ids" validate:"required,min=1,dive,required"`
	VolumeSizeGiB    int32        `json:"volume_size_gib" validate:"gt=0"`
	VolumeType       string       `json:"volume_type" validate:"required"`
	Tags             InstanceTags `json:"tags"`
}

type InstanceSummary struct {
	InstanceID       string            `json:"instance_id"`
	InstanceType     string            `json:"instance_type"`
	PrivateIP        string            `json:"private_ip"`
	PublicIP         string            `json:"public_ip"`
	AvailabilityZone string            `json:"availability_zone"`
	VolumeID         string            `json:"volume_id"`
	VolumeSizeGiB    int32             `json:"volume_size_gib"`
	VolumeType       string            `json:"volume_type"`
	Device           string            `json:"device"`
	InstanceTags     map[string]string `json:"instance_tags"`
	VolumeTags       map[string]string `json:"volume_tags"`
}
