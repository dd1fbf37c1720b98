package api

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tyler-technologies/go-provision/internal/config"
	"github.com/tyler-technologies/go-provision/internal/logging"
	"github.com/tyler-technologies/go-provision/internal/models"
	"github.com/tyler-technologies/go-provision/internal/provisionerrors"
)

// DeviceName is where the data volume is attached.
const DeviceName = "/dev/sdf"

const (
	DefaultInstanceType = "t3.micro"
	DefaultVolumeSize   = 20
	DefaultVolumeType   = "gp3"
)

var errNoInstance = errors.New("no instance returned")

// Options controls the two wait points of ProvisionInstance.
type Options struct {
	// RunningTimeout bounds the wait for the instance to reach running.
	RunningTimeout time.Duration
	// PollInterval is the delay between volume state checks. The volume
	// wait has no timeout of its own; only ctx ends it early.
	PollInterval time.Duration
	// RunningWaiterOptions are passed through to the SDK running waiter.
	RunningWaiterOptions []func(*ec2.InstanceRunningWaiterOptions)
}

func (o Options) withDefaults() Options {
	if o.RunningTimeout <= 0 {
		o.RunningTimeout = config.DefaultInstanceRunningTimeout
	}
	if o.PollInterval <= 0 {
		o.PollInterval = config.DefaultVolumePollInterval
	}
	return o
}

// ProvisionInstance creates one instance, waits for it to run, creates a
// tagged data volume in the same availability zone, waits for the volume and
// attaches it. Nothing is cleaned up on failure: an instance created before a
// later error is left running.
func ProvisionInstance(ctx context.Context, client EC2API, req models.InstanceRequest, opts Options, status *logging.Status) (*models.InstanceSummary, error) {
	if status == nil {
		status = logging.NewStatus(nil)
	}
	fail := func(err error) (*models.InstanceSummary, error) {
		logrus.Errorf("Instance provisioning failed: %v", err)
		status.Failure("error: %v", err)
		return nil, err
	}

	opts = opts.withDefaults()

	if err := ValidateInstanceRequest(req); err != nil {
		return fail(err)
	}

	instanceTags, volumeTags := BuildTagSpecifications(req.Tags)

	status.Info("Creating %s instance from image %s", req.InstanceType, req.ImageID)
	runOut, err := client.RunInstances(ctx, &ec2.RunInstancesInput{
		ImageId:           aws.String(req.ImageID),
		InstanceType:      types.InstanceType(req.InstanceType),
		KeyName:           aws.String(req.KeyName),
		SubnetId:          aws.String(req.SubnetID),
		SecurityGroupIds:  req.SecurityGroupIDs,
		MinCount:          aws.Int32(1),
		MaxCount:          aws.Int32(1),
		ClientToken:       aws.String(uuid.NewString()),
		TagSpecifications: []types.TagSpecification{instanceTags},
	})
	if err != nil {
		return fail(provisionerrors.ErrRunInstance{Err: err})
	}
	if len(runOut.Instances) == 0 {
		return fail(provisionerrors.ErrRunInstance{Err: errNoInstance})
	}
	instanceID := aws.ToString(runOut.Instances[0].InstanceId)
	log := logrus.WithField("instance_id", instanceID)
	log.Info("Instance requested")
	status.Success("Instance %s created", instanceID)

	status.Info("Waiting for instance %s to reach running state", instanceID)
	instance, err := waitForInstanceRunning(ctx, client, instanceID, opts)
	if err != nil {
		return fail(err)
	}
	var zone string
	if instance.Placement != nil {
		zone = aws.ToString(instance.Placement.AvailabilityZone)
	}
	log.WithField("availability_zone", zone).Info("Instance running")
	status.Success("Instance %s is running in %s", instanceID, zone)

	status.Info("Creating %d GiB %s volume in %s", req.VolumeSizeGiB, req.VolumeType, zone)
	volOut, err := client.CreateVolume(ctx, &ec2.CreateVolumeInput{
		AvailabilityZone:  aws.String(zone),
		Size:              aws.Int32(req.VolumeSizeGiB),
		VolumeType:        types.VolumeType(req.VolumeType),
		TagSpecifications: []types.TagSpecification{volumeTags},
	})
	if err != nil {
		return fail(provisionerrors.ErrCreateVolume{Err: err})
	}
	volumeID := aws.ToString(volOut.VolumeId)
	log = log.WithField("volume_id", volumeID)
	log.Info("Volume requested")
	status.Success("Volume %s created", volumeID)

	status.Info("Waiting for volume %s to become available", volumeID)
	if err := waitForVolumeAvailable(ctx, client, volumeID, opts.PollInterval); err != nil {
		return fail(err)
	}
	status.Success("Volume %s is available", volumeID)

	status.Info("Attaching volume %s to instance %s at %s", volumeID, instanceID, DeviceName)
	_, err = client.AttachVolume(ctx, &ec2.AttachVolumeInput{
		Device:     aws.String(DeviceName),
		InstanceId: aws.String(instanceID),
		VolumeId:   aws.String(volumeID),
	})
	if err != nil {
		return fail(provisionerrors.ErrAttachVolume{VolumeID: volumeID, InstanceID: instanceID, Err: err})
	}
	log.WithField("device", DeviceName).Info("Volume attached")
	status.Success("Volume %s attached", volumeID)

	summary := &models.InstanceSummary{
		InstanceID:       instanceID,
		InstanceType:     string(instance.InstanceType),
		PrivateIP:        aws.ToString(instance.PrivateIpAddress),
		PublicIP:         aws.ToString(instance.PublicIpAddress),
		AvailabilityZone: zone,
		VolumeID:         volumeID,
		VolumeSizeGiB:    req.VolumeSizeGiB,
		VolumeType:       req.VolumeType,
		Device:           DeviceName,
		InstanceTags:     TagMap(instanceTags.Tags),
		VolumeTags:       TagMap(volumeTags.Tags),
	}
	PrintSummary(status, summary)
	return summary, nil
}

func waitForInstanceRunning(ctx context.Context, client EC2API, instanceID string, opts Options) (*types.Instance, error) {
	waiter := ec2.NewInstanceRunningWaiter(client, opts.RunningWaiterOptions...)
	out, err := waiter.WaitForOutput(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: []string{instanceID},
	}, opts.RunningTimeout)
	if err != nil {
		return nil, provisionerrors.ErrInstanceNotRunning{InstanceID: instanceID, Err: err}
	}
	for _, r := range out.Reservations {
		for i := range r.Instances {
			if aws.ToString(r.Instances[i].InstanceId) == instanceID {
				return &r.Instances[i], nil
			}
		}
	}
	return nil, provisionerrors.ErrInstanceNotRunning{InstanceID: instanceID, Err: errNoInstance}
}

// waitForVolumeAvailable polls until the volume is available. A volume in the
// error state will never become available and ends the wait.
func waitForVolumeAvailable(ctx context.Context, client EC2API, volumeID string, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		out, err := client.DescribeVolumes(ctx, &ec2.DescribeVolumesInput{
			VolumeIds: []string{volumeID},
		})
		if err != nil {
			return provisionerrors.ErrVolumeNotAvailable{VolumeID: volumeID, Err: err}
		}
		if len(out.Volumes) > 0 {
			state := out.Volumes[0].State
			logrus.WithField("volume_id", volumeID).Debugf("Volume state %s", state)
			switch state {
			case types.VolumeStateAvailable:
				return nil
			case types.VolumeStateError:
				return provisionerrors.ErrVolumeNotAvailable{VolumeID: volumeID, Err: fmt.Errorf("volume state %s", state)}
			}
		}

		select {
		case <-ctx.Done():
			return provisionerrors.ErrVolumeNotAvailable{VolumeID: volumeID, Err: ctx.Err()}
		case <-ticker.C:
		}
	}
}

// PrintSummary writes the final report block.
func PrintSummary(status *logging.Status, s *models.InstanceSummary) {
	status.Info("Provisioning complete")
	status.Plain("  %-18s %s", "Instance ID:", s.InstanceID)
	status.Plain("  %-18s %s", "Instance type:", s.InstanceType)
	status.Plain("  %-18s %s", "Private IP:", s.PrivateIP)
	status.Plain("  %-18s %s", "Public IP:", s.PublicIP)
	status.Plain("  %-18s %s", "Availability zone:", s.AvailabilityZone)
	status.Plain("  %-18s %s", "Volume ID:", s.VolumeID)
	status.Plain("  %-18s %d GiB (%s)", "Volume size:", s.VolumeSizeGiB, s.VolumeType)
	status.Plain("  %-18s %s", "Device:", s.Device)
	status.Plain("  Instance tags:")
	printTags(status, s.InstanceTags)
	status.Plain("  Volume tags:")
	printTags(status, s.VolumeTags)

	logrus.WithFields(logrus.Fields{
		"instance_id":       s.InstanceID,
		"instance_type":     s.InstanceType,
		"private_ip":        s.PrivateIP,
		"public_ip":         s.PublicIP,
		"availability_zone": s.AvailabilityZone,
		"volume_id":         s.VolumeID,
		"device":            s.Device,
	}).Info("Instance provisioned")
}

func printTags(status *logging.Status, tags map[string]string) {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		status.Plain("    %-16s %s", k+":", tags[k])
	}
}
