package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"
)

// DefaultZone is the availability zone every fake instance lands in.
const DefaultZone = "us-east-1a"

// EC2Server implements an in-memory EC2 simulator for use in testing.
type EC2Server struct {
	mu sync.Mutex

	instances map[string]*types.Instance
	volumes   map[string]*types.Volume
	attached  map[string]string
	nextID    int

	// pendingDescribes is how many DescribeInstances calls report pending
	// before an instance reports running. Negative means never.
	pendingDescribes int
	// creatingPolls is how many DescribeVolumes calls report creating
	// before a volume reports available.
	creatingPolls int
	// volumeState, when set, replaces the state every volume reports.
	volumeState types.VolumeState
	failures    map[string]error

	calls              []string
	RunInstancesInput  *ec2.RunInstancesInput
	CreateVolumeInput  *ec2.CreateVolumeInput
	AttachVolumeInput  *ec2.AttachVolumeInput
	describeInstanceNo int
	describeVolumeNo   int
}

func NewEC2Server() *EC2Server {
	srv := &EC2Server{}
	srv.Reset()
	return srv
}

func (e *EC2Server) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.instances = make(map[string]*types.Instance)
	e.volumes = make(map[string]*types.Volume)
	e.attached = make(map[string]string)
	e.failures = make(map[string]error)
	e.calls = nil
	e.nextID = 0
	e.pendingDescribes = 0
	e.creatingPolls = 0
	e.volumeState = ""
	e.describeInstanceNo = 0
	e.describeVolumeNo = 0
	e.RunInstancesInput = nil
	e.CreateVolumeInput = nil
	e.AttachVolumeInput = nil
}

// SetPendingDescribes makes instances report pending for n describes; n < 0 keeps them pending.
func (e *EC2Server) SetPendingDescribes(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pendingDescribes = n
}

// SetCreatingPolls makes volumes report creating for n describes.
func (e *EC2Server) SetCreatingPolls(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.creatingPolls = n
}

// SetVolumeState makes every volume report state on describe.
func (e *EC2Server) SetVolumeState(state types.VolumeState) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.volumeState = state
}

// FailOn makes the named operation return an API error with the given code.
func (e *EC2Server) FailOn(operation, code string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.failures[operation] = apiError(code, fmt.Sprintf("%s failed", operation))
}

// Calls returns the operation names in the order they were invoked.
func (e *EC2Server) Calls() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.calls...)
}

// CallCount returns how many times operation was invoked.
func (e *EC2Server) CallCount(operation string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, c := range e.calls {
		if c == operation {
			n++
		}
	}
	return n
}

// Instances returns a copy of every instance created.
func (e *EC2Server) Instances() []types.Instance {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]types.Instance, 0, len(e.instances))
	for _, i := range e.instances {
		out = append(out, *i)
	}
	return out
}

// Volumes returns a copy of every volume created.
func (e *EC2Server) Volumes() []types.Volume {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]types.Volume, 0, len(e.volumes))
	for _, v := range e.volumes {
		out = append(out, *v)
	}
	return out
}

// AttachedTo returns the instance a volume is attached to.
func (e *EC2Server) AttachedTo(volumeID string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	id, ok := e.attached[volumeID]
	return id, ok
}

func (e *EC2Server) record(operation string) error {
	e.calls = append(e.calls, operation)
	return e.failures[operation]
}

func (e *EC2Server) newID(prefix string) string {
	e.nextID++
	return fmt.Sprintf("%s-%017x", prefix, e.nextID)
}

func (e *EC2Server) RunInstances(
	ctx context.Context,
	input *ec2.RunInstancesInput,
	opts ...func(*ec2.Options),
) (*ec2.RunInstancesOutput, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.record("RunInstances"); err != nil {
		return nil, err
	}
	e.RunInstancesInput = input

	id := e.newID("i")
	var tags []types.Tag
	for _, spec := range input.TagSpecifications {
		if spec.ResourceType == types.ResourceTypeInstance {
			tags = append(tags, spec.Tags...)
		}
	}
	inst := &types.Instance{
		InstanceId:   aws.String(id),
		ImageId:      input.ImageId,
		InstanceType: input.InstanceType,
		KeyName:      input.KeyName,
		SubnetId:     input.SubnetId,
		Placement:    &types.Placement{AvailabilityZone: aws.String(DefaultZone)},
		State: &types.InstanceState{
			Name: types.InstanceStateNamePending,
			Code: aws.Int32(0),
		},
		PrivateIpAddress: aws.String(fmt.Sprintf("10.0.0.%d", e.nextID)),
		Tags:             tags,
	}
	for _, sg := range input.SecurityGroupIds {
		inst.SecurityGroups = append(inst.SecurityGroups, types.GroupIdentifier{GroupId: aws.String(sg)})
	}
	e.instances[id] = inst

	return &ec2.RunInstancesOutput{Instances: []types.Instance{*inst}}, nil
}

func (e *EC2Server) DescribeInstances(
	ctx context.Context,
	input *ec2.DescribeInstancesInput,
	opts ...func(*ec2.Options),
) (*ec2.DescribeInstancesOutput, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.record("DescribeInstances"); err != nil {
		return nil, err
	}
	e.describeInstanceNo++

	var found []types.Instance
	for _, id := range input.InstanceIds {
		inst, ok := e.instances[id]
		if !ok {
			return nil, apiError("InvalidInstanceID.NotFound", fmt.Sprintf("instance %s not found", id))
		}
		if e.pendingDescribes >= 0 && e.describeInstanceNo > e.pendingDescribes {
			inst.State = &types.InstanceState{Name: types.InstanceStateNameRunning, Code: aws.Int32(16)}
			inst.PublicIpAddress = aws.String(fmt.Sprintf("203.0.113.%d", len(e.instances)))
		}
		found = append(found, *inst)
	}

	return &ec2.DescribeInstancesOutput{
		Reservations: []types.Reservation{{Instances: found}},
	}, nil
}

func (e *EC2Server) CreateVolume(
	ctx context.Context,
	input *ec2.CreateVolumeInput,
	opts ...func(*ec2.Options),
) (*ec2.CreateVolumeOutput, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.record("CreateVolume"); err != nil {
		return nil, err
	}
	e.CreateVolumeInput = input

	id := e.newID("vol")
	var tags []types.Tag
	for _, spec := range input.TagSpecifications {
		if spec.ResourceType == types.ResourceTypeVolume {
			tags = append(tags, spec.Tags...)
		}
	}
	vol := &types.Volume{
		VolumeId:         aws.String(id),
		AvailabilityZone: input.AvailabilityZone,
		Size:             input.Size,
		VolumeType:       input.VolumeType,
		State:            types.VolumeStateCreating,
		Tags:             tags,
	}
	e.volumes[id] = vol

	return &ec2.CreateVolumeOutput{
		VolumeId:         vol.VolumeId,
		AvailabilityZone: vol.AvailabilityZone,
		Size:             vol.Size,
		VolumeType:       vol.VolumeType,
		State:            vol.State,
		Tags:             vol.Tags,
	}, nil
}

func (e *EC2Server) DescribeVolumes(
	ctx context.Context,
	input *ec2.DescribeVolumesInput,
	opts ...func(*ec2.Options),
) (*ec2.DescribeVolumesOutput, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.record("DescribeVolumes"); err != nil {
		return nil, err
	}
	e.describeVolumeNo++

	var found []types.Volume
	for _, id := range input.VolumeIds {
		vol, ok := e.volumes[id]
		if !ok {
			return nil, apiError("InvalidVolume.NotFound", fmt.Sprintf("volume %s not found", id))
		}
		switch {
		case e.volumeState != "":
			vol.State = e.volumeState
		case vol.State == types.VolumeStateCreating && e.describeVolumeNo > e.creatingPolls:
			vol.State = types.VolumeStateAvailable
		}
		found = append(found, *vol)
	}

	return &ec2.DescribeVolumesOutput{Volumes: found}, nil
}

func (e *EC2Server) AttachVolume(
	ctx context.Context,
	input *ec2.AttachVolumeInput,
	opts ...func(*ec2.Options),
) (*ec2.AttachVolumeOutput, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.record("AttachVolume"); err != nil {
		return nil, err
	}
	e.AttachVolumeInput = input

	volumeID := aws.ToString(input.VolumeId)
	instanceID := aws.ToString(input.InstanceId)
	vol, ok := e.volumes[volumeID]
	if !ok {
		return nil, apiError("InvalidVolume.NotFound", fmt.Sprintf("volume %s not found", volumeID))
	}
	inst, ok := e.instances[instanceID]
	if !ok {
		return nil, apiError("InvalidInstanceID.NotFound", fmt.Sprintf("instance %s not found", instanceID))
	}
	if vol.State != types.VolumeStateAvailable {
		return nil, apiError("IncorrectState", fmt.Sprintf("volume %s is %s", volumeID, vol.State))
	}
	if inst.State == nil || inst.State.Name != types.InstanceStateNameRunning {
		return nil, apiError("IncorrectInstanceState", fmt.Sprintf("instance %s is not running", instanceID))
	}

	vol.State = types.VolumeStateInUse
	e.attached[volumeID] = instanceID

	return &ec2.AttachVolumeOutput{
		Device:     input.Device,
		InstanceId: input.InstanceId,
		VolumeId:   input.VolumeId,
		State:      types.VolumeAttachmentStateAttaching,
	}, nil
}

func apiError(code, message string) error {
	return &smithy.GenericAPIError{Code: code, Message: message}
}
