package api

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/suite"
	"github.com/tyler-technologies/go-provision/internal/config"
	"github.com/tyler-technologies/go-provision/internal/logging"
	"github.com/tyler-technologies/go-provision/internal/models"
	"github.com/tyler-technologies/go-provision/internal/provisionerrors"
	"github.com/tyler-technologies/go-provision/internal/testutil"
)

type InstanceTestSuite struct {
	suite.Suite
	srv    *testutil.EC2Server
	out    *bytes.Buffer
	status *logging.Status
}

func fastOptions(timeout time.Duration) Options {
	return Options{
		RunningTimeout: timeout,
		PollInterval:   time.Millisecond,
		RunningWaiterOptions: []func(*ec2.InstanceRunningWaiterOptions){
			func(o *ec2.InstanceRunningWaiterOptions) {
				o.MinDelay = time.Millisecond
				o.MaxDelay = 5 * time.Millisecond
			},
		},
	}
}

func (s *InstanceTestSuite) SetupSuite() {
	config.InitConfig("")
	logging.InitLogger()
}

func (s *InstanceTestSuite) SetupTest() {
	s.srv = testutil.NewEC2Server()
	s.out = new(bytes.Buffer)
	s.status = logging.NewStatus(s.out)
}

func (s *InstanceTestSuite) provision(req models.InstanceRequest, opts Options) (*models.InstanceSummary, error) {
	return ProvisionInstance(context.Background(), s.srv, req, opts, s.status)
}

func (s *InstanceTestSuite) TestProvisionInstance() {
	summary, err := s.provision(testutil.NewInstanceRequest(), fastOptions(time.Second))
	s.Require().NoError(err)
	s.Require().NotNil(summary)

	s.Len(s.srv.Instances(), 1, "exactly one instance should be created")
	s.Len(s.srv.Volumes(), 1, "exactly one volume should be created")
	s.Equal(1, s.srv.CallCount("RunInstances"))
	s.Equal(1, s.srv.CallCount("CreateVolume"))
	s.Equal(1, s.srv.CallCount("AttachVolume"))

	run := s.srv.RunInstancesInput
	s.Equal(int32(1), aws.ToInt32(run.MinCount))
	s.Equal(int32(1), aws.ToInt32(run.MaxCount))
	s.Equal(testutil.DefaultImageID, aws.ToString(run.ImageId))
	s.Equal(testutil.DefaultKeyName, aws.ToString(run.KeyName))
	s.Equal(testutil.DefaultSubnetID, aws.ToString(run.SubnetId))
	s.Equal(testutil.DefaultSecurityGroups, run.SecurityGroupIds)
	s.NotEmpty(aws.ToString(run.ClientToken))

	s.Equal(testutil.DefaultZone, aws.ToString(s.srv.CreateVolumeInput.AvailabilityZone), "volume should be created in the instance zone")
	s.Equal(testutil.DefaultVolumeSize, aws.ToInt32(s.srv.CreateVolumeInput.Size))

	s.Equal(summary.InstanceID, aws.ToString(s.srv.AttachVolumeInput.InstanceId))
	s.Equal(DeviceName, aws.ToString(s.srv.AttachVolumeInput.Device))
	attachedTo, ok := s.srv.AttachedTo(summary.VolumeID)
	s.True(ok)
	s.Equal(summary.InstanceID, attachedTo)

	s.Equal(testutil.DefaultZone, summary.AvailabilityZone)
	s.NotEmpty(summary.PrivateIP)
	s.NotEmpty(summary.PublicIP)
	s.Equal(DeviceName, summary.Device)
	s.Contains(s.out.String(), "Provisioning complete")
	s.Contains(s.out.String(), summary.VolumeID)
}

func (s *InstanceTestSuite) TestTagsAppliedToBothResources() {
	summary, err := s.provision(testutil.NewInstanceRequest(), fastOptions(time.Second))
	s.Require().NoError(err)

	instanceTags := TagMap(s.srv.Instances()[0].Tags)
	volumeTags := TagMap(s.srv.Volumes()[0].Tags)

	s.Equal("billing-dev", instanceTags[TagName])
	s.Equal("billing-dev-data", volumeTags[TagName])
	for _, k := range []string{TagSystem, TagOwner, TagEnvironment, TagBillable} {
		s.Equal(instanceTags[k], volumeTags[k], "tag %s should match on both resources", k)
	}
	s.Equal("dev", instanceTags[TagEnvironment])
	s.Equal(instanceTags, summary.InstanceTags)
	s.Equal(volumeTags, summary.VolumeTags)
}

func (s *InstanceTestSuite) TestAttachAfterRunningAndAvailable() {
	s.srv.SetPendingDescribes(2)
	s.srv.SetCreatingPolls(3)

	_, err := s.provision(testutil.NewInstanceRequest(), fastOptions(time.Second))
	s.Require().NoError(err)

	s.Equal(3, s.srv.CallCount("DescribeInstances"), "should poll until the instance is running")
	s.Equal(4, s.srv.CallCount("DescribeVolumes"), "should poll until the volume is available")

	calls := s.srv.Calls()
	s.Equal("AttachVolume", calls[len(calls)-1], "attach should be the last call")
	s.Equal("DescribeVolumes", calls[len(calls)-2], "attach should follow the available poll")
	createAt := indexOf(calls, "CreateVolume")
	lastDescribeInstances := lastIndexOf(calls, "DescribeInstances")
	s.Greater(createAt, lastDescribeInstances, "volume should only be created once the instance runs")
}

func (s *InstanceTestSuite) TestEnvironments() {
	for _, env := range []string{"dev", "test", "staging", "prod", "qa"} {
		s.srv.Reset()
		req := testutil.NewInstanceRequest()
		req.Tags.Environment = env

		summary, err := s.provision(req, fastOptions(time.Second))
		s.NoError(err, "environment %s should be accepted", env)
		s.Equal("billing-"+env, summary.InstanceTags[TagName])
		s.Equal("billing-"+env+"-data", summary.VolumeTags[TagName])
	}
}

func (s *InstanceTestSuite) TestInvalidRequest() {
	cases := []struct {
		mutate     func(*models.InstanceRequest)
		contains   string
		errMessage string
	}{
		{
			mutate:     func(r *models.InstanceRequest) { r.Tags.Environment = "uat" },
			contains:   "must be one of [dev test staging prod qa]",
			errMessage: "unknown environment should be rejected",
		},
		{
			mutate:     func(r *models.InstanceRequest) { r.Tags.Environment = "Dev" },
			contains:   "Environment",
			errMessage: "environment match should be exact",
		},
		{
			mutate:     func(r *models.InstanceRequest) { r.ImageID = "" },
			contains:   "ImageID is required",
			errMessage: "missing image id should be rejected",
		},
		{
			mutate:     func(r *models.InstanceRequest) { r.KeyName = "" },
			contains:   "KeyName is required",
			errMessage: "missing key name should be rejected",
		},
		{
			mutate:     func(r *models.InstanceRequest) { r.SubnetID = "" },
			contains:   "SubnetID is required",
			errMessage: "missing subnet should be rejected",
		},
		{
			mutate:     func(r *models.InstanceRequest) { r.SecurityGroupIDs = nil },
			contains:   "SecurityGroupIDs",
			errMessage: "missing security groups should be rejected",
		},
		{
			mutate:     func(r *models.InstanceRequest) { r.SecurityGroupIDs = []string{""} },
			contains:   "SecurityGroupIDs",
			errMessage: "blank security group should be rejected",
		},
		{
			mutate:     func(r *models.InstanceRequest) { r.VolumeSizeGiB = 0 },
			contains:   "VolumeSizeGiB must be greater than 0",
			errMessage: "zero volume size should be rejected",
		},
		{
			mutate:     func(r *models.InstanceRequest) { r.Tags.Owner = "" },
			contains:   "Owner is required",
			errMessage: "missing owner tag should be rejected",
		},
		{
			mutate:     func(r *models.InstanceRequest) { r.Tags.Billable = "" },
			contains:   "Billable is required",
			errMessage: "missing billable tag should be rejected",
		},
	}

	for _, c := range cases {
		s.srv.Reset()
		req := testutil.NewInstanceRequest()
		c.mutate(&req)

		summary, err := s.provision(req, fastOptions(time.Second))
		s.Nil(summary, c.errMessage)
		var invalid provisionerrors.ErrInvalidInstanceRequest
		s.True(errors.As(err, &invalid), c.errMessage)
		s.Contains(err.Error(), c.contains, c.errMessage)
		s.Empty(s.srv.Calls(), "no API call should be made: %s", c.errMessage)
	}
}

func (s *InstanceTestSuite) TestRunningTimeout() {
	s.srv.SetPendingDescribes(-1)

	summary, err := s.provision(testutil.NewInstanceRequest(), fastOptions(50*time.Millisecond))
	s.Nil(summary)
	var notRunning provisionerrors.ErrInstanceNotRunning
	s.Require().True(errors.As(err, &notRunning))
	s.Equal(aws.ToString(s.srv.Instances()[0].InstanceId), notRunning.InstanceID)
	s.Equal(0, s.srv.CallCount("CreateVolume"), "no volume should be created after a timeout")
	s.Len(s.srv.Instances(), 1, "the instance is left in place")
}

func (s *InstanceTestSuite) TestFailures() {
	cases := []struct {
		operation         string
		code              string
		errValidationFunc func(error) bool
		expectedCalls     []string
		errMessage        string
	}{
		{
			operation: "RunInstances",
			code:      "UnauthorizedOperation",
			errValidationFunc: func(err error) bool {
				var e provisionerrors.ErrRunInstance
				return errors.As(err, &e)
			},
			expectedCalls: []string{"RunInstances"},
			errMessage:    "run instances failure should stop the sequence",
		},
		{
			operation: "CreateVolume",
			code:      "VolumeLimitExceeded",
			errValidationFunc: func(err error) bool {
				var e provisionerrors.ErrCreateVolume
				return errors.As(err, &e)
			},
			expectedCalls: []string{"RunInstances", "DescribeInstances", "CreateVolume"},
			errMessage:    "create volume failure should leave the instance running",
		},
		{
			operation: "DescribeVolumes",
			code:      "RequestLimitExceeded",
			errValidationFunc: func(err error) bool {
				var e provisionerrors.ErrVolumeNotAvailable
				return errors.As(err, &e)
			},
			expectedCalls: []string{"RunInstances", "DescribeInstances", "CreateVolume", "DescribeVolumes"},
			errMessage:    "describe volumes failure should not be retried",
		},
		{
			operation: "AttachVolume",
			code:      "InvalidParameterValue",
			errValidationFunc: func(err error) bool {
				var e provisionerrors.ErrAttachVolume
				return errors.As(err, &e)
			},
			expectedCalls: []string{"RunInstances", "DescribeInstances", "CreateVolume", "DescribeVolumes", "AttachVolume"},
			errMessage:    "attach failure should not be retried",
		},
	}

	for _, c := range cases {
		s.srv.Reset()
		s.srv.FailOn(c.operation, c.code)

		summary, err := s.provision(testutil.NewInstanceRequest(), fastOptions(time.Second))
		s.Nil(summary, c.errMessage)
		s.True(c.errValidationFunc(err), c.errMessage)

		var apiErr smithy.APIError
		s.True(errors.As(err, &apiErr), c.errMessage)
		s.Equal(c.code, apiErr.ErrorCode(), c.errMessage)
		s.Equal(c.expectedCalls, s.srv.Calls(), c.errMessage)
		s.Contains(s.out.String(), "error: ", c.errMessage)
	}
}

func (s *InstanceTestSuite) TestVolumeWaitStopsWithContext() {
	s.srv.SetCreatingPolls(1 << 30)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	summary, err := ProvisionInstance(ctx, s.srv, testutil.NewInstanceRequest(), fastOptions(time.Second), s.status)
	s.Nil(summary)
	var notAvailable provisionerrors.ErrVolumeNotAvailable
	s.True(errors.As(err, &notAvailable))
	s.True(errors.Is(err, context.DeadlineExceeded))
	s.Equal(0, s.srv.CallCount("AttachVolume"))
	s.Greater(s.srv.CallCount("DescribeVolumes"), 1)
}

func (s *InstanceTestSuite) TestVolumeErrorStateEndsWait() {
	s.srv.SetVolumeState(types.VolumeStateError)

	summary, err := s.provision(testutil.NewInstanceRequest(), fastOptions(time.Second))
	s.Nil(summary)
	var notAvailable provisionerrors.ErrVolumeNotAvailable
	s.Require().True(errors.As(err, &notAvailable))
	s.Equal(aws.ToString(s.srv.Volumes()[0].VolumeId), notAvailable.VolumeID)
	s.Contains(err.Error(), "error")
	s.Equal(1, s.srv.CallCount("DescribeVolumes"), "a volume in the error state is not polled again")
	s.Equal(0, s.srv.CallCount("AttachVolume"))
	s.Len(s.srv.Instances(), 1, "the instance is left in place")
	s.Contains(s.out.String(), "error: ")
}

func (s *InstanceTestSuite) TestOptionsDefaults() {
	o := Options{}.withDefaults()
	s.Equal(config.DefaultInstanceRunningTimeout, o.RunningTimeout)
	s.Equal(config.DefaultVolumePollInterval, o.PollInterval)

	o = Options{RunningTimeout: time.Minute, PollInterval: time.Second}.withDefaults()
	s.Equal(time.Minute, o.RunningTimeout)
	s.Equal(time.Second, o.PollInterval)
}

func indexOf(calls []string, op string) int {
	for i, c := range calls {
		if c == op {
			return i
		}
	}
	return -1
}

func lastIndexOf(calls []string, op string) int {
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i] == op {
			return i
		}
	}
	return -1
}
