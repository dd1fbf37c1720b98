package provisionerrors

import "fmt"

type ErrInvalidInstanceRequest struct {
	Err error
}

func (errInvalidInstanceRequest ErrInvalidInstanceRequest) Error() string {
	return fmt.Sprintf("Invalid instance request. Error: %v", errInvalidInstanceRequest.Err)
}

func (errInvalidInstanceRequest ErrInvalidInstanceRequest) Unwrap() error {
	return errInvalidInstanceRequest.Err
}

type ErrLoadAWSConfig struct {
	Err error
}

func (errLoadAWSConfig ErrLoadAWSConfig) Error() string {
	return fmt.Sprintf("Unable to load AWS configuration. Error: %v", errLoadAWSConfig.Err)
}

func (errLoadAWSConfig ErrLoadAWSConfig) Unwrap() error {
	return errLoadAWSConfig.Err
}

type ErrRunInstance struct {
	Err error
}

func (errRunInstance ErrRunInstance) Error() string {
	return fmt.Sprintf("Unable to run instance. Error: %v", errRunInstance.Err)
}

func (errRunInstance ErrRunInstance) Unwrap() error {
	return errRunInstance.Err
}

type ErrInstanceNotRunning struct {
	InstanceID string
	Err        error
}

func (errInstanceNotRunning ErrInstanceNotRunning) Error() string {
	return fmt.Sprintf("Instance %s did not reach running state. Error: %v", errInstanceNotRunning.InstanceID, errInstanceNotRunning.Err)
}

func (errInstanceNotRunning ErrInstanceNotRunning) Unwrap() error {
	return errInstanceNotRunning.Err
}

type ErrCreateVolume struct {
	Err error
}

func (errCreateVolume ErrCreateVolume) Error() string {
	return fmt.Sprintf("Unable to create volume. Error: %v", errCreateVolume.Err)
}

func (errCreateVolume ErrCreateVolume) Unwrap() error {
	return errCreateVolume.Err
}

type ErrVolumeNotAvailable struct {
	VolumeID string
	Err      error
}

func (errVolumeNotAvailable ErrVolumeNotAvailable) Error() string {
	return fmt.Sprintf("Volume %s did not become available. Error: %v", errVolumeNotAvailable.VolumeID, errVolumeNotAvailable.Err)
}

func (errVolumeNotAvailable ErrVolumeNotAvailable) Unwrap() error {
	return errVolumeNotAvailable.Err
}

type ErrAttachVolume struct {
	VolumeID   string
	InstanceID string
	Err        error
}

func (errAttachVolume ErrAttachVolume) Error() string {
	return fmt.Sprintf("Unable to attach volume %s to instance %s. Error: %v", errAttachVolume.VolumeID, errAttachVolume.InstanceID, errAttachVolume.Err)
}

func (errAttachVolume ErrAttachVolume) Unwrap() error {
	return errAttachVolume.Err
}
