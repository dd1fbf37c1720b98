package provisionerrors

import "fmt"

type ErrReadAccountList struct {
	Err error
}

func (errReadAccountList ErrReadAccountList) Error() string {
	return fmt.Sprintf("Unable to read account list. Error: %v", errReadAccountList.Err)
}

func (errReadAccountList ErrReadAccountList) Unwrap() error {
	return errReadAccountList.Err
}

type ErrCreateDirectory struct {
	Path string
	Err  error
}

func (errCreateDirectory ErrCreateDirectory) Error() string {
	return fmt.Sprintf("Unable to create directory %s. Error: %v", errCreateDirectory.Path, errCreateDirectory.Err)
}

func (errCreateDirectory ErrCreateDirectory) Unwrap() error {
	return errCreateDirectory.Err
}

type ErrLookupAccount struct {
	Account string
	Err     error
}

func (errLookupAccount ErrLookupAccount) Error() string {
	return fmt.Sprintf("Unable to resolve account %s. Error: %v", errLookupAccount.Account, errLookupAccount.Err)
}

func (errLookupAccount ErrLookupAccount) Unwrap() error {
	return errLookupAccount.Err
}

type ErrGrantAccess struct {
	Path string
	Err  error
}

func (errGrantAccess ErrGrantAccess) Error() string {
	return fmt.Sprintf("Unable to grant access on %s. Error: %v", errGrantAccess.Path, errGrantAccess.Err)
}

func (errGrantAccess ErrGrantAccess) Unwrap() error {
	return errGrantAccess.Err
}

type ErrUnsupportedPlatform struct {
	OS string
}

func (errUnsupportedPlatform ErrUnsupportedPlatform) Error() string {
	return fmt.Sprintf("permission grants are not supported on %s", errUnsupportedPlatform.OS)
}

type ErrAccountsFailed struct {
	Err error
}

func (errAccountsFailed ErrAccountsFailed) Error() string {
	return fmt.Sprintf("One or more accounts failed. Error: %v", errAccountsFailed.Err)
}

func (errAccountsFailed ErrAccountsFailed) Unwrap() error {
	return errAccountsFailed.Err
}
