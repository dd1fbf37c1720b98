package folders

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/tyler-technologies/go-provision/internal/models"
	"github.com/tyler-technologies/go-provision/internal/provisionerrors"
)

// Report is the outcome of one folder provisioning run.
type Report struct {
	Results []models.AccountResult
	errs    *multierror.Error
}

func (r *Report) add(res models.AccountResult) {
	r.Results = append(r.Results, res)
	if res.Err != nil {
		r.errs = multierror.Append(r.errs, fmt.Errorf("%s: %w", res.Account, res.Err))
	}
}

func (r *Report) Created() int {
	return r.count(func(res models.AccountResult) bool { return res.Created })
}

func (r *Report) WouldCreate() int {
	return r.count(func(res models.AccountResult) bool { return res.WouldCreate })
}

func (r *Report) Existing() int {
	return r.count(func(res models.AccountResult) bool { return res.Existed })
}

func (r *Report) Granted() int {
	return r.count(func(res models.AccountResult) bool { return res.Granted })
}

func (r *Report) Failed() int {
	return r.count(func(res models.AccountResult) bool { return res.Err != nil })
}

// ErrorOrNil returns every per account failure, or nil when all succeeded.
func (r *Report) ErrorOrNil() error {
	if err := r.errs.ErrorOrNil(); err != nil {
		return provisionerrors.ErrAccountsFailed{Err: err}
	}
	return nil
}

func (r *Report) count(f func(models.AccountResult) bool) int {
	n := 0
	for _, res := range r.Results {
		if f(res) {
			n++
		}
	}
	return n
}
