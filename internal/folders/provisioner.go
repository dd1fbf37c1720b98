package folders

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/tyler-technologies/go-provision/internal/logging"
	"github.com/tyler-technologies/go-provision/internal/models"
	"github.com/tyler-technologies/go-provision/internal/provisionerrors"
)

// DirPermDefault is the mode new account directories are created with,
// before any ACL is applied.
const DirPermDefault = 0755

// Provisioner creates one directory per account under BasePath and grants
// the account full control over it.
type Provisioner struct {
	BasePath string
	Granter  Granter
	Status   *logging.Status
	// DryRun reports what would happen without touching the filesystem.
	DryRun bool
}

// Provision processes accounts in order. A failure on one account is logged
// and recorded, and processing moves on to the next.
func (p *Provisioner) Provision(accounts []string) *Report {
	if p.Status == nil {
		p.Status = logging.NewStatus(nil)
	}
	report := &Report{}
	for _, account := range accounts {
		report.add(p.provisionAccount(account))
	}
	logrus.WithFields(logrus.Fields{
		"created":      report.Created(),
		"would_create": report.WouldCreate(),
		"existing":     report.Existing(),
		"granted":      report.Granted(),
		"failed":       report.Failed(),
		"dry_run":      p.DryRun,
	}).Info("Folder provisioning completed")
	if p.DryRun {
		p.Status.Info("completed (dry run): %d would create, %d already present, %d failed",
			report.WouldCreate(), report.Existing(), report.Failed())
		return report
	}
	p.Status.Info("completed: %d created, %d already present, %d granted, %d failed",
		report.Created(), report.Existing(), report.Granted(), report.Failed())
	return report
}

func (p *Provisioner) provisionAccount(account string) models.AccountResult {
	target := filepath.Join(p.BasePath, account)
	res := models.AccountResult{Account: account, Path: target}
	log := logrus.WithFields(logrus.Fields{"account": account, "path": target})

	fail := func(err error) models.AccountResult {
		res.Err = err
		log.Errorf("Account processing failed: %v", err)
		p.Status.Failure("%s: error: %v", account, err)
		return res
	}

	_, err := os.Stat(target)
	switch {
	case err == nil:
		res.Existed = true
		log.Debug("Directory already exists")
		p.Status.Notice("%s: %s already exists", account, target)
	case os.IsNotExist(err):
		if p.DryRun {
			res.WouldCreate = true
			p.Status.Info("%s: would create %s", account, target)
			break
		}
		if err := os.MkdirAll(target, DirPermDefault); err != nil {
			return fail(provisionerrors.ErrCreateDirectory{Path: target, Err: err})
		}
		res.Created = true
		log.Info("Directory created")
		p.Status.Success("%s: created %s", account, target)
	default:
		return fail(provisionerrors.ErrCreateDirectory{Path: target, Err: err})
	}

	if p.DryRun {
		p.Status.Info("%s: would grant full control on %s", account, target)
		return res
	}

	if err := p.Granter.Grant(target, account); err != nil {
		return fail(provisionerrors.ErrGrantAccess{Path: target, Err: err})
	}
	res.Granted = true
	log.Info("Full control granted")
	p.Status.Success("%s: granted full control on %s", account, target)
	return res
}
