package deploy

import (
	"fmt"
	"path"

	"github.com/nspcc-dev/neo-go/cli/smartcontract"
	"github.com/nspcc-dev/neo-go/pkg/compiler"
	"github.com/nspcc-dev/neo-go/pkg/config"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
)

// CompileContract compiles the contract from the source directory along with
// its 'config.yml' and returns deployment parameters for it.
func CompileContract(ctrPath string) (CommonDeployPrm, error) {
	var prm CommonDeployPrm

	// nef.NewFile() cares about version a lot.
	config.Version = "0.102.0"

	ne, di, err := compiler.CompileWithOptions(ctrPath, nil, &compiler.Options{NoEventsCheck: true})
	if err != nil {
		return prm, fmt.Errorf("compile '%s': %w", ctrPath, err)
	}

	conf, err := smartcontract.ParseContractConfig(path.Join(ctrPath, "config.yml"))
	if err != nil {
		return prm, fmt.Errorf("parse contract config of '%s': %w", ctrPath, err)
	}

	o := &compiler.Options{}
	o.Name = conf.Name
	o.ContractEvents = conf.Events
	o.ContractSupportedStandards = conf.SupportedStandards
	o.Permissions = make([]manifest.Permission, len(conf.Permissions))
	for i := range conf.Permissions {
		o.Permissions[i] = manifest.Permission(conf.Permissions[i])
	}
	o.SafeMethods = conf.SafeMethods

	m, err := compiler.CreateManifest(di, o)
	if err != nil {
		return prm, fmt.Errorf("create manifest of '%s': %w", ctrPath, err)
	}

	prm.NEF = *ne
	prm.Manifest = *m

	return prm, nil
}
