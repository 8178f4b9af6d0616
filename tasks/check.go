package tasks

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/CryptYlliON/gelato-network/deployments"
)

const CheckTaskName = "check"

// CheckNetwork verifies that network's tables hold every contract and
// address book key the registered tasks read. All violations are
// reported together.
func CheckNetwork(network, dataDir string) error {
	d, err := deployments.Load(network, dataDir)
	if err != nil {
		return err
	}
	return CheckDeployment(d, Descriptors())
}

func CheckDeployment(d *deployments.Deployment, descriptors []*Descriptor) error {
	var result *multierror.Error
	book := d.AddressBook()
	for _, desc := range descriptors {
		for _, name := range desc.Contracts {
			if !d.HasContract(name) {
				result = multierror.Append(result, fmt.Errorf("%s: task %s uses contract %s: %w", d.Network(), desc.Name, name, deployments.ErrContractNotListed))
			}
		}
		for _, key := range desc.AddressKeys {
			if _, err := book.LookupKey(key); err != nil {
				result = multierror.Append(result, fmt.Errorf("task %s: %w", desc.Name, err))
			}
		}
	}
	return result.ErrorOrNil()
}

// CheckAll runs CheckNetwork for every network and returns the per
// network outcome.
func CheckAll(networks []string, dataDir string) map[string]error {
	results := make(map[string]error, len(networks))
	for _, n := range networks {
		results[n] = CheckNetwork(n, dataDir)
	}
	return results
}
