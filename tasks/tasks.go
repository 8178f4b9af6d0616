// Package tasks holds the gelato task bodies. Every task is described by a
// Descriptor naming the configuration it reads, so the integrity check can
// verify each network's tables against what the tasks need.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/sirupsen/logrus"

	"github.com/CryptYlliON/gelato-network/contracts"
	"github.com/CryptYlliON/gelato-network/deployments"
	"github.com/CryptYlliON/gelato-network/tx"
	"github.com/CryptYlliON/gelato-network/ui"
	"github.com/CryptYlliON/gelato-network/util/account"
	"github.com/CryptYlliON/gelato-network/util/addrbook"
)

var ErrTaskNotFound = errors.New("task not found")

type Descriptor struct {
	Name        string
	Description string
	// Contracts every network must list for the task to run there.
	Contracts []string
	// AddressKeys every network's address book must hold.
	AddressKeys []addrbook.Key
}

var AvailableTaskDescriptors = []*Descriptor{
	MultiProvideDescriptor,
	AbiEncodeDescriptor,
	EventsDescriptor,
	BreConfigDescriptor,
}

// Descriptors returns every registered task, default payload tasks
// included, sorted by name.
func Descriptors() []*Descriptor {
	result := append([]*Descriptor{}, AvailableTaskDescriptors...)
	for _, p := range defaultPayloads {
		result = append(result, p.Descriptor)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

func GetDescriptor(name string) (*Descriptor, error) {
	for _, d := range Descriptors() {
		if d.Name == name {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, name)
}

type Submitter interface {
	Submit(ctx context.Context, req tx.Request) (*tx.Result, error)
}

type LogReader interface {
	LogsByBlockHash(ctx context.Context, blockHash common.Hash, addresses []common.Address) ([]types.Log, error)
}

// Env is what a task body may touch. Chain access is optional so that
// offline tasks run without nodes.
type Env struct {
	Deployment *deployments.Deployment
	ABIs       *contracts.Store
	UI         ui.UI
	Logger     logrus.FieldLogger

	Submitter Submitter
	Logs      LogReader
	// Signers returns the accounts derived from the configured mnemonic.
	Signers func() ([]*account.Account, error)
}

func (e *Env) logger() logrus.FieldLogger {
	if e.Logger == nil {
		return logrus.StandardLogger()
	}
	return e.Logger
}

func (e *Env) instantiate(name, address string) (*contracts.Contract, error) {
	return contracts.Instantiate(e.Deployment, e.ABIs, name, address)
}
