package broadcaster

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/sirupsen/logrus"

	gelatocommon "github.com/CryptYlliON/gelato-network/common"
)

const TIMEOUT = 4 * time.Second

// Broadcaster takes a signed tx and sends it to every node it manages in
// parallel. The tx counts as broadcasted when at least one node accepted it.
type Broadcaster struct {
	clients map[string]*rpc.Client
}

func NewGenericBroadcaster(nodes map[string]string) *Broadcaster {
	clients := map[string]*rpc.Client{}
	for name, url := range nodes {
		client, err := rpc.Dial(url)
		if err != nil {
			logrus.WithField("node", name).WithError(err).Warn("couldn't connect to node")
			continue
		}
		clients[name] = client
	}
	return &Broadcaster{clients: clients}
}

func (b *Broadcaster) GetNodes() map[string]*rpc.Client {
	return b.clients
}

func (b *Broadcaster) BroadcastTx(ctx context.Context, tx *types.Transaction) (string, bool, error) {
	data, err := tx.MarshalBinary()
	if err != nil {
		return "", false, fmt.Errorf("tx is not valid, couldn't encode it: %w", err)
	}
	return b.Broadcast(ctx, hexutil.Encode(data))
}

// Broadcast sends data, the hex encoded signed tx, and returns its hash.
func (b *Broadcaster) Broadcast(ctx context.Context, data string) (string, bool, error) {
	hash := gelatocommon.RawTxToHash(data)
	if len(b.clients) == 0 {
		return hash, false, fmt.Errorf("no node to broadcast to")
	}
	timeout, cancel := context.WithTimeout(ctx, TIMEOUT)
	defer cancel()

	tasks := []func() error{}
	for name, client := range b.clients {
		name, client := name, client
		tasks = append(tasks, func() error {
			if err := client.CallContext(timeout, nil, "eth_sendRawTransaction", data); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			return nil
		})
	}
	err, numErrs := gelatocommon.RunParallel(tasks...)
	if numErrs == len(tasks) {
		return hash, false, err
	}
	if err != nil {
		logrus.WithField("tx", hash).WithError(err).Debug("some nodes rejected the tx")
	}
	return hash, true, nil
}
