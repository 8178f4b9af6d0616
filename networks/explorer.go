package networks

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

var ErrNoBlockExplorer = errors.New("network has no block explorer")

// EtherscanLikeExplorer talks to an etherscan compatible API.
type EtherscanLikeExplorer struct {
	Domain string
	APIKey string

	client *resty.Client
}

func NewEtherscanLikeExplorer(domain, apiKey string) *EtherscanLikeExplorer {
	return &EtherscanLikeExplorer{
		Domain: domain,
		APIKey: apiKey,
		client: resty.New().SetTimeout(10 * time.Second),
	}
}

type abiResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  string `json:"result"`
}

// GetABIString returns the verified ABI json of the contract at address.
func (ee *EtherscanLikeExplorer) GetABIString(address string) (string, error) {
	if ee == nil || ee.Domain == "" {
		return "", ErrNoBlockExplorer
	}
	res := abiResponse{}
	resp, err := ee.client.R().
		SetQueryParams(map[string]string{
			"module":  "contract",
			"action":  "getabi",
			"address": address,
			"apikey":  ee.APIKey,
		}).
		SetResult(&res).
		Get(ee.Domain + "/api")
	if err != nil {
		return "", fmt.Errorf("getabi %s from %s: %w", address, ee.Domain, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("getabi %s from %s: http %d", address, ee.Domain, resp.StatusCode())
	}
	if res.Status != "1" {
		return "", fmt.Errorf("getabi %s from %s: %s", address, ee.Domain, res.Message)
	}
	return res.Result, nil
}
