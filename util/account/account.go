package account

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

type Account struct {
	signer  Signer
	address common.Address
}

func NewAccount(signer Signer, address common.Address) *Account {
	return &Account{signer: signer, address: address}
}

func NewPrivateKeyAccount(key *ecdsa.PrivateKey) *Account {
	return &Account{
		NewKeySigner(key),
		crypto.PubkeyToAddress(key.PublicKey),
	}
}

func NewKeystoreAccount(file string, password string) (*Account, error) {
	_, key, err := PrivateKeyFromKeystore(file, password)
	if err != nil {
		return nil, err
	}
	return NewPrivateKeyAccount(key), nil
}

func NewHexKeyAccount(hex string) (*Account, error) {
	_, key, err := PrivateKeyFromHex(hex)
	if err != nil {
		return nil, err
	}
	return NewPrivateKeyAccount(key), nil
}

func (a *Account) Address() common.Address {
	return a.address
}

func (a *Account) AddressHex() string {
	return a.address.Hex()
}

func (a *Account) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	signedTx, err := a.signer.SignTx(tx, chainID)
	if err != nil {
		return tx, fmt.Errorf("couldn't sign the tx: %w", err)
	}
	return signedTx, nil
}
