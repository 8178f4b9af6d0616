package account

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip39"
)

var (
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
	ErrSignerNotFound  = errors.New("signer not found")
)

// DeriveAccount returns the account at basePath/index of mnemonic, the
// same account ethers derives for a buidler network configured with that
// mnemonic.
func DeriveAccount(mnemonic, basePath string, index uint32) (*Account, error) {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}
	path, err := accounts.ParseDerivationPath(fmt.Sprintf("%s/%d", strings.TrimSuffix(basePath, "/"), index))
	if err != nil {
		return nil, fmt.Errorf("invalid derivation path %s: %w", basePath, err)
	}

	key, err := hdkeychain.NewMaster(bip39.NewSeed(mnemonic, ""), &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("couldn't create master key: %w", err)
	}
	for _, n := range path {
		// Derive zero pads parent keys shorter than 32 bytes
		key, err = key.Derive(n)
		if err != nil {
			return nil, fmt.Errorf("couldn't derive %s: %w", path, err)
		}
	}
	btcecKey, err := key.ECPrivKey()
	if err != nil {
		return nil, err
	}
	privkey, err := crypto.ToECDSA(btcecKey.Serialize())
	if err != nil {
		return nil, err
	}
	return NewPrivateKeyAccount(privkey), nil
}

// Signers derives the first n accounts of mnemonic.
func Signers(mnemonic, basePath string, n int) ([]*Account, error) {
	res := make([]*Account, 0, n)
	for i := 0; i < n; i++ {
		acc, err := DeriveAccount(mnemonic, basePath, uint32(i))
		if err != nil {
			return nil, err
		}
		res = append(res, acc)
	}
	return res, nil
}

// SignerAt picks signers[index] and fails the way a missing buidler signer
// does: with ErrSignerNotFound.
func SignerAt(signers []*Account, index int) (*Account, error) {
	if index < 0 || index >= len(signers) || signers[index] == nil {
		return nil, fmt.Errorf("index %d of %d signers: %w", index, len(signers), ErrSignerNotFound)
	}
	return signers[index], nil
}
