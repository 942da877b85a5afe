package contractshim

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	bip32 "github.com/tyler-smith/go-bip32"
)

// DeriveDevAdminKey deterministically derives a secp256k1 admin keypair
// from a fixed seed and an account index, the same way a local dev
// environment provisions throwaway signer keys without touching a real
// wallet. It must never be used for anything but local test fixtures.
func DeriveDevAdminKey(seed []byte, accountIndex uint32) (*secp256k1.PrivateKey, error) {
	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("derive master key: %w", err)
	}
	child, err := master.NewChildKey(accountIndex)
	if err != nil {
		return nil, fmt.Errorf("derive child key %d: %w", accountIndex, err)
	}
	priv := secp256k1.PrivKeyFromBytes(child.Key)
	return priv, nil
}
