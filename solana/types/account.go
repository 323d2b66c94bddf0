package types

import (
	"fmt"
)

// Account account type
type Account struct {
	PrivateKey PrivateKey
}

// NewAccount new account
func NewAccount() *Account {
	_, privateKey, err := NewRandomPrivateKey()
	if err != nil {
		panic(fmt.Sprintf("failed to generate private key: %s", err))
	}
	return &Account{
		PrivateKey: privateKey,
	}
}

// AccountFromPrivateKeyBase58 account from private key base58
func AccountFromPrivateKeyBase58(privateKey string) (*Account, error) {
	k, err := PrivateKeyFromBase58(privateKey)
	if err != nil {
		return nil, fmt.Errorf("account from private key: private key from b58: %w", err)
	}
	return &Account{
		PrivateKey: k,
	}, nil
}

// AccountFromSeed derive account from a 32 byte seed
func AccountFromSeed(seed []byte) (*Account, error) {
	k, err := PrivateKeyFromSeed(seed)
	if err != nil {
		return nil, fmt.Errorf("account from seed: %w", err)
	}
	return &Account{
		PrivateKey: k,
	}, nil
}

// AccountFromKeygenFile account from solana keygen file
func AccountFromKeygenFile(file string) (*Account, error) {
	k, err := PrivateKeyFromSolanaKeygenFile(file)
	if err != nil {
		return nil, err
	}
	return &Account{
		PrivateKey: k,
	}, nil
}

// PublicKey get account public key
func (a *Account) PublicKey() PublicKey {
	return a.PrivateKey.PublicKey()
}

// AccountMeta account meta type
type AccountMeta struct {
	PublicKey  PublicKey
	IsSigner   bool
	IsWritable bool
}

func (a *AccountMeta) less(act *AccountMeta) bool {
	if a.IsSigner != act.IsSigner {
		return a.IsSigner
	}
	if a.IsWritable != act.IsWritable {
		return a.IsWritable
	}
	return false
}
