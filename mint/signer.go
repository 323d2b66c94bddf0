package mint

import (
	"fmt"

	"github.com/justmint/JustMint/log"
	"github.com/justmint/JustMint/solana/types"
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"
)

// SignerMessage is the message the wallet signs to derive the upload signer
const SignerMessage = "JustMint SecretKey"

// DeriveSigner derive a deterministic upload signer from the wallet key.
// The wallet signs a fixed message, the signature is hashed with sha3-512
// and the first 32 bytes seed a new ed25519 keypair. Signing the same
// message with the same wallet always yields the same signer.
func DeriveSigner(wallet *types.Account) (*types.Account, error) {
	signature, err := wallet.PrivateKey.Sign([]byte(SignerMessage))
	if err != nil {
		return nil, fmt.Errorf("sign derivation message: %w", err)
	}
	hash := sha3.Sum512(signature[:])
	signer, err := types.AccountFromSeed(hash[:32])
	if err != nil {
		return nil, fmt.Errorf("derive signer from seed: %w", err)
	}
	log.Info("derived signer key", "signer", signer.PublicKey().String())
	return signer, nil
}

// EncodeSigner serialize a signer to the persisted base58 form,
// the public key followed by the expanded private key
func EncodeSigner(signer *types.Account) string {
	pubKey := signer.PublicKey()
	buf := make([]byte, 0, len(pubKey)+len(signer.PrivateKey))
	buf = append(buf, pubKey[:]...)
	buf = append(buf, signer.PrivateKey...)
	return base58.Encode(buf)
}

// DecodeSigner parse the persisted base58 signer form
func DecodeSigner(encoded string) (*types.Account, error) {
	raw, err := base58.Decode(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode signer: %w", err)
	}
	if len(raw) != 96 {
		return nil, fmt.Errorf("decode signer: wrong length %v", len(raw))
	}
	account, err := types.AccountFromPrivateKeyBase58(base58.Encode(raw[32:]))
	if err != nil {
		return nil, fmt.Errorf("decode signer: %w", err)
	}
	pubKey := account.PublicKey()
	for i := 0; i < 32; i++ {
		if raw[i] != pubKey[i] {
			return nil, fmt.Errorf("decode signer: public key mismatch")
		}
	}
	return account, nil
}
