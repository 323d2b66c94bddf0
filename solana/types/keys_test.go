package types

import (
	"bytes"
	"testing"
)

func TestPublicKeyFromBase58(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"system program", "11111111111111111111111111111111", false},
		{"token program", "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA", false},
		{"too short", "abc", true},
		{"bad chars", "not-a-key", true},
		{"empty", "", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			key, err := PublicKeyFromBase58(c.in)
			if (err != nil) != c.wantErr {
				t.Fatalf("%v expected error %v, but %v got", c.in, c.wantErr, err)
			}
			if err == nil && key.String() != c.in {
				t.Fatalf("expected round trip %v, but %v got", c.in, key.String())
			}
		})
	}
}

func TestPublicKeyZero(t *testing.T) {
	key := MustPublicKeyFromBase58("11111111111111111111111111111111")
	if !key.IsZero() {
		t.Fatalf("system program id must decode to the zero key")
	}
	if !bytes.Equal(key.ToSlice(), make([]byte, 32)) {
		t.Fatalf("expected 32 zero bytes, but %v got", key.ToSlice())
	}
}

func TestPublicKeyFindProgramAddress(t *testing.T) {
	programID := MustPublicKeyFromBase58("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	seeds := [][]byte{[]byte("metadata"), programID[:]}

	first, bump1, err := PublicKeyFindProgramAddress(seeds, programID)
	if err != nil {
		t.Fatalf("find program address: %v", err)
	}
	second, bump2, err := PublicKeyFindProgramAddress(seeds, programID)
	if err != nil {
		t.Fatalf("find program address: %v", err)
	}
	if !first.Equals(second) || bump1 != bump2 {
		t.Fatalf("derivation not deterministic: %v/%v != %v/%v", first, bump1, second, bump2)
	}

	other, _, err := PublicKeyFindProgramAddress([][]byte{[]byte("edition")}, programID)
	if err != nil {
		t.Fatalf("find program address: %v", err)
	}
	if first.Equals(other) {
		t.Fatalf("different seeds derived the same address")
	}
}

func TestFindAssociatedTokenAddress(t *testing.T) {
	wallet, err := AccountFromSeed(bytes.Repeat([]byte{1}, 32))
	if err != nil {
		t.Fatalf("account from seed: %v", err)
	}
	mint, err := AccountFromSeed(bytes.Repeat([]byte{2}, 32))
	if err != nil {
		t.Fatalf("account from seed: %v", err)
	}
	walletKey := wallet.PublicKey()
	mintKey := mint.PublicKey()

	first, err := FindAssociatedTokenAddress(walletKey, mintKey)
	if err != nil {
		t.Fatalf("find associated token address: %v", err)
	}
	second, err := FindAssociatedTokenAddress(walletKey, mintKey)
	if err != nil {
		t.Fatalf("find associated token address: %v", err)
	}
	if !first.Equals(second) {
		t.Fatalf("derivation not deterministic: %v != %v", first, second)
	}
	if first.Equals(walletKey) || first.Equals(mintKey) {
		t.Fatalf("associated address must differ from its inputs")
	}
}

func TestPrivateKeySignAndVerify(t *testing.T) {
	key, err := PrivateKeyFromSeed(bytes.Repeat([]byte{3}, 32))
	if err != nil {
		t.Fatalf("private key from seed: %v", err)
	}
	message := []byte("some message")
	sig, err := key.Sign(message)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	pubKey := key.PublicKey()
	if !pubKey.VerifySignature(message, sig[:]) {
		t.Fatalf("signature must verify")
	}
	if pubKey.VerifySignature([]byte("other message"), sig[:]) {
		t.Fatalf("signature must not verify a different message")
	}
}

func TestPrivateKeyBase58RoundTrip(t *testing.T) {
	key, err := PrivateKeyFromSeed(bytes.Repeat([]byte{4}, 32))
	if err != nil {
		t.Fatalf("private key from seed: %v", err)
	}
	decoded, err := PrivateKeyFromBase58(key.String())
	if err != nil {
		t.Fatalf("private key from base58: %v", err)
	}
	if !bytes.Equal(key, decoded) {
		t.Fatalf("private key round trip mismatch")
	}
}
