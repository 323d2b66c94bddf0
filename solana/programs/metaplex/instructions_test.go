package metaplex

import (
	"bytes"
	"testing"

	"github.com/justmint/JustMint/solana/types"
)

func testKey(t *testing.T, fill byte) types.PublicKey {
	t.Helper()
	account, err := types.AccountFromSeed(bytes.Repeat([]byte{fill}, 32))
	if err != nil {
		t.Fatalf("account from seed: %v", err)
	}
	return account.PublicKey()
}

func TestFindMetadataAddress(t *testing.T) {
	mint := testKey(t, 1)
	first, err := FindMetadataAddress(mint)
	if err != nil {
		t.Fatalf("find metadata address: %v", err)
	}
	second, err := FindMetadataAddress(mint)
	if err != nil {
		t.Fatalf("find metadata address: %v", err)
	}
	if !first.Equals(second) {
		t.Fatalf("derivation not deterministic: %v != %v", first, second)
	}

	edition, err := FindMasterEditionAddress(mint)
	if err != nil {
		t.Fatalf("find master edition address: %v", err)
	}
	if edition.Equals(first) {
		t.Fatalf("metadata and edition addresses must differ")
	}
}

func TestCreateMetadataAccountV2Instruction(t *testing.T) {
	mint := testKey(t, 1)
	metadata, err := FindMetadataAddress(mint)
	if err != nil {
		t.Fatalf("find metadata address: %v", err)
	}
	payer := testKey(t, 2)

	share := uint8(100)
	instruction := NewCreateMetadataAccountV2Instruction(
		metadata, mint, payer, payer, payer,
		DataV2{
			Name:                 "My NFT",
			Symbol:               "",
			Uri:                  "https://arweave.net/someid",
			SellerFeeBasisPoints: 500,
			Creators:             &[]Creator{{Address: payer, Verified: true, Share: share}},
		},
		true,
	)
	if !instruction.ProgramID().Equals(TokenMetadataProgramID) {
		t.Fatalf("wrong program id %v", instruction.ProgramID())
	}
	accounts := instruction.Accounts()
	if len(accounts) != 7 {
		t.Fatalf("expected 7 accounts, but %v got", len(accounts))
	}
	if !accounts[0].IsWritable || accounts[0].IsSigner {
		t.Fatalf("metadata account must be writable and unsigned")
	}
	if !accounts[3].IsSigner || !accounts[3].IsWritable {
		t.Fatalf("payer must sign and be writable")
	}

	data, err := instruction.Data()
	if err != nil {
		t.Fatalf("encode instruction: %v", err)
	}
	if data[0] != CreateMetadataAccountV2TypeID {
		t.Fatalf("expected discriminator %v, but %v got", CreateMetadataAccountV2TypeID, data[0])
	}
	if !bytes.Contains(data, []byte("My NFT")) || !bytes.Contains(data, []byte("https://arweave.net/someid")) {
		t.Fatalf("instruction data missing borsh encoded fields")
	}
}

func TestCreateMasterEditionV3Instruction(t *testing.T) {
	mint := testKey(t, 1)
	edition, err := FindMasterEditionAddress(mint)
	if err != nil {
		t.Fatalf("find master edition address: %v", err)
	}
	metadata, err := FindMetadataAddress(mint)
	if err != nil {
		t.Fatalf("find metadata address: %v", err)
	}
	authority := testKey(t, 2)

	maxSupply := uint64(0)
	instruction := NewCreateMasterEditionV3Instruction(
		edition, mint, authority, authority, authority, metadata, &maxSupply)

	accounts := instruction.Accounts()
	if len(accounts) != 9 {
		t.Fatalf("expected 9 accounts, but %v got", len(accounts))
	}
	data, err := instruction.Data()
	if err != nil {
		t.Fatalf("encode instruction: %v", err)
	}
	if data[0] != CreateMasterEditionV3TypeID {
		t.Fatalf("expected discriminator %v, but %v got", CreateMasterEditionV3TypeID, data[0])
	}
	// borsh option tag 1 followed by the little endian max supply
	expectedArgs := []byte{1, 0, 0, 0, 0, 0, 0, 0, 0}
	if !bytes.Equal(data[1:], expectedArgs) {
		t.Fatalf("expected args %v, but %v got", expectedArgs, data[1:])
	}
}
