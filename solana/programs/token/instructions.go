package token

import (
	"bytes"
	"fmt"

	"github.com/justmint/JustMint/solana/types"
	bin "github.com/streamingfast/binary"
)

// programID contants
var (
	TokenProgramID = types.MustPublicKeyFromBase58("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
)

// typeID constants
const (
	InitializeMintTypeID uint32 = 0
	MintToTypeID         uint32 = 7
)

// MintAccountSpace is the serialized size of a spl_token mint account
const MintAccountSpace = 82

// Instruction type
type Instruction struct {
	bin.BaseVariant
}

// Accounts get accounts
func (i *Instruction) Accounts() (out []*types.AccountMeta) {
	switch i.TypeID {
	case InitializeMintTypeID:
		accounts := i.Impl.(*InitializeMint).Accounts
		out = []*types.AccountMeta{
			accounts.Mint,
			accounts.RentProgram,
		}
	case MintToTypeID:
		accounts := i.Impl.(*MintTo).Accounts
		out = []*types.AccountMeta{
			accounts.Mint,
			accounts.Account,
			accounts.Minter,
		}
	}

	return
}

// ProgramID get proram ID
func (i *Instruction) ProgramID() types.PublicKey {
	return TokenProgramID
}

// Data get data
func (i *Instruction) Data() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := bin.NewEncoder(buf).Encode(i); err != nil {
		return nil, fmt.Errorf("unable to encode instruction: %w", err)
	}
	return buf.Bytes(), nil
}

// MarshalBinary marshal binary
func (i *Instruction) MarshalBinary(encoder *bin.Encoder) error {
	err := encoder.WriteUint8(uint8(i.TypeID))
	if err != nil {
		return fmt.Errorf("unable to write variant type: %w", err)
	}
	return encoder.Encode(i.Impl)
}

// InitializeMintAccounts type
type InitializeMintAccounts struct {
	Mint        *types.AccountMeta
	RentProgram *types.AccountMeta
	///   0. `[writable]` The mint to initialize.
	///   1. `[]` Rent sysvar
}

// InitializeMint type
type InitializeMint struct {
	/// Number of base 10 digits to the right of the decimal place.
	Decimals uint8
	/// The authority/multisignature to mint tokens.
	MintAuthority types.PublicKey
	/// The freeze authority/multisignature of the mint.
	FreezeAuthority *types.PublicKey
	Accounts        *InitializeMintAccounts `bin:"-"`
}

// MarshalBinary the freeze authority is a spl_token COption, a single
// tag byte followed by the key when present
func (m *InitializeMint) MarshalBinary(encoder *bin.Encoder) error {
	if err := encoder.WriteUint8(m.Decimals); err != nil {
		return err
	}
	if err := encoder.Encode(m.MintAuthority); err != nil {
		return err
	}
	if m.FreezeAuthority == nil {
		return encoder.WriteUint8(0)
	}
	if err := encoder.WriteUint8(1); err != nil {
		return err
	}
	return encoder.Encode(*m.FreezeAuthority)
}

// NewInitializeMintInstruction new InitializeMint instruction
func NewInitializeMintInstruction(
	decimals uint8,
	mint types.PublicKey,
	mintAuthority types.PublicKey,
	freezeAuthority *types.PublicKey,
	rentProgram types.PublicKey,
) *Instruction {
	return &Instruction{
		BaseVariant: bin.BaseVariant{
			TypeID: InitializeMintTypeID,
			Impl: &InitializeMint{
				Decimals:        decimals,
				MintAuthority:   mintAuthority,
				FreezeAuthority: freezeAuthority,
				Accounts: &InitializeMintAccounts{
					Mint:        &types.AccountMeta{PublicKey: mint, IsWritable: true},
					RentProgram: &types.AccountMeta{PublicKey: rentProgram},
				},
			},
		},
	}
}

// MintToAccounts type
type MintToAccounts struct {
	Mint    *types.AccountMeta
	Account *types.AccountMeta
	Minter  *types.AccountMeta
}

// MintTo type
type MintTo struct {
	Amount   uint64
	Accounts *MintToAccounts `bin:"-"`
}

// NewMintToInstruction new MintTo instruction
func NewMintToInstruction(
	amount uint64,
	mint types.PublicKey,
	account types.PublicKey,
	minter types.PublicKey,
) *Instruction {
	return &Instruction{
		BaseVariant: bin.BaseVariant{
			TypeID: MintToTypeID,
			Impl: &MintTo{
				Amount: amount,
				Accounts: &MintToAccounts{
					Mint:    &types.AccountMeta{PublicKey: mint, IsWritable: true},
					Account: &types.AccountMeta{PublicKey: account, IsWritable: true},
					Minter:  &types.AccountMeta{PublicKey: minter, IsSigner: true},
				},
			},
		},
	}
}
