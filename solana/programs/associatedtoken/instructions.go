package associatedtoken

import (
	"github.com/justmint/JustMint/solana/programs/system"
	"github.com/justmint/JustMint/solana/programs/token"
	"github.com/justmint/JustMint/solana/types"
)

// programID contants
var (
	AssociatedTokenProgramID = types.MustPublicKeyFromBase58("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL")
)

// Instruction type
type Instruction struct {
	AssociatedAccounts *CreateAccounts
}

// CreateAccounts type
type CreateAccounts struct {
	Funder          *types.AccountMeta
	AssociatedToken *types.AccountMeta
	Owner           *types.AccountMeta
	Mint            *types.AccountMeta
	SystemProgram   *types.AccountMeta
	TokenProgram    *types.AccountMeta
	RentProgram     *types.AccountMeta
}

// NewCreateInstruction creates the associated token account of mint for owner,
// funded by funder. The instruction carries no data, the program derives
// everything from the account list.
func NewCreateInstruction(funder, owner, mint, associatedToken types.PublicKey) *Instruction {
	return &Instruction{
		AssociatedAccounts: &CreateAccounts{
			Funder:          &types.AccountMeta{PublicKey: funder, IsSigner: true, IsWritable: true},
			AssociatedToken: &types.AccountMeta{PublicKey: associatedToken, IsWritable: true},
			Owner:           &types.AccountMeta{PublicKey: owner},
			Mint:            &types.AccountMeta{PublicKey: mint},
			SystemProgram:   &types.AccountMeta{PublicKey: system.SystemProgramID},
			TokenProgram:    &types.AccountMeta{PublicKey: token.TokenProgramID},
			RentProgram:     &types.AccountMeta{PublicKey: system.SysvarRentProgramID},
		},
	}
}

// Accounts get accounts
func (i *Instruction) Accounts() (out []*types.AccountMeta) {
	accounts := i.AssociatedAccounts
	return []*types.AccountMeta{
		accounts.Funder,
		accounts.AssociatedToken,
		accounts.Owner,
		accounts.Mint,
		accounts.SystemProgram,
		accounts.TokenProgram,
		accounts.RentProgram,
	}
}

// ProgramID get proram ID
func (i *Instruction) ProgramID() types.PublicKey {
	return AssociatedTokenProgramID
}

// Data get data
func (i *Instruction) Data() ([]byte, error) {
	return []byte{}, nil
}
