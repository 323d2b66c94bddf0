package metaplex

import (
	"fmt"

	"github.com/justmint/JustMint/solana/programs/system"
	"github.com/justmint/JustMint/solana/programs/token"
	"github.com/justmint/JustMint/solana/types"
	"github.com/near/borsh-go"
)

// programID contants
var (
	TokenMetadataProgramID = types.MustPublicKeyFromBase58("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s")
)

// typeID constants
const (
	CreateMetadataAccountV2TypeID uint8 = 16
	CreateMasterEditionV3TypeID   uint8 = 17
)

// MetadataAccountSpace is the serialized size of a metadata account
const MetadataAccountSpace = 679

// FindMetadataAddress derives the metadata PDA of a mint
func FindMetadataAddress(mint types.PublicKey) (types.PublicKey, error) {
	addr, _, err := types.PublicKeyFindProgramAddress(
		[][]byte{[]byte("metadata"), TokenMetadataProgramID[:], mint[:]},
		TokenMetadataProgramID)
	return addr, err
}

// FindMasterEditionAddress derives the master edition PDA of a mint
func FindMasterEditionAddress(mint types.PublicKey) (types.PublicKey, error) {
	addr, _, err := types.PublicKeyFindProgramAddress(
		[][]byte{[]byte("metadata"), TokenMetadataProgramID[:], mint[:], []byte("edition")},
		TokenMetadataProgramID)
	return addr, err
}

// Creator type
type Creator struct {
	Address  types.PublicKey
	Verified bool
	Share    uint8
}

// Collection type
type Collection struct {
	Verified bool
	Key      types.PublicKey
}

// Uses type
type Uses struct {
	UseMethod uint8
	Remaining uint64
	Total     uint64
}

// DataV2 on-chain metadata content
type DataV2 struct {
	Name                 string
	Symbol               string
	Uri                  string
	SellerFeeBasisPoints uint16
	Creators             *[]Creator
	Collection           *Collection
	Uses                 *Uses
}

// Instruction type
type Instruction struct {
	TypeID       uint8
	Impl         interface{}
	AccountMetas []*types.AccountMeta
}

// Accounts get accounts
func (i *Instruction) Accounts() []*types.AccountMeta {
	return i.AccountMetas
}

// ProgramID get proram ID
func (i *Instruction) ProgramID() types.PublicKey {
	return TokenMetadataProgramID
}

// Data get data
func (i *Instruction) Data() ([]byte, error) {
	// borsh encodes a pointer as Option, serialize args by value so
	// no spurious presence byte precedes the payload
	var args interface{}
	switch impl := i.Impl.(type) {
	case *CreateMetadataAccountArgsV2:
		args = *impl
	case *CreateMasterEditionArgs:
		args = *impl
	default:
		return nil, fmt.Errorf("unknown instruction type %v", i.TypeID)
	}
	data, err := borsh.Serialize(args)
	if err != nil {
		return nil, fmt.Errorf("unable to encode instruction: %w", err)
	}
	return append([]byte{i.TypeID}, data...), nil
}

// CreateMetadataAccountArgsV2 type
type CreateMetadataAccountArgsV2 struct {
	Data      DataV2
	IsMutable bool
}

// NewCreateMetadataAccountV2Instruction new CreateMetadataAccountV2 instruction
func NewCreateMetadataAccountV2Instruction(
	metadata, mint, mintAuthority, payer, updateAuthority types.PublicKey,
	data DataV2,
	isMutable bool,
) *Instruction {
	return &Instruction{
		TypeID: CreateMetadataAccountV2TypeID,
		Impl: &CreateMetadataAccountArgsV2{
			Data:      data,
			IsMutable: isMutable,
		},
		AccountMetas: []*types.AccountMeta{
			{PublicKey: metadata, IsWritable: true},
			{PublicKey: mint},
			{PublicKey: mintAuthority, IsSigner: true},
			{PublicKey: payer, IsSigner: true, IsWritable: true},
			{PublicKey: updateAuthority},
			{PublicKey: system.SystemProgramID},
			{PublicKey: system.SysvarRentProgramID},
		},
	}
}

// CreateMasterEditionArgs type
type CreateMasterEditionArgs struct {
	MaxSupply *uint64
}

// NewCreateMasterEditionV3Instruction new CreateMasterEditionV3 instruction
func NewCreateMasterEditionV3Instruction(
	edition, mint, updateAuthority, mintAuthority, payer, metadata types.PublicKey,
	maxSupply *uint64,
) *Instruction {
	return &Instruction{
		TypeID: CreateMasterEditionV3TypeID,
		Impl: &CreateMasterEditionArgs{
			MaxSupply: maxSupply,
		},
		AccountMetas: []*types.AccountMeta{
			{PublicKey: edition, IsWritable: true},
			{PublicKey: mint, IsWritable: true},
			{PublicKey: updateAuthority, IsSigner: true},
			{PublicKey: mintAuthority, IsSigner: true},
			{PublicKey: payer, IsSigner: true, IsWritable: true},
			{PublicKey: metadata, IsWritable: true},
			{PublicKey: token.TokenProgramID},
			{PublicKey: system.SystemProgramID},
			{PublicKey: system.SysvarRentProgramID},
		},
	}
}
