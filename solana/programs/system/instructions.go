// Copyright 2020 dfuse Platform Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package system

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/justmint/JustMint/solana/types"
	bin "github.com/streamingfast/binary"
)

// programID constants
var (
	SystemProgramID      = types.MustPublicKeyFromBase58("11111111111111111111111111111111")
	SysvarRentProgramID  = types.MustPublicKeyFromBase58("SysvarRent111111111111111111111111111111111")
	SysvarC1ockProgramID = types.MustPublicKeyFromBase58("SysvarC1ock11111111111111111111111111111111")
)

// typeID constants
const (
	CreateAccountTypeID uint32 = 0
	TransferTypeID      uint32 = 2
)

// NewCreateAccountInstruction new create account instruction
func NewCreateAccountInstruction(lamports uint64, space uint64, owner, from, to types.PublicKey) *Instruction {
	return &Instruction{
		BaseVariant: bin.BaseVariant{
			TypeID: CreateAccountTypeID,
			Impl: &CreateAccount{
				Lamports: bin.Uint64(lamports),
				Space:    bin.Uint64(space),
				Owner:    owner,
				Accounts: &CreateAccountAccounts{
					From: &types.AccountMeta{PublicKey: from, IsSigner: true, IsWritable: true},
					New:  &types.AccountMeta{PublicKey: to, IsSigner: true, IsWritable: true},
				},
			},
		},
	}
}

// NewTransferSolanaInstruction new transfer solana instruction
func NewTransferSolanaInstruction(from, to types.PublicKey, lamports uint64) *Instruction {
	return &Instruction{
		BaseVariant: bin.BaseVariant{
			TypeID: TransferTypeID,
			Impl: &Transfer{
				Lamports: bin.Uint64(lamports),
				Accounts: &TransferAccounts{
					From: &types.AccountMeta{PublicKey: from, IsSigner: true, IsWritable: true},
					To:   &types.AccountMeta{PublicKey: to, IsSigner: false, IsWritable: true},
				},
			},
		},
	}
}

// Instruction type
type Instruction struct {
	bin.BaseVariant
}

// Accounts get accounts
func (i *Instruction) Accounts() (out []*types.AccountMeta) {
	switch i.TypeID {
	case CreateAccountTypeID:
		accounts := i.Impl.(*CreateAccount).Accounts
		out = []*types.AccountMeta{accounts.From, accounts.New}
	case TransferTypeID:
		accounts := i.Impl.(*Transfer).Accounts
		out = []*types.AccountMeta{accounts.From, accounts.To}
	}
	return out
}

// ProgramID return program id
func (i *Instruction) ProgramID() types.PublicKey {
	return SystemProgramID
}

// Data return data
func (i *Instruction) Data() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := bin.NewEncoder(buf).Encode(i); err != nil {
		return nil, fmt.Errorf("unable to encode instruction: %w", err)
	}
	return buf.Bytes(), nil
}

// MarshalBinary marshal binary
func (i *Instruction) MarshalBinary(encoder *bin.Encoder) error {
	err := encoder.WriteUint32(i.TypeID, binary.LittleEndian)
	if err != nil {
		return fmt.Errorf("unable to write variant type: %w", err)
	}
	return encoder.Encode(i.Impl)
}

// CreateAccountAccounts type
type CreateAccountAccounts struct {
	From *types.AccountMeta `text:"linear,notype"`
	New  *types.AccountMeta `text:"linear,notype"`
}

// CreateAccount type
type CreateAccount struct {
	Lamports bin.Uint64
	Space    bin.Uint64
	Owner    types.PublicKey
	Accounts *CreateAccountAccounts `bin:"-"`
}

// Transfer type
type Transfer struct {
	// Prefix with byte 0x02
	Lamports bin.Uint64
	Accounts *TransferAccounts `bin:"-"`
}

// TransferAccounts type
type TransferAccounts struct {
	From *types.AccountMeta `text:"linear,notype"`
	To   *types.AccountMeta `text:"linear,notype"`
}
