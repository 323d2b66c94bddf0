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

package types

import (
	bin "github.com/streamingfast/binary"
)

// Context type
type Context struct {
	Slot bin.Uint64
}

// RPCContext rpc context
type RPCContext struct {
	Context Context `json:"context,omitempty"`
}

// GetBalanceResult get balance result
type GetBalanceResult struct {
	RPCContext
	Value bin.Uint64 `json:"value"`
}

// FeeCalculator fee calculator
type FeeCalculator struct {
	LamportsPerSignature bin.Uint64 `json:"lamportsPerSignature"`
}

// GetLatestBlockhashResult get latest block hash result
type GetLatestBlockhashResult struct {
	RPCContext
	Value LatestBlockhashResult `json:"value"`
}

// LatestBlockhashResult latest block hash result
type LatestBlockhashResult struct {
	Blockhash            Hash       `json:"blockhash"`
	LastValidBlockHeight bin.Uint64 `json:"lastValidBlockHeight"`
}

// GetFeesResult get fees result
type GetFeesResult struct {
	RPCContext
	Value FeeResult `json:"value"`
}

// FeeResult fee result
type FeeResult struct {
	Blockhash            Hash          `json:"blockhash"`
	FeeCalculator        FeeCalculator `json:"feeCalculator"`
	LastValidBlockHeight bin.Uint64    `json:"lastValidBlockHeight"`
	LastValidSlot        bin.Uint64    `json:"lastValidSlot"`
}

// GetAccountInfoResult get account info result
type GetAccountInfoResult struct {
	RPCContext
	Value *AccountInfo `json:"value"`
}

// AccountInfo account info
type AccountInfo struct {
	Lamports   bin.Uint64  `json:"lamports"`
	Data       interface{} `json:"data"` // <[string, encoding]|object>
	Owner      PublicKey   `json:"owner"`
	Executable bool        `json:"executable"`
	RentEpoch  bin.Uint64  `json:"rentEpoch"`
}

// CommitmentType is the level of commitment desired when querying state.
// https://docs.com/developing/clients/jsonrpc-api#configuring-state-commitment
type CommitmentType string

// commitment contants
const (
	// CommitmentProcessed queries the most recent block which has reached 1 confirmation by the connected node
	CommitmentProcessed = CommitmentType("processed")
	// CommitmentConfirmed queries the most recent block which has reached 1 confirmation by the cluster
	CommitmentConfirmed = CommitmentType("confirmed")
	// CommitmentFinalized queries the most recent block which has been finalized by the cluster
	CommitmentFinalized = CommitmentType("finalized")
)

// SendTransactionOptions send tx options
type SendTransactionOptions struct {
	SkipPreflight       bool           // disable transaction verification step
	PreflightCommitment CommitmentType // preflight commitment level; default: "finalized"
}

// SimulateTransactionResponse simulate tx responce
type SimulateTransactionResponse struct {
	Err  interface{} `json:"err"`
	Logs []string    `json:"logs"`
}

// GetSignatureStatusesResult result
type GetSignatureStatusesResult struct {
	RPCContext
	Value []SignatureStatus `json:"value"`
}

// SignatureStatus signature status
type SignatureStatus struct {
	Slot               bin.Uint64  `json:"slot"`
	Confirmations      *bin.Uint64 `json:"confirmations"`
	Err                interface{} `json:"err"`
	ConfirmationStatus *string     `json:"confirmationStatus"`
}
