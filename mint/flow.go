package mint

import (
	"context"
	"fmt"
	"math/big"

	"github.com/justmint/JustMint/bundlr"
	"github.com/justmint/JustMint/log"
	"github.com/justmint/JustMint/params"
	"github.com/justmint/JustMint/solana"
	"github.com/justmint/JustMint/solana/programs/metaplex"
	"github.com/justmint/JustMint/solana/types"
)

// State is one step of the mint flow
type State string

// flow states
const (
	StateIdle           State = "Idle"
	StateDerivingSigner State = "DerivingSigner"
	StateEstimating     State = "Estimating"
	StateFunding        State = "Funding"
	StateUploading      State = "Uploading"
	StateMinting        State = "Minting"
	StateConfirmed      State = "Confirmed"
	StateFailed         State = "Failed"
)

// ProgressFunc receives state transitions with a short detail line
type ProgressFunc func(state State, detail string)

// Flow drives one mint from wallet connection to finalized transaction
type Flow struct {
	Bridge  *solana.Bridge
	Client  *bundlr.Client
	Wallet  *types.Account
	Session *Session

	OnProgress ProgressFunc

	state State
}

// NewFlow new flow
func NewFlow(bridge *solana.Bridge, client *bundlr.Client, wallet *types.Account, session *Session) *Flow {
	return &Flow{
		Bridge:  bridge,
		Client:  client,
		Wallet:  wallet,
		Session: session,
		state:   StateIdle,
	}
}

// State current state
func (f *Flow) State() State {
	return f.state
}

func (f *Flow) setState(state State, detail string) {
	f.state = state
	log.Info("mint flow state", "state", state, "detail", detail)
	if f.OnProgress != nil {
		f.OnProgress(state, detail)
	}
}

func (f *Flow) fail(err error) error {
	f.setState(StateFailed, err.Error())
	return err
}

// RecoverFunding report a funding transfer that finalized on chain but
// was never announced to the node, by its transaction hash alone
func (f *Flow) RecoverFunding(txHash string) error {
	f.Session.FundTxHash = txHash
	if err := f.Session.Save(); err != nil {
		return err
	}
	return f.Session.SubmitFundTransaction(f.Client)
}

// Result of a completed flow
type Result struct {
	Mint         string
	TxHash       string
	MetadataLink string
}

// Run execute the whole flow. Interrupted runs resume from the session:
// a recorded funding transfer is reported before anything else, and
// items already uploaded are not paid for again.
func (f *Flow) Run(ctx context.Context) (*Result, error) {
	walletKey := f.Wallet.PublicKey()

	f.setState(StateDerivingSigner, walletKey.String())
	signer, err := f.Session.OnWalletConnected(f.Wallet)
	if err != nil {
		return nil, f.fail(err)
	}

	allCreators := f.Session.AllCreators(walletKey)
	if err = CheckCreators(allCreators); err != nil {
		return nil, f.fail(err)
	}

	// a funding transfer that finalized but was never reported would
	// otherwise strand the paid balance
	if f.Session.FundTxHash != "" {
		f.setState(StateFunding, "recovering funding tx "+f.Session.FundTxHash)
		if err = f.Session.SubmitFundTransaction(f.Client); err != nil {
			return nil, f.fail(err)
		}
	}

	f.setState(StateEstimating, "")
	price, err := f.Session.EstimatePrice(f.Client)
	if err != nil {
		return nil, f.fail(err)
	}
	signerKey := signer.PublicKey()
	balance, err := f.Client.GetBalance(signerKey.String())
	if err != nil {
		return nil, f.fail(err)
	}
	log.Info("estimated upload", "price", FormatSol(price), "balance", FormatSol(balance))

	if balance.Cmp(price) < 0 {
		deficit := new(big.Int).Sub(price, balance)
		amount := ApplyFundMultiplier(deficit)
		f.setState(StateFunding, fmt.Sprintf("funding %v sol", FormatSol(amount)))
		if err = f.Session.FundBundlr(ctx, f.Bridge, f.Client, f.Wallet, signer, amount); err != nil {
			return nil, f.fail(err)
		}
	}

	f.setState(StateUploading, "")
	metadataLink, err := f.Session.BundlrUpload(f.Client, signer)
	if err != nil {
		return nil, f.fail(err)
	}

	f.setState(StateMinting, metadataLink)
	creators, err := BuildCreators(walletKey, allCreators)
	if err != nil {
		return nil, f.fail(err)
	}
	data := metaplex.DataV2{
		Name:                 f.Session.Name,
		Symbol:               "",
		Uri:                  metadataLink,
		SellerFeeBasisPoints: f.Session.SellerFeeBasisPoints,
		Creators:             &creators,
	}
	mintAccount, instructions, err := MintNFTInstructions(f.Bridge, walletKey, data, f.Session.MaxEditions)
	if err != nil {
		return nil, f.fail(err)
	}
	tx, err := BuildMintTransaction(f.Bridge, f.Wallet, mintAccount, instructions)
	if err != nil {
		return nil, f.fail(err)
	}
	txHash, err := f.Bridge.SendSignedTransaction(tx, &types.SendTransactionOptions{
		SkipPreflight: params.SkipPreflight(),
	})
	if err != nil {
		return nil, f.fail(err)
	}
	if err = f.Bridge.AwaitConfirmation(ctx, txHash, types.CommitmentFinalized); err != nil {
		return nil, f.fail(err)
	}

	mintKey := mintAccount.PublicKey()
	f.setState(StateConfirmed, txHash)
	return &Result{
		Mint:         mintKey.String(),
		TxHash:       txHash,
		MetadataLink: metadataLink,
	}, nil
}
