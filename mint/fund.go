package mint

import (
	"context"
	"fmt"
	"math/big"

	"github.com/justmint/JustMint/bundlr"
	"github.com/justmint/JustMint/log"
	"github.com/justmint/JustMint/params"
	"github.com/justmint/JustMint/solana"
	"github.com/justmint/JustMint/solana/programs/system"
	"github.com/justmint/JustMint/solana/types"
)

// ApplyFundMultiplier scale the quoted price by the configured safety
// multiplier, rounding up so the funded amount always covers the quote
func ApplyFundMultiplier(price *big.Int) *big.Int {
	percent := params.GetFundMultiplierPercent()
	scaled := new(big.Int).Mul(price, new(big.Int).SetUint64(percent))
	// ceil division by 100
	scaled.Add(scaled, big.NewInt(99))
	return scaled.Div(scaled, big.NewInt(100))
}

// FundBundlr move amount from the wallet to the node deposit address in
// two hops. The wallet first funds the derived signer with the amount
// plus the fee of the second transfer, then the signer forwards the
// amount to the node. The node only credits balances funded by the item
// signer itself, hence the intermediate hop. The second transfer hash is
// reported to the node after finalization.
func (s *Session) FundBundlr(
	ctx context.Context,
	bridge *solana.Bridge,
	client *bundlr.Client,
	wallet, signer *types.Account,
	amount *big.Int,
) error {
	if !amount.IsUint64() {
		return fmt.Errorf("fund amount %v out of range", amount.String())
	}
	to, err := client.GetBundlerAddress()
	if err != nil {
		return err
	}
	toKey, err := types.PublicKeyFromBase58(to)
	if err != nil {
		return fmt.Errorf("wrong node deposit address '%v': %w", to, err)
	}

	fees, err := bridge.GetFees()
	if err != nil {
		return err
	}
	blockhash := fees.Value.Blockhash
	lamportsPerSignature := uint64(fees.Value.FeeCalculator.LamportsPerSignature)

	walletKey := wallet.PublicKey()
	signerKey := signer.PublicKey()

	// first hop funds the signer with the amount plus the fee it will
	// pay forwarding it
	firstHop, err := types.NewTransaction(
		[]types.TransactionInstruction{
			system.NewTransferSolanaInstruction(walletKey, signerKey, amount.Uint64()+lamportsPerSignature),
		},
		blockhash,
		types.TransactionPayer(walletKey),
	)
	if err != nil {
		return fmt.Errorf("build wallet transfer: %w", err)
	}
	if _, err = firstHop.Sign(accountGetter(wallet)); err != nil {
		return err
	}
	firstHash, err := bridge.SendSignedTransaction(firstHop, nil)
	if err != nil {
		return fmt.Errorf("send wallet transfer: %w", err)
	}
	log.Info("funded signer", "txHash", firstHash, "signer", signerKey.String())
	if err = bridge.AwaitConfirmation(ctx, firstHash, types.CommitmentConfirmed); err != nil {
		return err
	}

	// second hop forwards the amount from the signer to the node
	secondHop, err := types.NewTransaction(
		[]types.TransactionInstruction{
			system.NewTransferSolanaInstruction(signerKey, toKey, amount.Uint64()),
		},
		blockhash,
		types.TransactionPayer(signerKey),
	)
	if err != nil {
		return fmt.Errorf("build signer transfer: %w", err)
	}
	if _, err = secondHop.Sign(accountGetter(signer)); err != nil {
		return err
	}
	txHash, err := bridge.SendSignedTransaction(secondHop, &types.SendTransactionOptions{SkipPreflight: true})
	if err != nil {
		return fmt.Errorf("send signer transfer: %w", err)
	}
	log.Info("funded node, waiting finalization", "txHash", txHash, "to", to)

	s.FundTxHash = txHash
	if err = s.Save(); err != nil {
		return err
	}

	if err = bridge.AwaitConfirmation(ctx, txHash, types.CommitmentFinalized); err != nil {
		return err
	}
	return s.SubmitFundTransaction(client)
}

// SubmitFundTransaction report the recorded funding transfer to the
// node. Safe to call again if the first report failed, the node
// deduplicates by transaction hash.
func (s *Session) SubmitFundTransaction(client *bundlr.Client) error {
	if s.FundTxHash == "" {
		return fmt.Errorf("no funding transaction recorded")
	}
	if err := client.SubmitFundTransaction(s.FundTxHash); err != nil {
		return err
	}
	s.FundTxHash = ""
	return s.Save()
}

func accountGetter(accounts ...*types.Account) func(key types.PublicKey) *types.PrivateKey {
	return func(key types.PublicKey) *types.PrivateKey {
		for _, account := range accounts {
			pubKey := account.PublicKey()
			if pubKey.Equals(key) {
				return &account.PrivateKey
			}
		}
		return nil
	}
}
