package solana

import (
	"context"
	"encoding/base64"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/justmint/JustMint/log"
	"github.com/justmint/JustMint/params"
	"github.com/justmint/JustMint/rpc/client"
	"github.com/justmint/JustMint/solana/types"
)

const (
	sendTxRetryCount    = 5
	sendTxRetryInterval = 5 * time.Second

	confirmPollInterval = 2 * time.Second
)

// SendSignedTransaction call sendTransaction
func (b *Bridge) SendSignedTransaction(tx *types.Transaction, opts *types.SendTransactionOptions) (txHash string, err error) {
	txData, err := tx.SerializeAll()
	if err != nil {
		return "", err
	}
	b64TxData := base64.StdEncoding.EncodeToString(txData)

	log.Debug("SendSignedTransaction: ", "length", len(txData), "b64TxData: ", b64TxData)

	obj := map[string]interface{}{
		"encoding":   "base64",
		"commitment": "confirmed",
	}
	if opts != nil {
		if opts.SkipPreflight {
			obj["skipPreflight"] = opts.SkipPreflight
		}
		// It is recommended to specify the same commitment
		// and preflight commitment to avoid confusing behavior.
		if opts.PreflightCommitment != "" {
			obj["preflightCommitment"] = opts.PreflightCommitment
			obj["commitment"] = opts.PreflightCommitment
		}
	}

	sendTxParams := []interface{}{b64TxData, obj}

	gateway := b.GatewayConfig
	if len(gateway.APIAddressExt) > 0 {
		txHash, err = sendRawTransaction(sendTxParams, gateway.APIAddressExt)
	} else {
		txHash, err = sendRawTransaction(sendTxParams, gateway.APIAddress)
	}
	if txHash != "" {
		return txHash, nil
	}
	return "", err
}

func sendRawTransaction(sendTxParams []interface{}, urls []string) (txHash string, err error) {
	logFunc := log.GetPrintFuncOr(params.IsDebugMode, log.Info, log.Trace)
	var result string
	// the blockhash is ahead of blockchain when get,so need to retry wait for the blockhash in avaliable on solana
	for i := 0; i < sendTxRetryCount; i++ {
		url := urls[rand.Intn(len(urls))]
		err = client.RPCPost(&result, url, "sendTransaction", sendTxParams...)
		if err != nil {
			if strings.Contains(err.Error(), "Blockhash not found") {
				logFunc("solana sendRawTransaction: Blockhash not found, wait 5 sec retry", "retry times", i+1)
				time.Sleep(sendTxRetryInterval)
				continue
			} else {
				logFunc("SendSignedTransaction failed", "url", url, "err", err)
				break
			}
		} else {
			logFunc("SendSignedTransaction success", "txHash", result, "url", url)
			txHash = result
			break
		}
	}

	if txHash != "" {
		return txHash, nil
	}
	return "", WrapRPCQueryError(err, "sendTransaction")
}

// SimulateTransaction simulate tx
func (b *Bridge) SimulateTransaction(tx *types.Transaction) (result *types.SimulateTransactionResponse, err error) {
	signData, err := tx.Message.Serialize()
	if err != nil {
		return nil, fmt.Errorf("simulate tx encode tx error: %w", err)
	}
	wireTransaction, err := tx.Serialize(signData)
	if err != nil {
		return nil, fmt.Errorf("simulate tx encode tx error: %w", err)
	}
	b64TxData := base64.StdEncoding.EncodeToString(wireTransaction)

	log.Debug("simulateTx: ", "length", len(wireTransaction), "b64TxData: ", b64TxData)
	obj := map[string]interface{}{
		"encoding":   "base64",
		"commitment": "confirmed",
		"sigVerify":  false,
	}
	sendTxParams := []interface{}{b64TxData, obj}

	gateway := b.GatewayConfig
	result, err = simulateTx(sendTxParams, gateway.APIAddress)
	if err == nil {
		return result, nil
	}
	if len(gateway.APIAddressExt) > 0 {
		result, err = simulateTx(sendTxParams, gateway.APIAddressExt)
		if err == nil {
			return result, nil
		}
	}
	return nil, err
}

func simulateTx(sendTxParams []interface{}, urls []string) (result *types.SimulateTransactionResponse, err error) {
	callMethod := "simulateTransaction"
	err = RPCCall(&result, urls, callMethod, sendTxParams...)
	return result, err
}

// GetSignatureStatuses get signature statuses
func (b *Bridge) GetSignatureStatuses(sigs []string, searchTransactionHistory bool) (result *types.GetSignatureStatusesResult, err error) {
	callMethod := "getSignatureStatuses"
	obj := map[string]interface{}{
		"searchTransactionHistory": searchTransactionHistory,
	}
	err = RPCCall(&result, b.GatewayConfig.APIAddress, callMethod, sigs, obj)
	if err == nil {
		return result, nil
	}
	if len(b.GatewayConfig.APIAddressExt) > 0 {
		err = RPCCall(&result, b.GatewayConfig.APIAddressExt, callMethod, sigs, obj)
		if err == nil {
			return result, nil
		}
	}
	return nil, err
}

// AwaitConfirmation poll signature status until the wanted commitment is reached
func (b *Bridge) AwaitConfirmation(ctx context.Context, txHash string, commitment types.CommitmentType) error {
	if commitment == "" {
		commitment = types.CommitmentFinalized
	}
	for {
		result, err := b.GetSignatureStatuses([]string{txHash}, true)
		if err == nil && len(result.Value) > 0 {
			status := result.Value[0]
			if status.Err != nil {
				return fmt.Errorf("transaction %v failed on chain: %v", txHash, status.Err)
			}
			if status.ConfirmationStatus != nil && statusReached(types.CommitmentType(*status.ConfirmationStatus), commitment) {
				log.Info("transaction confirmed", "txHash", txHash, "commitment", commitment, "slot", status.Slot)
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("await confirmation of %v: %w", txHash, ctx.Err())
		case <-time.After(confirmPollInterval):
		}
	}
}

func statusReached(got, want types.CommitmentType) bool {
	rank := map[types.CommitmentType]int{
		types.CommitmentProcessed: 0,
		types.CommitmentConfirmed: 1,
		types.CommitmentFinalized: 2,
	}
	return rank[got] >= rank[want]
}
