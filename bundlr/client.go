package bundlr

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/justmint/JustMint/log"
	"github.com/justmint/JustMint/params"
	"github.com/justmint/JustMint/rpc/client"
)

// rest call timeout constants (seconds)
const (
	queryTimeout  = 60
	uploadTimeout = 300
)

// Client talk to a bundlr node and its arweave gateway
type Client struct {
	Node     string
	Gateway  string
	Currency string
}

// NewClient new client from config
func NewClient(cfg *params.BundlrConfig) *Client {
	c := &Client{
		Node:     strings.TrimSuffix(cfg.Node, "/"),
		Gateway:  strings.TrimSuffix(params.GetBundlrGateway(), "/"),
		Currency: params.GetBundlrCurrency(),
	}
	if cfg.Gateway != "" {
		c.Gateway = strings.TrimSuffix(cfg.Gateway, "/")
	}
	if cfg.Currency != "" {
		c.Currency = cfg.Currency
	}
	return c
}

// GetPrice query the upload price of byteSize bytes in atomic units
func (c *Client) GetPrice(byteSize uint64) (*big.Int, error) {
	url := fmt.Sprintf("%s/price/%s/%d", c.Node, c.Currency, byteSize)
	resp, err := client.HTTPGet(url, nil, nil, queryTimeout)
	if err != nil {
		return nil, fmt.Errorf("get price failed: %w", err)
	}
	body, err := client.ReadResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("get price failed: %w", err)
	}
	price, ok := new(big.Int).SetString(strings.TrimSpace(string(body)), 10)
	if !ok {
		return nil, fmt.Errorf("get price: wrong price '%s'", body)
	}
	return price, nil
}

type balanceResult struct {
	Balance json.Number `json:"balance"`
}

// GetBalance query the prepaid node balance of address in atomic units
func (c *Client) GetBalance(address string) (*big.Int, error) {
	url := fmt.Sprintf("%s/account/balance/%s", c.Node, c.Currency)
	resp, err := client.HTTPGet(url, map[string]string{"address": address}, nil, queryTimeout)
	if err != nil {
		return nil, fmt.Errorf("get balance failed: %w", err)
	}
	var result balanceResult
	if err = client.GetResultFromJSONResponse(&result, resp); err != nil {
		return nil, fmt.Errorf("get balance failed: %w", err)
	}
	balance, ok := new(big.Int).SetString(result.Balance.String(), 10)
	if !ok {
		return nil, fmt.Errorf("get balance: wrong balance '%s'", result.Balance)
	}
	return balance, nil
}

type nodeInfo struct {
	Version   string            `json:"version"`
	Addresses map[string]string `json:"addresses"`
	Gateway   string            `json:"gateway"`
}

// GetBundlerAddress query the node deposit address of the payment currency
func (c *Client) GetBundlerAddress() (string, error) {
	url := c.Node + "/info"
	resp, err := client.HTTPGet(url, nil, nil, queryTimeout)
	if err != nil {
		return "", fmt.Errorf("get node info failed: %w", err)
	}
	var info nodeInfo
	if err = client.GetResultFromJSONResponse(&info, resp); err != nil {
		return "", fmt.Errorf("get node info failed: %w", err)
	}
	address, exist := info.Addresses[c.Currency]
	if !exist {
		return "", fmt.Errorf("node has no deposit address of currency '%s'", c.Currency)
	}
	return address, nil
}

// SubmitFundTransaction notify the node of an on chain transfer to its
// deposit address so it credits the sender balance
func (c *Client) SubmitFundTransaction(txHash string) error {
	url := fmt.Sprintf("%s/account/balance/%s", c.Node, c.Currency)
	body := map[string]string{"tx_id": txHash}
	resp, err := client.HTTPPost(url, body, nil, nil, uploadTimeout)
	if err != nil {
		return fmt.Errorf("submit fund tx failed: %w", err)
	}
	if _, err = client.ReadResponseBody(resp); err != nil {
		return fmt.Errorf("submit fund tx failed: %w", err)
	}
	log.Info("submit fund tx success", "txHash", txHash, "currency", c.Currency)
	return nil
}

type uploadResult struct {
	ID string `json:"id"`
}

// UploadDataItem post a signed item and return its transaction id
func (c *Client) UploadDataItem(item *DataItem) (string, error) {
	raw, err := item.Marshal()
	if err != nil {
		return "", err
	}
	url := fmt.Sprintf("%s/tx/%s", c.Node, c.Currency)
	headers := map[string]string{"Content-Type": "application/octet-stream"}
	resp, err := client.HTTPRawPost(url, raw, nil, headers, uploadTimeout)
	if err != nil {
		return "", fmt.Errorf("upload data item failed: %w", err)
	}
	var result uploadResult
	if err = client.GetResultFromJSONResponse(&result, resp); err != nil {
		return "", fmt.Errorf("upload data item failed: %w", err)
	}
	// the stored id must be the one the item was signed for, anything
	// else would leave links pointing at content we did not upload
	if wantID := item.ID(); result.ID != wantID {
		return "", fmt.Errorf("upload data item failed: node stored id '%v', want '%v'", result.ID, wantID)
	}
	log.Info("upload data item success", "id", result.ID, "size", len(raw))
	return result.ID, nil
}

// ItemExists check if the gateway already serves the id
func (c *Client) ItemExists(id string) (bool, error) {
	resp, err := client.HTTPHead(c.ItemURL(id), queryTimeout)
	if err != nil {
		return false, err
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode >= 200 && resp.StatusCode < 300, nil
}

// ItemURL gateway url of an uploaded item
func (c *Client) ItemURL(id string) string {
	return fmt.Sprintf("%s/%s", c.Gateway, id)
}
