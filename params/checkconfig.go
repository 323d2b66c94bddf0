package params

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/justmint/JustMint/log"
)

// CheckConfig check mint config
func (config *MintConfig) CheckConfig() (err error) {
	if !strings.HasPrefix(config.Identifier, MintIdentifierPrefix) || config.Identifier == MintIdentifierPrefix {
		return fmt.Errorf("wrong identifier '%v', missing prefix '%v'", config.Identifier, MintIdentifierPrefix)
	}
	log.Info("check identifier pass", "identifier", config.Identifier)

	if config.Gateway == nil {
		return errors.New("must config 'Gateway'")
	}
	err = config.Gateway.CheckConfig()
	if err != nil {
		return err
	}

	if config.Bundlr == nil {
		return errors.New("must config 'Bundlr'")
	}
	err = config.Bundlr.CheckConfig()
	if err != nil {
		return err
	}

	if config.Wallet == nil {
		return errors.New("must config 'Wallet'")
	}
	err = config.Wallet.CheckConfig()
	if err != nil {
		return err
	}

	if config.Donation != nil {
		err = config.Donation.CheckConfig()
		if err != nil {
			return err
		}
	}

	return nil
}

// CheckConfig check gateway config
func (config *GatewayConfig) CheckConfig() error {
	if len(config.APIAddress) == 0 {
		return errors.New("gateway must config 'APIAddress'")
	}
	for _, addr := range append(config.APIAddress, config.APIAddressExt...) {
		if err := checkURL(addr); err != nil {
			return fmt.Errorf("wrong gateway address '%v': %w", addr, err)
		}
	}
	return nil
}

// CheckConfig check bundlr config
func (config *BundlrConfig) CheckConfig() error {
	if config.Node == "" {
		return errors.New("bundlr must config 'Node'")
	}
	if err := checkURL(config.Node); err != nil {
		return fmt.Errorf("wrong bundlr node '%v': %w", config.Node, err)
	}
	if config.Gateway != "" {
		if err := checkURL(config.Gateway); err != nil {
			return fmt.Errorf("wrong bundlr gateway '%v': %w", config.Gateway, err)
		}
	}
	if config.FundMultiplierPercent > 0 && config.FundMultiplierPercent < 100 {
		return fmt.Errorf("fund multiplier percent %v is less than 100", config.FundMultiplierPercent)
	}
	return nil
}

// CheckConfig check wallet config
func (config *WalletConfig) CheckConfig() error {
	if config.KeygenFile == "" {
		return errors.New("wallet must config 'KeygenFile'")
	}
	return nil
}

// CheckConfig check donation config
func (config *DonationConfig) CheckConfig() error {
	if config.Address == "" {
		return errors.New("donation must config 'Address'")
	}
	if config.Lamports == 0 {
		return errors.New("donation must config nonzero 'Lamports'")
	}
	return nil
}

func checkURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme '%v'", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("empty host")
	}
	return nil
}
