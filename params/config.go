package params

import (
	"encoding/json"

	"github.com/BurntSushi/toml"
	"github.com/justmint/JustMint/common"
	"github.com/justmint/JustMint/log"
)

// mint config constants
const (
	MintIdentifierPrefix = "justmint"

	defaultBundlrGateway         = "https://arweave.net"
	defaultBundlrCurrency        = "solana"
	defaultFundMultiplierPercent = 110
)

var (
	mintConfig = &MintConfig{}
	locDataDir string
)

// MintConfig config
type MintConfig struct {
	Identifier string

	Gateway  *GatewayConfig
	Bundlr   *BundlrConfig
	Wallet   *WalletConfig
	Donation *DonationConfig `toml:",omitempty" json:",omitempty"`
	Extra    *ExtraConfig    `toml:",omitempty" json:",omitempty"`
}

// GatewayConfig solana cluster rpc gateways
type GatewayConfig struct {
	APIAddress    []string
	APIAddressExt []string `toml:",omitempty" json:",omitempty"`
}

// BundlrConfig bundlr node and arweave gateway config
type BundlrConfig struct {
	Node     string
	Gateway  string `toml:",omitempty" json:",omitempty"`
	Currency string `toml:",omitempty" json:",omitempty"`

	// percent multiplier applied on top of the quoted upload price
	// when funding, eg. 110 funds 1.1x the quote
	FundMultiplierPercent uint64 `toml:",omitempty" json:",omitempty"`
}

// WalletConfig local wallet config
type WalletConfig struct {
	KeygenFile string `json:"-"`
}

// DonationConfig optional donation transfer appended to the mint transaction
type DonationConfig struct {
	Address  string
	Lamports uint64
}

// ExtraConfig extra config
type ExtraConfig struct {
	IsDebugMode   bool `toml:",omitempty" json:",omitempty"`
	SkipPreflight bool `toml:",omitempty" json:",omitempty"`
}

// GetMintConfig get mint config
func GetMintConfig() *MintConfig {
	return mintConfig
}

// GetIdentifier get identifier
func GetIdentifier() string {
	return GetMintConfig().Identifier
}

// GetGatewayConfig get gateway config
func GetGatewayConfig() *GatewayConfig {
	return GetMintConfig().Gateway
}

// GetBundlrConfig get bundlr config
func GetBundlrConfig() *BundlrConfig {
	return GetMintConfig().Bundlr
}

// GetWalletConfig get wallet config
func GetWalletConfig() *WalletConfig {
	return GetMintConfig().Wallet
}

// GetDonationConfig get donation config, may be nil
func GetDonationConfig() *DonationConfig {
	return GetMintConfig().Donation
}

// GetExtraConfig get extra config
func GetExtraConfig() *ExtraConfig {
	return GetMintConfig().Extra
}

// GetFundMultiplierPercent get fund multiplier percent
func GetFundMultiplierPercent() uint64 {
	bundlrCfg := GetBundlrConfig()
	if bundlrCfg != nil && bundlrCfg.FundMultiplierPercent > 0 {
		return bundlrCfg.FundMultiplierPercent
	}
	return defaultFundMultiplierPercent
}

// GetBundlrGateway get arweave gateway base url
func GetBundlrGateway() string {
	bundlrCfg := GetBundlrConfig()
	if bundlrCfg != nil && bundlrCfg.Gateway != "" {
		return bundlrCfg.Gateway
	}
	return defaultBundlrGateway
}

// GetBundlrCurrency get bundlr payment currency
func GetBundlrCurrency() string {
	bundlrCfg := GetBundlrConfig()
	if bundlrCfg != nil && bundlrCfg.Currency != "" {
		return bundlrCfg.Currency
	}
	return defaultBundlrCurrency
}

// IsDebugMode is debug mode, add more debugging log infos
func IsDebugMode() bool {
	return GetExtraConfig() != nil && GetExtraConfig().IsDebugMode
}

// SkipPreflight skip preflight simulation when sending transactions
func SkipPreflight() bool {
	return GetExtraConfig() != nil && GetExtraConfig().SkipPreflight
}

// LoadMintConfig load mint config
func LoadMintConfig(configFile string) *MintConfig {
	if configFile == "" {
		log.Fatal("must specify config file")
	}
	log.Info("load mint config file", "configFile", configFile)
	if !common.FileExist(configFile) {
		log.Fatalf("LoadMintConfig error: config file '%v' not exist", configFile)
	}
	config := &MintConfig{}
	if _, err := toml.DecodeFile(configFile, &config); err != nil {
		log.Fatalf("LoadMintConfig error (toml DecodeFile): %v", err)
	}

	mintConfig = config

	var bs []byte
	if log.JSONFormat {
		bs, _ = json.Marshal(config)
	} else {
		bs, _ = json.MarshalIndent(config, "", "  ")
	}
	log.Println("LoadMintConfig finished.", string(bs))

	if err := config.CheckConfig(); err != nil {
		log.Fatalf("Check config failed. %v", err)
	}

	return mintConfig
}

// SetDataDir set data dir
func SetDataDir(dir string) {
	if dir == "" {
		log.Warn("suggest specify '--datadir' to persist mint sessions")
		return
	}
	currDir, err := common.CurrentDir()
	if err != nil {
		log.Fatal("get current dir failed", "err", err)
	}
	locDataDir = common.AbsolutePath(currDir, dir)
	log.Info("set data dir success", "datadir", locDataDir)
}

// GetDataDir get data dir
func GetDataDir() string {
	return locDataDir
}
