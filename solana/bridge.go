package solana

import (
	"github.com/justmint/JustMint/params"
)

// Bridge solana rpc bridge
type Bridge struct {
	GatewayConfig *params.GatewayConfig
}

// NewBridge new bridge
func NewBridge(gateway *params.GatewayConfig) *Bridge {
	return &Bridge{GatewayConfig: gateway}
}
