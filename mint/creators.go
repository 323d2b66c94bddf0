package mint

import (
	"fmt"
	"strconv"

	"github.com/justmint/JustMint/solana/programs/metaplex"
	"github.com/justmint/JustMint/solana/types"
)

// Creator is one royalty recipient of the minted NFT
type Creator struct {
	Address string `json:"address"`
	Share   string `json:"share"`
}

// CheckCreators validate creator addresses and that integer shares
// add up to exactly 100
func CheckCreators(creators []Creator) error {
	total := int64(0)
	for _, creator := range creators {
		if _, err := types.PublicKeyFromBase58(creator.Address); err != nil {
			return fmt.Errorf("invalid creator pubkey %v: %w", creator.Address, err)
		}
		share, err := strconv.ParseInt(creator.Share, 10, 64)
		if err != nil {
			return fmt.Errorf("could not parse share for %v", creator.Address)
		}
		if share < 0 {
			return fmt.Errorf("negative share for %v", creator.Address)
		}
		total += share
	}
	if total != 100 {
		return fmt.Errorf("creator shares must add up to 100. Got %v", total)
	}
	return nil
}

// BuildCreators convert creators to on-chain form. Only the wallet
// itself may be marked verified.
func BuildCreators(walletKey types.PublicKey, creators []Creator) ([]metaplex.Creator, error) {
	if err := CheckCreators(creators); err != nil {
		return nil, err
	}
	out := make([]metaplex.Creator, 0, len(creators))
	for _, creator := range creators {
		address, err := types.PublicKeyFromBase58(creator.Address)
		if err != nil {
			return nil, fmt.Errorf("invalid creator pubkey %v: %w", creator.Address, err)
		}
		share, err := strconv.ParseInt(creator.Share, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("could not parse share for %v", creator.Address)
		}
		if share > 100 {
			return nil, fmt.Errorf("share for %v exceeds 100", creator.Address)
		}
		out = append(out, metaplex.Creator{
			Address:  address,
			Verified: address.Equals(walletKey),
			Share:    uint8(share),
		})
	}
	return out, nil
}

// RequiredCreators the creator list every mint starts from,
// the wallet itself with the full share
func RequiredCreators(walletKey types.PublicKey) []Creator {
	return []Creator{{Address: walletKey.String(), Share: "100"}}
}
