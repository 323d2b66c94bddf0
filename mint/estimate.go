package mint

import (
	"fmt"
	"math/big"

	"github.com/justmint/JustMint/bundlr"
	"github.com/justmint/JustMint/log"
)

// lamports per sol
const LamportsPerSol = 1_000_000_000

// EstimatePrice quote the total upload cost of the session in atomic
// units. Each pending item is priced individually, the metadata document
// and path manifest sizes are stood in with placeholders since their
// content depends on item ids that do not exist yet.
func (s *Session) EstimatePrice(client *bundlr.Client) (*big.Int, error) {
	metadataSize, err := s.EstimateMetadataByteSize(len(s.Assets))
	if err != nil {
		return nil, fmt.Errorf("estimate metadata size: %w", err)
	}
	lengths := make([]uint64, 0, len(s.Assets)+2)
	for _, asset := range s.Assets {
		lengths = append(lengths, asset.Size())
	}
	lengths = append(lengths, metadataSize, DummyManifestByteSize())

	return sumPrices(client, lengths)
}

func sumPrices(client *bundlr.Client, lengths []uint64) (*big.Int, error) {
	total := new(big.Int)
	for _, length := range lengths {
		price, err := client.GetPrice(length)
		if err != nil {
			return nil, err
		}
		total.Add(total, price)
	}
	log.Debug("summed upload price", "items", len(lengths), "total", total.String())
	return total, nil
}

// FormatSol render an atomic unit amount as a decimal sol string
// without losing precision
func FormatSol(amount *big.Int) string {
	rat := new(big.Rat).SetFrac(amount, big.NewInt(LamportsPerSol))
	out := rat.FloatString(9)
	// trim trailing zeros but keep at least one decimal digit
	for len(out) > 0 && out[len(out)-1] == '0' {
		out = out[:len(out)-1]
	}
	if len(out) > 0 && out[len(out)-1] == '.' {
		out += "0"
	}
	return out
}
