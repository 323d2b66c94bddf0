package mint

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"sync"

	mapset "github.com/deckarep/golang-set"
	"github.com/justmint/JustMint/bundlr"
	"github.com/justmint/JustMint/log"
	"github.com/justmint/JustMint/solana/types"
)

// AppName tag value attached to the metadata and manifest items
const AppName = "Just Mint"

var (
	baseTags = []bundlr.Tag{{Name: "App-Name", Value: AppName}}

	metadataTags = append(baseTags[:len(baseTags):len(baseTags)],
		bundlr.Tag{Name: "Content-Type", Value: "application/json"})

	pathManifestTags = append(baseTags[:len(baseTags):len(baseTags)],
		bundlr.Tag{Name: "Content-Type", Value: "application/x.arweave-manifest+json"})
)

// manifestItemName names the path manifest entry of the upload records
const manifestItemName = "arweave-manifest"

// ErrInsufficientBalance the node balance does not cover the upload
var ErrInsufficientBalance = errors.New("please fund your bundlr wallet first")

// BundlrUpload sign and upload all items of the session: every asset,
// the metadata document linking them, and the path manifest linking
// both. Items are uploaded in order and recorded per item; items the
// gateway already serves are skipped so an interrupted upload can be
// resumed without paying twice. Returns the gateway link of the
// metadata document.
func (s *Session) BundlrUpload(client *bundlr.Client, signer *types.Account) (metadataLink string, err error) {
	if len(s.Assets) == 0 {
		return "", errors.New("must upload at least 1 asset")
	}

	items := make([]*bundlr.DataItem, len(s.Assets), len(s.Assets)+2)
	names := make([]string, len(s.Assets), len(s.Assets)+2)
	signErrs := make([]error, len(s.Assets))
	var wg sync.WaitGroup
	for i, asset := range s.Assets {
		items[i] = bundlr.NewDataItem(asset.Data, []bundlr.Tag{
			{Name: "Content-Type", Value: asset.ContentType},
		})
		names[i] = asset.Name
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			signErrs[i] = items[i].Sign(signer)
		}(i)
	}
	wg.Wait()
	for i, signErr := range signErrs {
		if signErr != nil {
			return "", fmt.Errorf("sign asset '%v': %w", s.Assets[i].Name, signErr)
		}
		log.Debug("signed asset item", "name", names[i], "id", items[i].ID())
	}

	assetLinks := make([]string, len(items))
	for i, item := range items {
		assetLinks[i] = client.ItemURL(item.ID())
	}
	metadataDoc := s.FormatMetadata(assetLinks, s.Assets[0].ContentType)
	metadataBytes, err := json.Marshal(metadataDoc)
	if err != nil {
		return "", fmt.Errorf("encode metadata: %w", err)
	}
	metadataItem := bundlr.NewDataItem(metadataBytes, metadataTags)
	if err = metadataItem.Sign(signer); err != nil {
		return "", fmt.Errorf("sign metadata: %w", err)
	}
	items = append(items, metadataItem)
	names = append(names, metadataFileName)

	assetRefs := make([]AssetRef, len(s.Assets))
	for i, asset := range s.Assets {
		assetRefs[i] = AssetRef{TxID: items[i].ID(), MediaType: asset.MediaType()}
	}
	pathManifest := NewArweavePathManifest(assetRefs, metadataItem.ID())
	pathManifestBytes, err := json.Marshal(pathManifest)
	if err != nil {
		return "", fmt.Errorf("encode path manifest: %w", err)
	}
	pathManifestItem := bundlr.NewDataItem(pathManifestBytes, pathManifestTags)
	if err = pathManifestItem.Sign(signer); err != nil {
		return "", fmt.Errorf("sign path manifest: %w", err)
	}
	items = append(items, pathManifestItem)
	names = append(names, manifestItemName)

	// final quote over the exact item payloads
	lengths := make([]uint64, len(items))
	for i, item := range items {
		lengths[i] = uint64(len(item.Data))
	}
	price, err := sumPrices(client, lengths)
	if err != nil {
		return "", err
	}
	log.Info("bundlr price", "total", price.String(), "sol", FormatSol(price))

	signerKey := signer.PublicKey()
	balance, err := client.GetBalance(signerKey.String())
	if err != nil {
		return "", err
	}
	if balance.Cmp(price) < 0 {
		log.Warn("node balance below price", "balance", balance.String(), "price", price.String())
		return "", ErrInsufficientBalance
	}

	s.Uploaded = s.uploadItems(client, items, names)
	if err = s.Save(); err != nil {
		return "", err
	}

	for _, record := range s.Uploaded {
		if record.Arweave == "" {
			return "", errors.New("failed to upload some assets")
		}
	}
	return client.ItemURL(s.Uploaded[len(s.Assets)].Arweave), nil
}

func (s *Session) uploadItems(client *bundlr.Client, items []*bundlr.DataItem, names []string) []UploadMeta {
	// ids confirmed in an earlier run need no second upload
	knownIDs := mapset.NewSet()
	for _, record := range s.Uploaded {
		if record.Arweave != "" {
			knownIDs.Add(record.Arweave)
		}
	}

	uploaded := make([]UploadMeta, 0, len(items))
	for idx, item := range items {
		name := names[idx]
		id := item.ID()

		if knownIDs.Contains(id) {
			log.Info("item already uploaded", "name", name, "id", id)
			uploaded = append(uploaded, UploadMeta{Name: name, Arweave: id})
			continue
		}
		if exists, err := client.ItemExists(id); err == nil && exists {
			log.Info("item already on gateway", "name", name, "id", id)
			uploaded = append(uploaded, UploadMeta{Name: name, Arweave: id})
			continue
		}

		resID, err := client.UploadDataItem(item)
		if err != nil {
			log.Warn("failed to upload item", "name", name, "err", err)
			uploaded = append(uploaded, UploadMeta{Name: name, Arweave: ""})
			continue
		}
		log.Info("uploaded item", "name", name, "id", resID, "url", client.ItemURL(resID))
		uploaded = append(uploaded, UploadMeta{Name: name, Arweave: resID})
	}
	return uploaded
}

// UploadPrice quote the exact upload cost of already signed item sizes
func UploadPrice(client *bundlr.Client, items []*bundlr.DataItem) (*big.Int, error) {
	lengths := make([]uint64, len(items))
	for i, item := range items {
		lengths[i] = uint64(len(item.Data))
	}
	return sumPrices(client, lengths)
}
