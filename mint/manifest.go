package mint

import (
	"encoding/json"
)

// PathRef one entry of the path manifest, an arweave transaction id
type PathRef struct {
	ID string `json:"id"`
}

// ManifestIndex default path served by gateways
type ManifestIndex struct {
	Path string `json:"path"`
}

// ArweavePathManifest maps human readable paths to uploaded items so
// gateways can serve the metadata document by default.
// https://github.com/ArweaveTeam/arweave/blob/master/doc/path-manifest-schema.md
type ArweavePathManifest struct {
	Manifest string             `json:"manifest"`
	Version  string             `json:"version"`
	Paths    map[string]PathRef `json:"paths"`
	Index    ManifestIndex      `json:"index"`
}

// AssetRef links an uploaded asset item to its media type
type AssetRef struct {
	TxID      string
	MediaType string
}

// metadataFileName is the path manifest entry of the metadata document
const metadataFileName = "metadata.json"

// NewArweavePathManifest build the path manifest from the uploaded asset
// items and the metadata item. Assets are keyed image<mediaType>,
// the index points at the metadata document.
func NewArweavePathManifest(assets []AssetRef, metadataTxID string) *ArweavePathManifest {
	paths := make(map[string]PathRef, len(assets)+1)
	for _, asset := range assets {
		paths["image"+asset.MediaType] = PathRef{ID: asset.TxID}
	}
	paths[metadataFileName] = PathRef{ID: metadataTxID}
	return &ArweavePathManifest{
		Manifest: "arweave/paths",
		Version:  "0.1.0",
		Paths:    paths,
		Index:    ManifestIndex{Path: metadataFileName},
	}
}

// DummyManifestByteSize byte size of a single asset path manifest with
// placeholder transaction ids, used when estimating upload cost before
// the real ids exist
func DummyManifestByteSize() uint64 {
	const dummyTxID = "akBSbAEWTf6xDDnrG_BHKaxXjxoGuBnuhMnoYKUCDZo"
	dummy := NewArweavePathManifest(
		[]AssetRef{{TxID: dummyTxID, MediaType: ".png"}},
		dummyTxID,
	)
	bs, err := json.Marshal(dummy)
	if err != nil {
		// fixed content, cannot fail
		panic(err)
	}
	return uint64(len(bs))
}
