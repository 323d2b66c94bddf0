package mint

import (
	"encoding/json"
	"testing"
)

func TestNewArweavePathManifest(t *testing.T) {
	manifest := NewArweavePathManifest(
		[]AssetRef{
			{TxID: "assetid1", MediaType: ".png"},
			{TxID: "assetid2", MediaType: ".gif"},
		},
		"metadataid",
	)
	if manifest.Manifest != "arweave/paths" || manifest.Version != "0.1.0" {
		t.Fatalf("wrong manifest header: %+v", manifest)
	}
	if manifest.Index.Path != "metadata.json" {
		t.Fatalf("index must point at the metadata document, but %v got", manifest.Index.Path)
	}
	cases := []struct {
		path string
		id   string
	}{
		{"image.png", "assetid1"},
		{"image.gif", "assetid2"},
		{"metadata.json", "metadataid"},
	}
	for _, c := range cases {
		ref, exist := manifest.Paths[c.path]
		if !exist {
			t.Fatalf("missing path %v", c.path)
		}
		if ref.ID != c.id {
			t.Fatalf("path %v expected id %v, but %v got", c.path, c.id, ref.ID)
		}
	}
}

func TestDummyManifestByteSize(t *testing.T) {
	size := DummyManifestByteSize()

	// an arweave txid is 43 base64url characters, the dummy must size
	// like the real single asset manifest
	manifest := NewArweavePathManifest(
		[]AssetRef{{TxID: "fnqiJXSzSiBUnn8cuWrZZCdrH9kYmJmyyb7mBMKWoBM", MediaType: ".png"}},
		"fnqiJXSzSiBUnn8cuWrZZCdrH9kYmJmyyb7mBMKWoBM",
	)
	bs, err := json.Marshal(manifest)
	if err != nil {
		t.Fatalf("marshal manifest: %v", err)
	}
	if size != uint64(len(bs)) {
		t.Fatalf("expected size %v, but %v got", len(bs), size)
	}
}
