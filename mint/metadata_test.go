package mint

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestFormatMetadata(t *testing.T) {
	session := &Session{
		Name:        "My NFT",
		Description: "one of one",
		ExternalURL: "https://example.org",
		Attributes:  []Attribute{{TraitType: "background", Value: "blue"}},
	}
	links := []string{"https://arweave.net/a", "https://arweave.net/b"}
	doc := session.FormatMetadata(links, "image/png")

	if doc.Image != links[0] {
		t.Fatalf("expected image %v, but %v got", links[0], doc.Image)
	}
	if len(doc.Properties.Files) != 2 {
		t.Fatalf("expected 2 files, but %v got", len(doc.Properties.Files))
	}
	if doc.Properties.Category != "image/png" {
		t.Fatalf("expected category image/png, but %v got", doc.Properties.Category)
	}

	bs, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal metadata: %v", err)
	}
	for _, field := range []string{`"trait_type":"background"`, `"external_url":"https://example.org"`, `"name":"My NFT"`} {
		if !strings.Contains(string(bs), field) {
			t.Fatalf("metadata json missing %v: %s", field, bs)
		}
	}
}

func TestFormatMetadataEmptyAttributes(t *testing.T) {
	doc := (&Session{}).FormatMetadata(nil, "")
	bs, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal metadata: %v", err)
	}
	// attributes and files serialize as empty arrays, not null
	if strings.Contains(string(bs), "null") {
		t.Fatalf("metadata json must not contain null: %s", bs)
	}
}

func TestEstimateMetadataByteSize(t *testing.T) {
	session := &Session{
		Name:        "My NFT",
		Description: "one of one",
	}
	size, err := session.EstimateMetadataByteSize(2)
	if err != nil {
		t.Fatalf("estimate metadata size: %v", err)
	}

	// the estimate must match the document with real links of the
	// placeholder length
	link := strings.Repeat("x", 50)
	doc := session.FormatMetadata([]string{link, link}, strings.Repeat("x", 50))
	bs, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal metadata: %v", err)
	}
	if size != uint64(len(bs)) {
		t.Fatalf("expected size %v, but %v got", len(bs), size)
	}

	moreAssets, err := session.EstimateMetadataByteSize(3)
	if err != nil {
		t.Fatalf("estimate metadata size: %v", err)
	}
	if moreAssets <= size {
		t.Fatalf("more assets must grow the estimate: %v <= %v", moreAssets, size)
	}
}
