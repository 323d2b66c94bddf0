package mint

import (
	"encoding/json"
	"strings"
)

// Attribute one display attribute of the NFT metadata document
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// MetadataProperties file listing of the metadata document
type MetadataProperties struct {
	Files    []string `json:"files"`
	Category string   `json:"category"`
}

// MetadataDocument is the off-chain metadata.json content
type MetadataDocument struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Image       string             `json:"image"`
	ExternalURL string             `json:"external_url"`
	Attributes  []Attribute        `json:"attributes"`
	Properties  MetadataProperties `json:"properties"`
}

// FormatMetadata build the metadata document from the form state and
// the asset links. The first link doubles as the image.
func (s *Session) FormatMetadata(assetLinks []string, category string) *MetadataDocument {
	image := ""
	if len(assetLinks) > 0 {
		image = assetLinks[0]
	}
	attributes := s.Attributes
	if attributes == nil {
		attributes = []Attribute{}
	}
	return &MetadataDocument{
		Name:        s.Name,
		Description: s.Description,
		Image:       image,
		ExternalURL: s.ExternalURL,
		Attributes:  attributes,
		Properties: MetadataProperties{
			Files:    append([]string{}, assetLinks...),
			Category: category,
		},
	}
}

// placeholderLinkLength is the byte length stand-in used for each not yet
// known asset link when estimating the metadata document size
const placeholderLinkLength = 50

// EstimateMetadataByteSize byte size of the metadata document with
// placeholder links, used before the real item ids exist
func (s *Session) EstimateMetadataByteSize(assetCount int) (uint64, error) {
	placeholder := strings.Repeat(" ", placeholderLinkLength)
	links := make([]string, assetCount)
	for i := range links {
		links[i] = placeholder
	}
	doc := s.FormatMetadata(links, placeholder)
	bs, err := json.Marshal(doc)
	if err != nil {
		return 0, err
	}
	return uint64(len(bs)), nil
}
