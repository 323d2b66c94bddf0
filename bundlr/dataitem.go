package bundlr

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/justmint/JustMint/solana/types"
)

// SignatureTypeED25519 is the ANS-104 signature type of solana keys
const SignatureTypeED25519 uint16 = 2

// ed25519 signature config constants
const (
	ed25519SignatureLength = 64
	ed25519OwnerLength     = 32
)

// DataItem is a single ANS-104 bundle item
type DataItem struct {
	SignatureType uint16
	Signature     []byte
	Owner         []byte
	Target        []byte
	Anchor        []byte
	Tags          []Tag
	Data          []byte
}

// NewDataItem new unsigned data item
func NewDataItem(data []byte, tags []Tag) *DataItem {
	return &DataItem{
		SignatureType: SignatureTypeED25519,
		Tags:          tags,
		Data:          data,
	}
}

// SigningDigest deep hash digest the owner signs
func (d *DataItem) SigningDigest() ([]byte, error) {
	tagBytes, err := EncodeTags(d.Tags)
	if err != nil {
		return nil, err
	}
	digest := deepHash([]deepHashChunk{
		[]byte("dataitem"),
		[]byte("1"),
		[]byte(fmt.Sprintf("%d", d.SignatureType)),
		d.Owner,
		d.Target,
		d.Anchor,
		tagBytes,
		d.Data,
	})
	return digest[:], nil
}

// Sign sign the data item with account and set owner and signature
func (d *DataItem) Sign(account *types.Account) (err error) {
	pubKey := account.PublicKey()
	d.Owner = pubKey[:]
	digest, err := d.SigningDigest()
	if err != nil {
		return err
	}
	sig, err := account.PrivateKey.Sign(digest)
	if err != nil {
		return err
	}
	d.Signature = sig[:]
	return nil
}

// Verify check the signature matches the owner and content
func (d *DataItem) Verify() error {
	if len(d.Signature) != ed25519SignatureLength {
		return fmt.Errorf("wrong signature length %v", len(d.Signature))
	}
	if len(d.Owner) != ed25519OwnerLength {
		return fmt.Errorf("wrong owner length %v", len(d.Owner))
	}
	digest, err := d.SigningDigest()
	if err != nil {
		return err
	}
	if !ed25519.Verify(ed25519.PublicKey(d.Owner), digest, d.Signature) {
		return errors.New("invalid data item signature")
	}
	return nil
}

// ID base64url encoded sha256 of the signature
func (d *DataItem) ID() string {
	idHash := sha256.Sum256(d.Signature)
	return base64.RawURLEncoding.EncodeToString(idHash[:])
}

// Marshal serialize the signed item to the ANS-104 binary layout
func (d *DataItem) Marshal() ([]byte, error) {
	if len(d.Signature) != ed25519SignatureLength {
		return nil, fmt.Errorf("marshal unsigned data item (signature length %v)", len(d.Signature))
	}
	if len(d.Owner) != ed25519OwnerLength {
		return nil, fmt.Errorf("wrong owner length %v", len(d.Owner))
	}
	tagBytes, err := EncodeTags(d.Tags)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	var u16 [2]byte
	binary.LittleEndian.PutUint16(u16[:], d.SignatureType)
	buf.Write(u16[:])
	buf.Write(d.Signature)
	buf.Write(d.Owner)

	if err = writeOptionalField(buf, d.Target, "target"); err != nil {
		return nil, err
	}
	if err = writeOptionalField(buf, d.Anchor, "anchor"); err != nil {
		return nil, err
	}

	var u64 [8]byte
	binary.LittleEndian.PutUint64(u64[:], uint64(len(d.Tags)))
	buf.Write(u64[:])
	binary.LittleEndian.PutUint64(u64[:], uint64(len(tagBytes)))
	buf.Write(u64[:])
	buf.Write(tagBytes)

	buf.Write(d.Data)
	return buf.Bytes(), nil
}

func writeOptionalField(buf *bytes.Buffer, field []byte, name string) error {
	if len(field) == 0 {
		buf.WriteByte(0)
		return nil
	}
	if len(field) != 32 {
		return fmt.Errorf("wrong %s length %v", name, len(field))
	}
	buf.WriteByte(1)
	buf.Write(field)
	return nil
}

// UnmarshalDataItem parse a binary data item. Only ed25519 items are supported.
func UnmarshalDataItem(data []byte) (*DataItem, error) {
	rd := bytes.NewReader(data)
	var u16 [2]byte
	if _, err := io.ReadFull(rd, u16[:]); err != nil {
		return nil, err
	}
	sigType := binary.LittleEndian.Uint16(u16[:])
	if sigType != SignatureTypeED25519 {
		return nil, fmt.Errorf("unsupported signature type %v", sigType)
	}

	item := &DataItem{SignatureType: sigType}
	item.Signature = make([]byte, ed25519SignatureLength)
	if _, err := io.ReadFull(rd, item.Signature); err != nil {
		return nil, err
	}
	item.Owner = make([]byte, ed25519OwnerLength)
	if _, err := io.ReadFull(rd, item.Owner); err != nil {
		return nil, err
	}

	var err error
	if item.Target, err = readOptionalField(rd); err != nil {
		return nil, fmt.Errorf("read target: %w", err)
	}
	if item.Anchor, err = readOptionalField(rd); err != nil {
		return nil, fmt.Errorf("read anchor: %w", err)
	}

	var u64 [8]byte
	if _, err = io.ReadFull(rd, u64[:]); err != nil {
		return nil, err
	}
	tagCount := binary.LittleEndian.Uint64(u64[:])
	if _, err = io.ReadFull(rd, u64[:]); err != nil {
		return nil, err
	}
	tagBytesLength := binary.LittleEndian.Uint64(u64[:])
	if tagBytesLength > uint64(rd.Len()) {
		return nil, fmt.Errorf("tag bytes length %v exceeds remaining %v", tagBytesLength, rd.Len())
	}
	tagBytes := make([]byte, tagBytesLength)
	if _, err = io.ReadFull(rd, tagBytes); err != nil {
		return nil, err
	}
	if item.Tags, err = DecodeTags(tagBytes); err != nil {
		return nil, err
	}
	if uint64(len(item.Tags)) != tagCount {
		return nil, fmt.Errorf("tag count mismatch: header %v decoded %v", tagCount, len(item.Tags))
	}

	item.Data = make([]byte, rd.Len())
	if len(item.Data) > 0 {
		if _, err = io.ReadFull(rd, item.Data); err != nil {
			return nil, err
		}
	}
	return item, nil
}

func readOptionalField(rd *bytes.Reader) ([]byte, error) {
	presence, err := rd.ReadByte()
	if err != nil {
		return nil, err
	}
	switch presence {
	case 0:
		return nil, nil
	case 1:
		field := make([]byte, 32)
		if _, err = io.ReadFull(rd, field); err != nil {
			return nil, err
		}
		return field, nil
	default:
		return nil, fmt.Errorf("wrong presence byte %v", presence)
	}
}
