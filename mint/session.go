package mint

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/justmint/JustMint/common"
	"github.com/justmint/JustMint/log"
	"github.com/justmint/JustMint/solana/types"
)

// sessionFileName is the persisted session file under the data dir
const sessionFileName = "session.json"

// UploadMeta records the upload outcome of one item.
// Arweave is empty when the upload failed.
type UploadMeta struct {
	Name    string `json:"name"`
	Arweave string `json:"arweave"`
}

// Asset one file to upload
type Asset struct {
	Name        string
	ContentType string
	Data        []byte
}

// Size asset byte size
func (a *Asset) Size() uint64 {
	return uint64(len(a.Data))
}

// MediaType file extension of the asset including the leading dot
func (a *Asset) MediaType() string {
	ext := filepath.Ext(a.Name)
	if ext != "" {
		return ext
	}
	exts, err := mime.ExtensionsByType(a.ContentType)
	if err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}

// LoadAsset read an asset file and sniff its content type
func LoadAsset(file string) (*Asset, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("load asset '%v': %w", file, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("load asset '%v': empty file", file)
	}
	contentType := mime.TypeByExtension(filepath.Ext(file))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	// strip optional parameters like charset
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	return &Asset{
		Name:        filepath.Base(file),
		ContentType: contentType,
		Data:        data,
	}, nil
}

// Session holds the form state and intermediate results of one mint.
// It survives restarts through the data dir so interrupted flows can
// resume without repeating funded uploads.
type Session struct {
	Name                 string       `json:"name"`
	Description          string       `json:"description"`
	ExternalURL          string       `json:"externalUrl"`
	Attributes           []Attribute  `json:"attributes"`
	SellerFeeBasisPoints uint16       `json:"sellerFeeBasisPoints"`
	Creators             []Creator    `json:"creators"`
	MaxEditions          uint64       `json:"maxEditions"`
	Signer               string       `json:"bundlrSigner,omitempty"`
	FundTxHash           string       `json:"fundTxHash,omitempty"`
	Uploaded             []UploadMeta `json:"uploaded,omitempty"`

	Assets []*Asset `json:"-"`

	path string
}

// LoadSession read the persisted session of the data dir,
// returning an empty session when none exists yet
func LoadSession(dataDir string) (*Session, error) {
	session := &Session{}
	if dataDir == "" {
		return session, nil
	}
	session.path = filepath.Join(dataDir, sessionFileName)
	if !common.FileExist(session.path) {
		return session, nil
	}
	bs, err := os.ReadFile(session.path)
	if err != nil {
		return nil, fmt.Errorf("load session '%v': %w", session.path, err)
	}
	if err = json.Unmarshal(bs, session); err != nil {
		return nil, fmt.Errorf("parse session '%v': %w", session.path, err)
	}
	log.Info("loaded session", "path", session.path, "name", session.Name)
	return session, nil
}

// Save persist the session when a data dir is configured
func (s *Session) Save() error {
	if s.path == "" {
		return nil
	}
	bs, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}
	return os.WriteFile(s.path, bs, 0600)
}

// OnWalletConnected derive and cache the upload signer on first connect
func (s *Session) OnWalletConnected(wallet *types.Account) (*types.Account, error) {
	if s.Signer != "" {
		signer, err := DecodeSigner(s.Signer)
		if err == nil {
			return signer, nil
		}
		log.Warn("cached signer is invalid, deriving again", "err", err)
	}
	signer, err := DeriveSigner(wallet)
	if err != nil {
		return nil, err
	}
	s.Signer = EncodeSigner(signer)
	if err = s.Save(); err != nil {
		return nil, err
	}
	return signer, nil
}

// OnWalletDisconnected drop the cached signer
func (s *Session) OnWalletDisconnected() error {
	s.Signer = ""
	return s.Save()
}

// AllCreators the creator list of the form state, defaulting to the
// wallet holding the full share when none were given
func (s *Session) AllCreators(walletKey types.PublicKey) []Creator {
	if len(s.Creators) == 0 {
		return RequiredCreators(walletKey)
	}
	return s.Creators
}
