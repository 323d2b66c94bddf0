package mint

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/justmint/JustMint/bundlr"
	"github.com/justmint/JustMint/params"
)

type fakeNode struct {
	t        *testing.T
	price    string
	balance  string
	served   map[string]bool
	uploaded []string
	attempts int
	bogusID  string
}

func (n *fakeNode) handler(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodHead:
		id := strings.TrimPrefix(r.URL.Path, "/")
		if n.served[id] {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusNotFound)
		}
	case strings.HasPrefix(r.URL.Path, "/price/solana/"):
		fmt.Fprint(w, n.price)
	case r.URL.Path == "/account/balance/solana" && r.Method == http.MethodGet:
		fmt.Fprintf(w, `{"balance":%s}`, n.balance)
	case r.URL.Path == "/tx/solana" && r.Method == http.MethodPost:
		n.attempts++
		if n.bogusID != "" {
			fmt.Fprintf(w, `{"id":"%s"}`, n.bogusID)
			return
		}
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			n.t.Errorf("read upload body: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		item, err := bundlr.UnmarshalDataItem(raw)
		if err != nil {
			n.t.Errorf("decode uploaded item: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if err = item.Verify(); err != nil {
			n.t.Errorf("verify uploaded item: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		n.uploaded = append(n.uploaded, item.ID())
		fmt.Fprintf(w, `{"id":"%s"}`, item.ID())
	default:
		n.t.Errorf("unexpected request %v %v", r.Method, r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	}
}

func newFakeNode(t *testing.T) (*fakeNode, *bundlr.Client) {
	node := &fakeNode{t: t, price: "10", balance: "1000000", served: map[string]bool{}}
	srv := httptest.NewServer(http.HandlerFunc(node.handler))
	t.Cleanup(srv.Close)
	client := bundlr.NewClient(&params.BundlrConfig{
		Node:     srv.URL,
		Gateway:  srv.URL,
		Currency: "solana",
	})
	return node, client
}

func testSession(t *testing.T) *Session {
	t.Helper()
	return &Session{
		Name:        "My NFT",
		Description: "one of one",
		Assets: []*Asset{{
			Name:        "cat.png",
			ContentType: "image/png",
			Data:        []byte("pretend png bytes"),
		}},
	}
}

func TestBundlrUpload(t *testing.T) {
	node, client := newFakeNode(t)
	session := testSession(t)
	signer, err := DeriveSigner(testWallet(t, 1))
	if err != nil {
		t.Fatalf("derive signer: %v", err)
	}

	metadataLink, err := session.BundlrUpload(client, signer)
	if err != nil {
		t.Fatalf("bundlr upload: %v", err)
	}

	if len(session.Uploaded) != 3 {
		t.Fatalf("expected 3 upload records, but %v got", len(session.Uploaded))
	}
	expectedNames := []string{"cat.png", "metadata.json", "arweave-manifest"}
	for i, record := range session.Uploaded {
		if record.Name != expectedNames[i] {
			t.Fatalf("record %v expected name %v, but %v got", i, expectedNames[i], record.Name)
		}
		if record.Arweave == "" {
			t.Fatalf("record %v has no arweave id", i)
		}
	}
	if len(node.uploaded) != 3 {
		t.Fatalf("expected 3 node uploads, but %v got", len(node.uploaded))
	}
	metadataID := session.Uploaded[1].Arweave
	if metadataLink != client.ItemURL(metadataID) {
		t.Fatalf("expected metadata link %v, but %v got", client.ItemURL(metadataID), metadataLink)
	}
}

func TestBundlrUploadWrongStoredID(t *testing.T) {
	node, client := newFakeNode(t)
	node.bogusID = "notwhatwassigned"
	session := testSession(t)
	signer, err := DeriveSigner(testWallet(t, 1))
	if err != nil {
		t.Fatalf("derive signer: %v", err)
	}

	_, err = session.BundlrUpload(client, signer)
	if err == nil || !strings.Contains(err.Error(), "failed to upload some assets") {
		t.Fatalf("expected upload failure to block the mint, but %v got", err)
	}
	// one failed item must not stop the remaining uploads
	if node.attempts != 3 {
		t.Fatalf("expected 3 upload attempts, but %v got", node.attempts)
	}
	for i, record := range session.Uploaded {
		if record.Arweave != "" {
			t.Fatalf("record %v expected no arweave id, but %v got", i, record.Arweave)
		}
	}
}

func TestBundlrUploadInsufficientBalance(t *testing.T) {
	node, client := newFakeNode(t)
	node.balance = "1"
	signer, err := DeriveSigner(testWallet(t, 1))
	if err != nil {
		t.Fatalf("derive signer: %v", err)
	}

	_, err = testSession(t).BundlrUpload(client, signer)
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected insufficient balance error, but %v got", err)
	}
	if len(node.uploaded) != 0 {
		t.Fatalf("must not upload when the balance is short, but %v uploads got", len(node.uploaded))
	}
}

func TestBundlrUploadNoAssets(t *testing.T) {
	_, client := newFakeNode(t)
	signer, err := DeriveSigner(testWallet(t, 1))
	if err != nil {
		t.Fatalf("derive signer: %v", err)
	}
	if _, err = (&Session{}).BundlrUpload(client, signer); err == nil {
		t.Fatalf("expected error without assets, but got none")
	}
}

func TestBundlrUploadResume(t *testing.T) {
	node, client := newFakeNode(t)
	session := testSession(t)
	signer, err := DeriveSigner(testWallet(t, 1))
	if err != nil {
		t.Fatalf("derive signer: %v", err)
	}

	if _, err = session.BundlrUpload(client, signer); err != nil {
		t.Fatalf("first upload: %v", err)
	}
	firstRecords := append([]UploadMeta{}, session.Uploaded...)
	node.uploaded = nil

	// a second run finds every id recorded and skips the node entirely
	if _, err = session.BundlrUpload(client, signer); err != nil {
		t.Fatalf("second upload: %v", err)
	}
	if len(node.uploaded) != 0 {
		t.Fatalf("resume must not upload again, but %v uploads got", len(node.uploaded))
	}
	for i, record := range session.Uploaded {
		if record != firstRecords[i] {
			t.Fatalf("record %v changed on resume: %+v != %+v", i, record, firstRecords[i])
		}
	}
}

func TestBundlrUploadGatewaySkip(t *testing.T) {
	node, client := newFakeNode(t)
	session := testSession(t)
	signer, err := DeriveSigner(testWallet(t, 1))
	if err != nil {
		t.Fatalf("derive signer: %v", err)
	}

	// mark the asset item as already served by the gateway
	assetItem := bundlr.NewDataItem(session.Assets[0].Data, []bundlr.Tag{
		{Name: "Content-Type", Value: session.Assets[0].ContentType},
	})
	if err = assetItem.Sign(signer); err != nil {
		t.Fatalf("sign asset item: %v", err)
	}
	node.served[assetItem.ID()] = true

	if _, err = session.BundlrUpload(client, signer); err != nil {
		t.Fatalf("bundlr upload: %v", err)
	}
	// only metadata and manifest hit the node
	if len(node.uploaded) != 2 {
		t.Fatalf("expected 2 node uploads, but %v got", len(node.uploaded))
	}
	if session.Uploaded[0].Arweave != assetItem.ID() {
		t.Fatalf("asset record must keep the gateway id, but %v got", session.Uploaded[0].Arweave)
	}
}
