package mint

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/justmint/JustMint/bundlr"
	"github.com/justmint/JustMint/params"
)

func TestRecoverFunding(t *testing.T) {
	var reported []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/account/balance/solana" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %v %v", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var body struct {
			TxID string `json:"tx_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode fund report: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		reported = append(reported, body.TxID)
	}))
	t.Cleanup(srv.Close)
	client := bundlr.NewClient(&params.BundlrConfig{
		Node:     srv.URL,
		Currency: "solana",
	})

	session := &Session{}
	flow := NewFlow(nil, client, nil, session)
	if err := flow.RecoverFunding("sometxhash"); err != nil {
		t.Fatalf("recover funding: %v", err)
	}
	if len(reported) != 1 || reported[0] != "sometxhash" {
		t.Fatalf("expected tx hash reported once, but %v got", reported)
	}
	if session.FundTxHash != "" {
		t.Fatalf("expected recorded hash cleared, but %v got", session.FundTxHash)
	}

	if err := flow.RecoverFunding(""); err == nil {
		t.Fatalf("expected error on empty tx hash, but nil got")
	}
}
