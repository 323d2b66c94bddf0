package bundlr

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/justmint/JustMint/params"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(&params.BundlrConfig{
		Node:     srv.URL,
		Gateway:  srv.URL,
		Currency: "solana",
	})
}

func TestGetPrice(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/price/solana/1024", r.URL.Path)
		fmt.Fprint(w, "746725")
	})
	price, err := c.GetPrice(1024)
	require.NoError(t, err)
	require.Equal(t, "746725", price.String())
}

func TestGetPriceWrongBody(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "not a number")
	})
	_, err := c.GetPrice(1)
	require.Error(t, err)
}

func TestGetBalance(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/account/balance/solana", r.URL.Path)
		require.Equal(t, "someaddress", r.URL.Query().Get("address"))
		fmt.Fprint(w, `{"balance":1000000}`)
	})
	balance, err := c.GetBalance("someaddress")
	require.NoError(t, err)
	require.Equal(t, "1000000", balance.String())
}

func TestGetBundlerAddress(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/info", r.URL.Path)
		fmt.Fprint(w, `{"version":"0.2.0","addresses":{"arweave":"ar","solana":"DHyDV2ZjN3rB6qNGXS48dP5onfbZd3fAEz6C5HJwSqRD"}}`)
	})
	address, err := c.GetBundlerAddress()
	require.NoError(t, err)
	require.Equal(t, "DHyDV2ZjN3rB6qNGXS48dP5onfbZd3fAEz6C5HJwSqRD", address)
}

func TestGetBundlerAddressMissingCurrency(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"addresses":{"arweave":"ar"}}`)
	})
	_, err := c.GetBundlerAddress()
	require.Error(t, err)
}

func TestSubmitFundTransaction(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/account/balance/solana", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "sometxhash", body["tx_id"])
		fmt.Fprint(w, `{}`)
	})
	require.NoError(t, c.SubmitFundTransaction("sometxhash"))
}

func TestUploadDataItem(t *testing.T) {
	account := testAccount(t, 1)
	item := NewDataItem([]byte("asset bytes"), []Tag{
		{Name: "Content-Type", Value: "image/png"},
	})
	require.NoError(t, item.Sign(account))

	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/tx/solana", r.URL.Path)
		require.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		decoded, err := UnmarshalDataItem(raw)
		require.NoError(t, err)
		require.NoError(t, decoded.Verify())
		fmt.Fprintf(w, `{"id":"%s"}`, decoded.ID())
	})

	id, err := c.UploadDataItem(item)
	require.NoError(t, err)
	require.Equal(t, item.ID(), id)
}

func TestUploadDataItemIDMismatch(t *testing.T) {
	account := testAccount(t, 1)
	item := NewDataItem([]byte("asset bytes"), nil)
	require.NoError(t, item.Sign(account))

	cases := []struct {
		name string
		body string
	}{
		{"wrong id", `{"id":"someotherid"}`},
		{"empty id", `{"id":""}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tc.body)
			})
			_, err := c.UploadDataItem(item)
			require.ErrorContains(t, err, "want '"+item.ID()+"'")
		})
	}
}

func TestItemExists(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodHead, r.Method)
		if strings.TrimPrefix(r.URL.Path, "/") == "knownid" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})
	exists, err := c.ItemExists("knownid")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = c.ItemExists("unknownid")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestItemURL(t *testing.T) {
	c := NewClient(&params.BundlrConfig{
		Node:    "https://node1.bundlr.network/",
		Gateway: "https://arweave.net/",
	})
	require.Equal(t, "https://arweave.net/someid", c.ItemURL("someid"))
}
