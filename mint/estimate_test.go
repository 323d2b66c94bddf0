package mint

import (
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/justmint/JustMint/bundlr"
	"github.com/justmint/JustMint/params"
)

// a node pricing one winston per byte makes the estimate arithmetic
// visible: the total is exactly the sum of the item sizes
func testBytePriceClient(t *testing.T) *bundlr.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		size := strings.TrimPrefix(r.URL.Path, "/price/solana/")
		if size == r.URL.Path {
			t.Errorf("unexpected request %v %v", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, size)
	}))
	t.Cleanup(srv.Close)
	return bundlr.NewClient(&params.BundlrConfig{
		Node:     srv.URL,
		Currency: "solana",
	})
}

func TestEstimatePriceAdditive(t *testing.T) {
	client := testBytePriceClient(t)
	session := testSession(t)

	metadataSize, err := session.EstimateMetadataByteSize(len(session.Assets))
	if err != nil {
		t.Fatalf("estimate metadata size: %v", err)
	}
	price, err := session.EstimatePrice(client)
	if err != nil {
		t.Fatalf("estimate price: %v", err)
	}
	want := session.Assets[0].Size() + metadataSize + DummyManifestByteSize()
	if price.Uint64() != want {
		t.Fatalf("expected price %v, but %v got", want, price)
	}

	// adding an asset grows the estimate by at least its size
	session.Assets = append(session.Assets, &Asset{
		Name:        "dog.png",
		ContentType: "image/png",
		Data:        make([]byte, 1024),
	})
	grown, err := session.EstimatePrice(client)
	if err != nil {
		t.Fatalf("estimate grown price: %v", err)
	}
	if grown.Cmp(price) <= 0 {
		t.Fatalf("expected estimate above %v, but %v got", price, grown)
	}
	minGrown := new(big.Int).Add(price, big.NewInt(1024))
	if grown.Cmp(minGrown) < 0 {
		t.Fatalf("expected estimate of at least %v, but %v got", minGrown, grown)
	}
}

func TestFormatSol(t *testing.T) {
	cases := []struct {
		lamports int64
		expected string
	}{
		{0, "0.0"},
		{1, "0.000000001"},
		{100, "0.0000001"},
		{LamportsPerSol, "1.0"},
		{LamportsPerSol + LamportsPerSol/2, "1.5"},
		{5071000, "0.005071"},
	}
	for _, c := range cases {
		t.Run(c.expected, func(t *testing.T) {
			if got := FormatSol(big.NewInt(c.lamports)); got != c.expected {
				t.Fatalf("%v lamports expected %v, but %v got", c.lamports, c.expected, got)
			}
		})
	}
}

func TestApplyFundMultiplier(t *testing.T) {
	// default multiplier is 110 percent with ceiling division
	cases := []struct {
		price    int64
		expected int64
	}{
		{0, 0},
		{1, 2},
		{9, 10},
		{10, 11},
		{100, 110},
		{1000000, 1100000},
	}
	for _, c := range cases {
		got := ApplyFundMultiplier(big.NewInt(c.price))
		if got.Int64() != c.expected {
			t.Fatalf("price %v expected %v, but %v got", c.price, c.expected, got)
		}
	}
}
