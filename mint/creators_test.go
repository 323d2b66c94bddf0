package mint

import (
	"strings"
	"testing"
)

func TestCheckCreators(t *testing.T) {
	walletKey := testWallet(t, 1).PublicKey()
	otherKey := testWallet(t, 2).PublicKey()

	cases := []struct {
		name     string
		creators []Creator
		errPart  string
	}{
		{"single full share", []Creator{{walletKey.String(), "100"}}, ""},
		{"split shares", []Creator{
			{walletKey.String(), "60"},
			{otherKey.String(), "40"},
		}, ""},
		{"sum below 100", []Creator{{walletKey.String(), "99"}}, "creator shares must add up to 100. Got 99"},
		{"sum above 100", []Creator{
			{walletKey.String(), "100"},
			{otherKey.String(), "10"},
		}, "creator shares must add up to 100. Got 110"},
		{"empty list", nil, "creator shares must add up to 100. Got 0"},
		{"bad address", []Creator{{"not-a-pubkey", "100"}}, "invalid creator pubkey"},
		{"bad share", []Creator{{walletKey.String(), "a lot"}}, "could not parse share"},
		{"fractional share", []Creator{{walletKey.String(), "99.5"}}, "could not parse share"},
		{"negative share", []Creator{
			{walletKey.String(), "-10"},
			{otherKey.String(), "110"},
		}, "negative share"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := CheckCreators(c.creators)
			if c.errPart == "" {
				if err != nil {
					t.Fatalf("%v expected no error, but %v got", c.name, err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), c.errPart) {
				t.Fatalf("%v expected error containing %q, but %v got", c.name, c.errPart, err)
			}
		})
	}
}

func TestBuildCreators(t *testing.T) {
	wallet := testWallet(t, 1)
	other := testWallet(t, 2)
	walletKey := wallet.PublicKey()
	otherKey := other.PublicKey()

	creators, err := BuildCreators(walletKey, []Creator{
		{walletKey.String(), "70"},
		{otherKey.String(), "30"},
	})
	if err != nil {
		t.Fatalf("build creators: %v", err)
	}
	if len(creators) != 2 {
		t.Fatalf("expected 2 creators, but %v got", len(creators))
	}
	if !creators[0].Verified || creators[0].Share != 70 {
		t.Fatalf("wallet creator expected verified share 70, but %+v got", creators[0])
	}
	if creators[1].Verified {
		t.Fatalf("only the wallet may be verified, but %+v got", creators[1])
	}
	if creators[1].Share != 30 {
		t.Fatalf("expected share 30, but %v got", creators[1].Share)
	}
}

func TestRequiredCreators(t *testing.T) {
	walletKey := testWallet(t, 1).PublicKey()
	creators := RequiredCreators(walletKey)
	if len(creators) != 1 {
		t.Fatalf("expected 1 required creator, but %v got", len(creators))
	}
	if creators[0].Address != walletKey.String() || creators[0].Share != "100" {
		t.Fatalf("expected wallet with full share, but %+v got", creators[0])
	}
	if err := CheckCreators(creators); err != nil {
		t.Fatalf("required creators must validate: %v", err)
	}
}

func TestAllCreatorsDefaultsToWallet(t *testing.T) {
	walletKey := testWallet(t, 1).PublicKey()
	otherKey := testWallet(t, 2).PublicKey()

	session := &Session{}
	creators := session.AllCreators(walletKey)
	if len(creators) != 1 || creators[0].Address != walletKey.String() {
		t.Fatalf("expected wallet default, but %+v got", creators)
	}

	session.Creators = []Creator{{otherKey.String(), "100"}}
	creators = session.AllCreators(walletKey)
	if len(creators) != 1 || creators[0].Address != otherKey.String() {
		t.Fatalf("expected configured creators, but %+v got", creators)
	}
}
