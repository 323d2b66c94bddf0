package bundlr

import (
	"bytes"
	"strings"
	"testing"
)

func TestEncodeTags(t *testing.T) {
	tags := []Tag{{Name: "a", Value: "b"}}
	encoded, err := EncodeTags(tags)
	if err != nil {
		t.Fatalf("encode tags: %v", err)
	}
	// count 1, string "a", string "b", terminator
	expected := []byte{0x02, 0x02, 'a', 0x02, 'b', 0x00}
	if !bytes.Equal(encoded, expected) {
		t.Fatalf("expected %v, but %v got", expected, encoded)
	}
}

func TestEncodeTagsEmpty(t *testing.T) {
	encoded, err := EncodeTags(nil)
	if err != nil {
		t.Fatalf("encode empty tags: %v", err)
	}
	if len(encoded) != 0 {
		t.Fatalf("expected empty encoding, but %v got", encoded)
	}
	decoded, err := DecodeTags(encoded)
	if err != nil {
		t.Fatalf("decode empty tags: %v", err)
	}
	if len(decoded) != 0 {
		t.Fatalf("expected no tags, but %v got", decoded)
	}
}

func TestTagsRoundTrip(t *testing.T) {
	cases := [][]Tag{
		{{Name: "Content-Type", Value: "image/png"}},
		{{Name: "App-Name", Value: "Just Mint"}, {Name: "Content-Type", Value: "application/json"}},
		{{Name: "x", Value: ""}},
		{{Name: strings.Repeat("n", 1024), Value: strings.Repeat("v", 3072)}},
	}
	for _, tags := range cases {
		t.Run(tags[0].Name, func(t *testing.T) {
			encoded, err := EncodeTags(tags)
			if err != nil {
				t.Fatalf("encode tags: %v", err)
			}
			decoded, err := DecodeTags(encoded)
			if err != nil {
				t.Fatalf("decode tags: %v", err)
			}
			if len(decoded) != len(tags) {
				t.Fatalf("expected %v tags, but %v got", len(tags), len(decoded))
			}
			for i, tag := range tags {
				if decoded[i] != tag {
					t.Fatalf("tag %v expected %v, but %v got", i, tag, decoded[i])
				}
			}
		})
	}
}

func TestCheckTags(t *testing.T) {
	cases := []struct {
		name    string
		tags    []Tag
		wantErr bool
	}{
		{"ok", []Tag{{Name: "a", Value: "b"}}, false},
		{"empty name", []Tag{{Name: "", Value: "b"}}, true},
		{"long name", []Tag{{Name: strings.Repeat("n", 1025), Value: "b"}}, true},
		{"long value", []Tag{{Name: "a", Value: strings.Repeat("v", 3073)}}, true},
		{"too many", make([]Tag, 129), true},
	}
	for i := range cases[4].tags {
		cases[4].tags[i] = Tag{Name: "a", Value: "b"}
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := CheckTags(c.tags)
			if (err != nil) != c.wantErr {
				t.Fatalf("%v expected error %v, but %v got", c.name, c.wantErr, err)
			}
		})
	}
}

func TestZigzag(t *testing.T) {
	cases := []struct {
		value   int64
		encoded uint64
	}{
		{0, 0},
		{-1, 1},
		{1, 2},
		{-2, 3},
		{64, 128},
	}
	for _, c := range cases {
		if got := zigzag(c.value); got != c.encoded {
			t.Fatalf("zigzag(%v) expected %v, but %v got", c.value, c.encoded, got)
		}
		if got := unzigzag(c.encoded); got != c.value {
			t.Fatalf("unzigzag(%v) expected %v, but %v got", c.encoded, c.value, got)
		}
	}
}
