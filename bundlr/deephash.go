package bundlr

import (
	"crypto/sha512"
	"strconv"
)

// deepHash implements the arweave deep hash algorithm over a tree of
// byte blobs. A blob is hashed as
//
//	sha384(sha384("blob" + byteLength) || sha384(data))
//
// and a list folds its elements into an accumulator seeded with
// sha384("list" + elementCount).
type deepHashChunk interface{}

func deepHash(chunk deepHashChunk) [48]byte {
	switch v := chunk.(type) {
	case []byte:
		tag := []byte("blob" + strconv.Itoa(len(v)))
		tagHash := sha512.Sum384(tag)
		dataHash := sha512.Sum384(v)
		return sha512.Sum384(append(tagHash[:], dataHash[:]...))
	case []deepHashChunk:
		tag := []byte("list" + strconv.Itoa(len(v)))
		acc := sha512.Sum384(tag)
		for _, elem := range v {
			elemHash := deepHash(elem)
			acc = sha512.Sum384(append(acc[:], elemHash[:]...))
		}
		return acc
	default:
		panic("deepHash: unsupported chunk type")
	}
}
