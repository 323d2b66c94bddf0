package bundlr

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Tag is a name/value pair attached to a data item
type Tag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// data item tag constants
const (
	maxTagCount       = 128
	maxTagNameLength  = 1024
	maxTagValueLength = 3072
)

// CheckTags validate tag count and sizes
func CheckTags(tags []Tag) error {
	if len(tags) > maxTagCount {
		return fmt.Errorf("too many tags: %v > %v", len(tags), maxTagCount)
	}
	for _, tag := range tags {
		if len(tag.Name) == 0 {
			return errors.New("empty tag name")
		}
		if len(tag.Name) > maxTagNameLength {
			return fmt.Errorf("tag name too long: %v > %v", len(tag.Name), maxTagNameLength)
		}
		if len(tag.Value) > maxTagValueLength {
			return fmt.Errorf("tag value too long: %v > %v", len(tag.Value), maxTagValueLength)
		}
	}
	return nil
}

// EncodeTags serialize tags to the avro record array used by ANS-104.
// The array is written as a zigzag varint element count, the elements,
// and a zero count terminator. Strings are length prefixed the same way.
func EncodeTags(tags []Tag) ([]byte, error) {
	if len(tags) == 0 {
		return []byte{}, nil
	}
	if err := CheckTags(tags); err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	writeAvroLong(buf, int64(len(tags)))
	for _, tag := range tags {
		writeAvroString(buf, tag.Name)
		writeAvroString(buf, tag.Value)
	}
	writeAvroLong(buf, 0)
	return buf.Bytes(), nil
}

// DecodeTags parse the avro record array back into tags
func DecodeTags(data []byte) ([]Tag, error) {
	if len(data) == 0 {
		return nil, nil
	}
	rd := bytes.NewReader(data)
	var tags []Tag
	for {
		count, err := readAvroLong(rd)
		if err != nil {
			return nil, fmt.Errorf("decode tags count: %w", err)
		}
		if count == 0 {
			break
		}
		if count < 0 {
			// negative count means a block byte size follows
			count = -count
			if _, err = readAvroLong(rd); err != nil {
				return nil, fmt.Errorf("decode tags block size: %w", err)
			}
		}
		for i := int64(0); i < count; i++ {
			name, err := readAvroString(rd)
			if err != nil {
				return nil, fmt.Errorf("decode tag name: %w", err)
			}
			value, err := readAvroString(rd)
			if err != nil {
				return nil, fmt.Errorf("decode tag value: %w", err)
			}
			tags = append(tags, Tag{Name: name, Value: value})
		}
	}
	return tags, nil
}

func writeAvroLong(buf *bytes.Buffer, v int64) {
	var scratch [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(scratch[:], zigzag(v))
	buf.Write(scratch[:n])
}

func writeAvroString(buf *bytes.Buffer, s string) {
	writeAvroLong(buf, int64(len(s)))
	buf.WriteString(s)
}

func readAvroLong(rd *bytes.Reader) (int64, error) {
	u, err := binary.ReadUvarint(rd)
	if err != nil {
		return 0, err
	}
	return unzigzag(u), nil
}

func readAvroString(rd *bytes.Reader) (string, error) {
	length, err := readAvroLong(rd)
	if err != nil {
		return "", err
	}
	if length < 0 {
		return "", errors.New("negative string length")
	}
	strBytes := make([]byte, length)
	if _, err = io.ReadFull(rd, strBytes); err != nil {
		return "", err
	}
	return string(strBytes), nil
}

func zigzag(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

func unzigzag(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}
