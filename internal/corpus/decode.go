package corpus

import (
	"bufio"
	"compress/gzip"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/conn-castle/doc-layer/internal/messages"
)

// Shard payload layout: gzip stream containing an 8-byte header (6-byte
// magic plus big-endian uint16 format version) followed by records. Each
// record is four uvarint-length-prefixed fields: id, title, url, content.
var shardMagic = []byte("DLDOC\x00")

const shardFormatVersion = 1

// maxFieldSize bounds a single decoded field; anything larger indicates a
// corrupt shard.
const maxFieldSize = 1 << 24

// DecodeShard decompresses and decodes one shard into documents tagged
// with product.
func DecodeShard(r io.Reader, product string) ([]Document, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer func() { _ = gz.Close() }()

	br := bufio.NewReader(gz)

	header := make([]byte, len(shardMagic)+2)
	if _, err := io.ReadFull(br, header); err != nil {
		return nil, errors.New(messages.DecodeBadMagic)
	}
	for i, b := range shardMagic {
		if header[i] != b {
			return nil, errors.New(messages.DecodeBadMagic)
		}
	}
	if version := binary.BigEndian.Uint16(header[len(shardMagic):]); version != shardFormatVersion {
		return nil, fmt.Errorf(messages.DecodeBadVersionFmt, version)
	}

	var docs []Document
	for {
		id, err := readField(br)
		if err == io.EOF {
			return docs, nil
		}
		if err != nil {
			return nil, err
		}
		title, err := readFieldStrict(br)
		if err != nil {
			return nil, err
		}
		url, err := readFieldStrict(br)
		if err != nil {
			return nil, err
		}
		content, err := readFieldStrict(br)
		if err != nil {
			return nil, err
		}
		docs = append(docs, Document{
			ID:      id,
			Product: product,
			Title:   title,
			URL:     url,
			Content: content,
		})
	}
}

// readField reads one uvarint-length-prefixed field. io.EOF before the
// length prefix marks a clean record boundary.
func readField(br *bufio.Reader) (string, error) {
	length, err := binary.ReadUvarint(br)
	if err == io.EOF {
		return "", io.EOF
	}
	if err != nil {
		return "", errors.New(messages.DecodeTruncatedRecord)
	}
	if length > maxFieldSize {
		return "", errors.New(messages.DecodeFieldTooLarge)
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(br, buf); err != nil {
		return "", errors.New(messages.DecodeTruncatedRecord)
	}
	return string(buf), nil
}

// readFieldStrict is readField for non-leading fields, where EOF means the
// shard ends mid-record.
func readFieldStrict(br *bufio.Reader) (string, error) {
	field, err := readField(br)
	if err != nil {
		return "", errors.New(messages.DecodeTruncatedRecord)
	}
	return field, nil
}
