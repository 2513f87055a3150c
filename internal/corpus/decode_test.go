package corpus

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encodeShard builds a shard payload in the wire format DecodeShard
// expects: gzip over magic, version, and uvarint-length-prefixed fields.
func encodeShard(t *testing.T, version uint16, fields [][]string) []byte {
	t.Helper()
	var body bytes.Buffer
	body.Write(shardMagic)
	require.NoError(t, binary.Write(&body, binary.BigEndian, version))
	var lenBuf [binary.MaxVarintLen64]byte
	for _, record := range fields {
		for _, field := range record {
			n := binary.PutUvarint(lenBuf[:], uint64(len(field)))
			body.Write(lenBuf[:n])
			body.WriteString(field)
		}
	}
	return gzipBytes(t, body.Bytes())
}

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var out bytes.Buffer
	gz := gzip.NewWriter(&out)
	_, err := gz.Write(data)
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	return out.Bytes()
}

func TestDecodeShard(t *testing.T) {
	payload := encodeShard(t, shardFormatVersion, [][]string{
		{"hub/quickstart", "Quickstart", "https://docs.example.com/hub/quickstart", "Getting started."},
		{"hub/auth", "Authentication", "https://docs.example.com/hub/auth", "Tokens and scopes."},
	})

	docs, err := DecodeShard(bytes.NewReader(payload), "hub")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, Document{
		ID:      "hub/quickstart",
		Product: "hub",
		Title:   "Quickstart",
		URL:     "https://docs.example.com/hub/quickstart",
		Content: "Getting started.",
	}, docs[0])
	assert.Equal(t, "hub/auth", docs[1].ID)
}

func TestDecodeShardEmpty(t *testing.T) {
	docs, err := DecodeShard(bytes.NewReader(encodeShard(t, shardFormatVersion, nil)), "hub")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDecodeShardBadMagic(t *testing.T) {
	payload := gzipBytes(t, []byte("NOTDOC\x00\x01"))
	_, err := DecodeShard(bytes.NewReader(payload), "hub")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "header mismatch")
}

func TestDecodeShardBadVersion(t *testing.T) {
	payload := encodeShard(t, 99, nil)
	_, err := DecodeShard(bytes.NewReader(payload), "hub")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version 99")
}

func TestDecodeShardNotGzip(t *testing.T) {
	_, err := DecodeShard(bytes.NewReader([]byte("plain text")), "hub")
	require.Error(t, err)
}

func TestDecodeShardTruncatedMidRecord(t *testing.T) {
	// Only the id field of a record is present.
	payload := encodeShard(t, shardFormatVersion, [][]string{{"hub/partial"}})
	_, err := DecodeShard(bytes.NewReader(payload), "hub")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mid-record")
}

func TestDecodeShardTruncatedField(t *testing.T) {
	var body bytes.Buffer
	body.Write(shardMagic)
	require.NoError(t, binary.Write(&body, binary.BigEndian, uint16(shardFormatVersion)))
	// Length prefix promises 100 bytes but the stream ends early.
	var lenBuf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(lenBuf[:], 100)
	body.Write(lenBuf[:n])
	body.WriteString("short")

	_, err := DecodeShard(bytes.NewReader(gzipBytes(t, body.Bytes())), "hub")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mid-record")
}

func TestDecodeShardFieldTooLarge(t *testing.T) {
	var body bytes.Buffer
	body.Write(shardMagic)
	require.NoError(t, binary.Write(&body, binary.BigEndian, uint16(shardFormatVersion)))
	var lenBuf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(lenBuf[:], maxFieldSize+1)
	body.Write(lenBuf[:n])

	_, err := DecodeShard(bytes.NewReader(gzipBytes(t, body.Bytes())), "hub")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "size limit")
}
