package messages

// Corpus manifest, fetch, and cache messages.
const (
	ManifestReadFailedFmt         = "read manifest %s: %w"
	ManifestParseFailedFmt        = "parse manifest %s: %w"
	ManifestInvalidConcurrencyFmt = "manifest %s: concurrency must be positive, got %d"
	ManifestNoProductsFmt         = "manifest %s: at least one product is required"
	ManifestMissingEndpointFmt    = "manifest %s: endpoint is required"

	FetchIndexFailedFmt  = "fetch index for product %s: %w"
	FetchShardWarnFmt    = "failed to fetch shard %s"
	FetchNoDocuments     = "no documents fetched; corpus cache left unchanged"
	FetchStatusFmt       = "unexpected status %s"
	FetchCompleteFmt     = "fetched %d documents into %s"
	FetchFailedShardsFmt = "%d shard(s) failed; re-run fetch to retry"

	StoreWriteFailedFmt = "write corpus cache %s: %w"
	StoreReadFailedFmt  = "read corpus cache %s: %w"
	StoreMissingFmt     = "corpus cache %s not found; run 'dla fetch' first"

	DecodeBadMagic        = "shard header mismatch: not a doc-layer shard"
	DecodeBadVersionFmt   = "unsupported shard format version %d"
	DecodeFieldTooLarge   = "shard record field exceeds size limit"
	DecodeTruncatedRecord = "shard ends mid-record"
)
