package corpus

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/conn-castle/doc-layer/internal/messages"
)

// Document is one cached documentation page.
type Document struct {
	ID      string `parquet:"id"`
	Product string `parquet:"product"`
	Title   string `parquet:"title"`
	URL     string `parquet:"url"`
	Content string `parquet:"content"`
}

// WriteStore persists docs to a parquet file at path atomically.
func WriteStore(path string, docs []Document) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf(messages.StoreWriteFailedFmt, path, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf(messages.StoreWriteFailedFmt, path, err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	writer := parquet.NewGenericWriter[Document](tmp)
	if _, err := writer.Write(docs); err != nil {
		cleanup()
		return fmt.Errorf(messages.StoreWriteFailedFmt, path, err)
	}
	if err := writer.Close(); err != nil {
		cleanup()
		return fmt.Errorf(messages.StoreWriteFailedFmt, path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf(messages.StoreWriteFailedFmt, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf(messages.StoreWriteFailedFmt, path, err)
	}
	return nil
}

// ReadStore loads the full corpus cache at path.
func ReadStore(path string) ([]Document, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf(messages.StoreMissingFmt, path)
		}
		return nil, fmt.Errorf(messages.StoreReadFailedFmt, path, err)
	}
	docs, err := parquet.ReadFile[Document](path)
	if err != nil {
		return nil, fmt.Errorf(messages.StoreReadFailedFmt, path, err)
	}
	return docs, nil
}
