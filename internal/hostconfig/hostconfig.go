// Package hostconfig reads, merges, and persists the host application's
// configuration document on behalf of the reconciliation driver.
package hostconfig

import (
	"fmt"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/conn-castle/doc-layer/internal/jsontree"
	"github.com/conn-castle/doc-layer/internal/messages"
)

// File names of the managed configuration surface.
const (
	// FileName is the current-format config in the repository root.
	// Comments and trailing commas are tolerated on read.
	FileName = "opencode.json"
	// LegacyFileName is the plain-JSON legacy config merged and then
	// renamed to a backup on successful migration.
	LegacyFileName = ".opencode.json"
)

// Path returns the current-format config path under root.
func Path(root string) string {
	return filepath.Join(root, FileName)
}

// LegacyPath returns the legacy config path under root.
func LegacyPath(root string) string {
	return filepath.Join(root, LegacyFileName)
}

// GlobalPath resolves the host's global config location in the user's home.
func GlobalPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf(messages.GlobalPathFailedFmt, err)
	}
	return filepath.Join(home, ".config", "opencode", FileName), nil
}

// Read loads the current-format config at path. An absent file yields an
// empty document and found=false; a present but malformed file is an error.
func Read(sys System, path string) (*jsontree.Value, bool, error) {
	data, err := sys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return jsontree.NewObject(), false, nil
		}
		return nil, false, fmt.Errorf(messages.ConfigReadFailedFmt, path, err)
	}
	doc, err := jsontree.ParseJSONC(data)
	if err != nil {
		return nil, false, fmt.Errorf(messages.ConfigParseFailedFmt, path, err)
	}
	return doc, true, nil
}

// ReadLegacy loads the legacy plain-JSON config at path. An absent file is
// not an error (found=false); a present but unreadable or malformed file is
// a hard stop.
func ReadLegacy(sys System, path string) (*jsontree.Value, bool, error) {
	data, err := sys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf(messages.LegacyReadFailedFmt, path, err)
	}
	doc, err := jsontree.Parse(data)
	if err != nil {
		return nil, false, fmt.Errorf(messages.LegacyParseFailedFmt, path, err)
	}
	return doc, true, nil
}

// MergeLegacy merges legacy into current, current winning on conflicts:
// nested objects merge recursively, non-object values come from current
// when present and from legacy otherwise. Neither input is mutated.
func MergeLegacy(current, legacy *jsontree.Value) *jsontree.Value {
	if legacy == nil || legacy.Kind() != jsontree.KindObject {
		return jsontree.Clone(current)
	}
	if current == nil || current.Kind() != jsontree.KindObject {
		return jsontree.Clone(legacy)
	}
	merged := jsontree.Clone(current)
	mergeObjects(merged.Fields(), legacy.Fields())
	return merged
}

func mergeObjects(target, source *jsontree.Fields) {
	for _, key := range source.Keys() {
		sourceVal, _ := source.Get(key)
		targetVal, ok := target.Get(key)
		if !ok {
			target.Set(key, jsontree.Clone(sourceVal))
			continue
		}
		if targetVal.Kind() == jsontree.KindObject && sourceVal.Kind() == jsontree.KindObject {
			mergeObjects(targetVal.Fields(), sourceVal.Fields())
		}
		// Non-object target values win.
	}
}

// Write persists doc to path atomically as stable 2-space-indented JSON.
func Write(sys System, path string, doc *jsontree.Value) error {
	if err := sys.WriteFileAtomic(path, jsontree.Encode(doc), 0o644); err != nil {
		return fmt.Errorf(messages.ConfigWriteFailedFmt, path, err)
	}
	return nil
}

// BackupLegacy renames the legacy config to <name>.bak, disambiguating
// with a numeric suffix when a backup already exists. It returns the
// backup path used.
func BackupLegacy(sys System, path string) (string, error) {
	backup := path + ".bak"
	for n := 1; ; n++ {
		if _, err := sys.Stat(backup); os.IsNotExist(err) {
			break
		}
		backup = fmt.Sprintf("%s.bak.%d", path, n)
	}
	if err := sys.Rename(path, backup); err != nil {
		return "", fmt.Errorf(messages.LegacyBackupFailedFmt, path, err)
	}
	return backup, nil
}
