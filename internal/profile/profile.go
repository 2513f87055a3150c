// Package profile classifies the host repository into the closed profile
// set that parametrizes default tool allowances.
package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Profile identifies the kind of repository doc-layer runs in.
type Profile string

// The closed profile set. Unknown is the fallback for repositories with no
// recognizable signals and for classifier failures.
const (
	Training  Profile = "training"
	Inference Profile = "inference"
	Data      Profile = "data"
	App       Profile = "app"
	Unknown   Profile = "unknown"
)

// Known reports whether p is a member of the closed set other than Unknown.
func Known(p Profile) bool {
	switch p {
	case Training, Inference, Data, App:
		return true
	}
	return false
}

// dependency manifests scanned for library signals, in evaluation order.
var manifestFiles = []string{"requirements.txt", "pyproject.toml", "environment.yml", "setup.py"}

var trainingLibraries = []string{"transformers", "trl", "peft", "accelerate", "pytorch-lightning", "datasets"}

var appLibraries = []string{"gradio", "streamlit", "fastapi", "flask"}

// Classify inspects root and returns a profile plus the human-readable
// reasons behind the decision. It never fails: any internal error collapses
// to Unknown with the failure recorded as a reason. Signals are evaluated
// in a fixed order (training, inference, data, app) so classification is
// deterministic for a given tree.
func Classify(root string) (Profile, []string) {
	manifests, err := readManifests(root)
	if err != nil {
		return Unknown, []string{fmt.Sprintf("classifier failed: %v", err)}
	}

	if reason, ok := trainingSignal(root, manifests); ok {
		return Training, []string{reason}
	}
	if reason, ok := inferenceSignal(root); ok {
		return Inference, []string{reason}
	}
	if reason, ok := dataSignal(root); ok {
		return Data, []string{reason}
	}
	if reason, ok := appSignal(root, manifests); ok {
		return App, []string{reason}
	}
	return Unknown, []string{"no classification signals found"}
}

// readManifests concatenates the contents of the known dependency manifests.
func readManifests(root string) (string, error) {
	var sb strings.Builder
	for _, name := range manifestFiles {
		data, err := os.ReadFile(filepath.Join(root, name))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", err
		}
		sb.Write(data)
		sb.WriteByte('\n')
	}
	return strings.ToLower(sb.String()), nil
}

func trainingSignal(root string, manifests string) (string, bool) {
	if !fileExists(root, "train.py") && !fileExists(root, "training", "train.py") {
		return "", false
	}
	for _, lib := range trainingLibraries {
		if strings.Contains(manifests, lib) {
			return fmt.Sprintf("train.py present and manifests mention %s", lib), true
		}
	}
	return "train.py present", true
}

func inferenceSignal(root string) (string, bool) {
	if fileExists(root, "handler.py") {
		return "handler.py present", true
	}
	if !fileExists(root, "config.json") {
		return "", false
	}
	weights, err := filepath.Glob(filepath.Join(root, "*.safetensors"))
	if err != nil || len(weights) == 0 {
		weights, err = filepath.Glob(filepath.Join(root, "*.bin"))
		if err != nil || len(weights) == 0 {
			return "", false
		}
	}
	return "config.json with model weights present", true
}

func dataSignal(root string) (string, bool) {
	if fileExists(root, "dataset_infos.json") {
		return "dataset_infos.json present", true
	}
	dataDir := filepath.Join(root, "data")
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return "", false
	}
	for _, entry := range entries {
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".csv", ".parquet", ".jsonl", ".tsv":
			return fmt.Sprintf("data/%s present", entry.Name()), true
		}
	}
	return "", false
}

func appSignal(root string, manifests string) (string, bool) {
	if fileExists(root, "app.py") {
		return "app.py present", true
	}
	for _, lib := range appLibraries {
		if strings.Contains(manifests, lib) {
			return fmt.Sprintf("manifests mention %s", lib), true
		}
	}
	return "", false
}

func fileExists(root string, parts ...string) bool {
	info, err := os.Stat(filepath.Join(append([]string{root}, parts...)...))
	return err == nil && !info.IsDir()
}
