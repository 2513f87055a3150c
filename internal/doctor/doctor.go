// Package doctor inspects a repository's doc-layer installation and
// reports per-check results.
package doctor

import (
	"fmt"
	"path/filepath"

	"github.com/conn-castle/doc-layer/internal/corpus"
	"github.com/conn-castle/doc-layer/internal/credentials"
	"github.com/conn-castle/doc-layer/internal/hostconfig"
	"github.com/conn-castle/doc-layer/internal/jsontree"
	"github.com/conn-castle/doc-layer/internal/messages"
	"github.com/conn-castle/doc-layer/internal/reconcile"
)

// Status classifies a check outcome.
type Status int

const (
	StatusOK Status = iota
	StatusWarn
	StatusFail
)

func (s Status) String() string {
	switch s {
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	}
	return "ok"
}

// Result is one check outcome.
type Result struct {
	Status         Status
	CheckName      string
	Message        string
	Recommendation string
}

// CheckConfig verifies the host config exists and parses. The parsed
// document is returned for downstream checks; it is nil on failure.
func CheckConfig(sys hostconfig.System, root string) (Result, *jsontree.Value) {
	path := hostconfig.Path(root)
	doc, found, err := hostconfig.Read(sys, path)
	if err != nil {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckConfig,
			Message:        fmt.Sprintf(messages.DoctorConfigInvalidFmt, err),
			Recommendation: messages.DoctorConfigRecommend,
		}, nil
	}
	if !found {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckConfig,
			Message:        messages.DoctorConfigMissing,
			Recommendation: messages.DoctorConfigRecommend,
		}, nil
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckConfig,
		Message:   fmt.Sprintf(messages.DoctorConfigOKFmt, path),
	}, doc
}

// CheckServer verifies the managed server entry is present.
func CheckServer(doc *jsontree.Value) Result {
	if doc == nil || reconcile.ServerURL(doc) == "" {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckServer,
			Message:        messages.DoctorServerMissing,
			Recommendation: messages.DoctorConfigRecommend,
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckServer,
		Message:   messages.DoctorServerOK,
	}
}

// CheckToken verifies the credential variable resolves. A missing token
// is a warning: local corpus tools still work without it.
func CheckToken(provider credentials.Provider) Result {
	if _, err := provider.Token(); err != nil {
		return Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckToken,
			Message:        fmt.Sprintf(messages.DoctorTokenMissingFmt, credentials.EnvToken),
			Recommendation: messages.DoctorTokenRecommend,
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckToken,
		Message:   messages.DoctorTokenOK,
	}
}

// CheckCorpus verifies the corpus cache referenced by the manifest is
// readable. An absent cache is a warning, a corrupt one a failure.
func CheckCorpus(root string) Result {
	manifest, err := corpus.LoadManifest(corpus.ManifestPath(root))
	if err != nil {
		return Result{
			Status:    StatusFail,
			CheckName: messages.DoctorCheckCorpus,
			Message:   fmt.Sprintf(messages.DoctorCorpusInvalidFmt, err),
		}
	}
	cachePath := manifest.CachePath
	if !filepath.IsAbs(cachePath) {
		cachePath = filepath.Join(root, cachePath)
	}
	docs, err := corpus.ReadStore(cachePath)
	if err != nil {
		if _, statErr := (hostconfig.RealSystem{}).Stat(cachePath); statErr != nil {
			return Result{
				Status:         StatusWarn,
				CheckName:      messages.DoctorCheckCorpus,
				Message:        messages.DoctorCorpusMissing,
				Recommendation: messages.DoctorCorpusRecommend,
			}
		}
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckCorpus,
			Message:        fmt.Sprintf(messages.DoctorCorpusInvalidFmt, err),
			Recommendation: messages.DoctorCorpusRecommend,
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckCorpus,
		Message:   fmt.Sprintf(messages.DoctorCorpusOKFmt, len(docs)),
	}
}

// Run executes every check in order.
func Run(sys hostconfig.System, root string, provider credentials.Provider) []Result {
	configResult, doc := CheckConfig(sys, root)
	return []Result{
		configResult,
		CheckServer(doc),
		CheckToken(provider),
		CheckCorpus(root),
	}
}
