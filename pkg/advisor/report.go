package advisor

import (
	"log/slog"

	"github.com/computeadvisor/advisor/pkg/header"
	"github.com/computeadvisor/advisor/pkg/requirements"
)

// Requirements extracts requirements from raw into a document.
func (a *Advisor) Requirements(raw *requirements.RawInput) (*RequirementsReport, error) {
	req, err := a.ExtractRequirements(raw)
	if err != nil {
		return nil, err
	}
	return &RequirementsReport{
		Header:       *a.header(header.KindRequirements),
		Requirements: req,
	}, nil
}

// Scores scores platforms, or the whole catalog when platforms is empty.
// Unknown keys score zero and get suggestions.
func (a *Advisor) Scores(req *requirements.Requirements, platforms []string) (*ScoreReport, error) {
	cat, err := a.Catalog()
	if err != nil {
		return nil, err
	}

	report := &ScoreReport{
		Header:         *a.header(header.KindScores),
		CatalogVersion: cat.Version,
	}

	if len(platforms) == 0 {
		report.Scores = a.engine.Score(req, cat)
		return report, nil
	}

	for _, key := range platforms {
		report.Scores = append(report.Scores, a.engine.ScoreKey(req, cat, key))
		if _, ok := cat.Get(key); ok {
			continue
		}
		if report.Suggestions == nil {
			report.Suggestions = map[string][]string{}
		}
		report.Suggestions[key] = cat.Suggest(key)
		slog.Debug("unknown platform", "key", key, "suggestions", report.Suggestions[key])
	}
	return report, nil
}

// Detections runs Detect and wraps the findings in a document.
func (a *Advisor) Detections(req DetectionRequest) (*DetectionReport, error) {
	findings, err := a.Detect(req.Metrics, req.Category, req.Platforms)
	if err != nil {
		return nil, err
	}
	return &DetectionReport{
		Header:   *a.header(header.KindDetections),
		Findings: findings,
	}, nil
}

// Platforms lists the catalog in use.
func (a *Advisor) Platforms() (*PlatformList, error) {
	cat, err := a.Catalog()
	if err != nil {
		return nil, err
	}
	return &PlatformList{
		Header:         *a.header(header.KindCatalog),
		CatalogVersion: cat.Version,
		Platforms:      cat.Platforms,
	}, nil
}
