// Package detector matches operational metrics snapshots against the
// detection patterns of a catalog and looks up per-platform remediations.
//
// Patterns are grouped by category. Within a category the first pattern,
// in catalog order, whose predicate holds is the match:
//
//	d := detector.New(cat)
//	if p, ok := d.Detect(catalog.CategoryPerformance, detector.Metrics{"latency": 150}); ok {
//		fmt.Println(detector.SolutionFor(p, "render"))
//	}
//
// Evaluation is pure; nothing is recorded between calls.
package detector
