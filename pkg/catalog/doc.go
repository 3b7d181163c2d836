// Package catalog holds the platform catalog: provider profiles, the keyword
// tables used to explain scores, and the operational detection patterns.
//
// # Data
//
// The default catalog is compiled into the binary from data/catalog-v1.yaml
// and parsed once on first use. Every catalog, embedded or loaded from a file
// or an OCI artifact, is validated before use:
//
//   - platform keys are unique and every tag list is non-empty
//   - cost classes are very-low, low, moderate or high
//   - scaling models are linear, flexible or fixed
//   - every detection pattern defines a defaultSolution
//
// Parse fails on the first document that violates any of these.
//
// # Snapshots
//
// A *Catalog is read-only. Current returns the process-wide snapshot and Swap
// replaces it as a whole, so scoring calls that already hold a snapshot are
// never affected by a reload:
//
//	cat, err := catalog.Current()
//	if err != nil {
//	    return err
//	}
//	profile, ok := cat.Get("akashNetwork")
//
// Reload combines a Source with Swap:
//
//	if _, err := catalog.Reload(ctx, catalog.FileSource("/etc/advisor/catalog.yaml")); err != nil {
//	    slog.Error("catalog reload failed, keeping current snapshot", "error", err)
//	}
package catalog
