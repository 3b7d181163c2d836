package oci

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content"
)

const (
	// ArtifactType identifies a catalog artifact manifest.
	ArtifactType = "application/vnd.computeadvisor.catalog.v1"

	// CatalogMediaType is the media type of the catalog layer.
	CatalogMediaType = "application/vnd.computeadvisor.catalog.v1+yaml"

	// AnnotationCatalogVersion records the catalog document version on the
	// manifest.
	AnnotationCatalogVersion = "io.computeadvisor.catalog.version"

	catalogFileName = "catalog.yaml"
)

// Pack stores a catalog document in target as a single-layer artifact and
// tags it. It returns the manifest descriptor.
func Pack(ctx context.Context, target oras.Target, data []byte, version, tag string) (ocispec.Descriptor, error) {
	layer := content.NewDescriptorFromBytes(CatalogMediaType, data)
	layer.Annotations = map[string]string{ocispec.AnnotationTitle: catalogFileName}

	if err := target.Push(ctx, layer, bytes.NewReader(data)); err != nil {
		return ocispec.Descriptor{}, fmt.Errorf("failed to push catalog layer: %w", err)
	}

	annotations := map[string]string{}
	if version != "" {
		annotations[AnnotationCatalogVersion] = version
	}
	manifest, err := oras.PackManifest(ctx, target, oras.PackManifestVersion1_1, ArtifactType, oras.PackManifestOptions{
		Layers:              []ocispec.Descriptor{layer},
		ManifestAnnotations: annotations,
	})
	if err != nil {
		return ocispec.Descriptor{}, fmt.Errorf("failed to pack catalog manifest: %w", err)
	}

	if tag != "" {
		if err := target.Tag(ctx, manifest, tag); err != nil {
			return ocispec.Descriptor{}, fmt.Errorf("failed to tag catalog manifest %q: %w", tag, err)
		}
	}
	return manifest, nil
}

// Unpack resolves ref in target and returns the catalog document of the
// artifact it points at.
func Unpack(ctx context.Context, target oras.ReadOnlyTarget, ref string) ([]byte, error) {
	desc, err := target.Resolve(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", ref, err)
	}
	return FetchCatalog(ctx, target, desc)
}

// FetchCatalog returns the catalog layer of the artifact manifest desc.
func FetchCatalog(ctx context.Context, fetcher content.Fetcher, desc ocispec.Descriptor) ([]byte, error) {
	raw, err := content.FetchAll(ctx, fetcher, desc)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch manifest %s: %w", desc.Digest, err)
	}

	var manifest ocispec.Manifest
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", desc.Digest, err)
	}
	if manifest.ArtifactType != ArtifactType {
		return nil, fmt.Errorf("%s is not a catalog artifact (artifactType %q)", desc.Digest, manifest.ArtifactType)
	}

	for _, layer := range manifest.Layers {
		if layer.MediaType != CatalogMediaType {
			continue
		}
		data, err := content.FetchAll(ctx, fetcher, layer)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch catalog layer %s: %w", layer.Digest, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("artifact %s has no %s layer", desc.Digest, CatalogMediaType)
}
