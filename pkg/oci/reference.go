package oci

import (
	"fmt"
	"strings"

	"github.com/distribution/reference"
)

// URIScheme prefixes catalog locations stored in a registry.
const URIScheme = "oci://"

// DefaultTag is used when a reference names neither a tag nor a digest.
const DefaultTag = "latest"

// Reference is a parsed registry location.
type Reference struct {
	Registry   string
	Repository string
	Tag        string
	Digest     string
}

// IsReference reports whether location uses the oci:// scheme.
func IsReference(location string) bool {
	return strings.HasPrefix(strings.TrimSpace(location), URIScheme)
}

// ParseReference parses oci://registry/repository[:tag][@digest]. The scheme
// prefix is optional. Short names are expanded the way docker does, and a
// reference without tag or digest gets DefaultTag.
func ParseReference(location string) (Reference, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(location), URIScheme)
	if raw == "" {
		return Reference{}, fmt.Errorf("invalid OCI reference %q: empty", location)
	}

	named, err := reference.ParseNormalizedNamed(raw)
	if err != nil {
		return Reference{}, fmt.Errorf("invalid OCI reference %q: %w", location, err)
	}

	ref := Reference{
		Registry:   reference.Domain(named),
		Repository: reference.Path(named),
	}
	if tagged, ok := named.(reference.Tagged); ok {
		ref.Tag = tagged.Tag()
	}
	if digested, ok := named.(reference.Digested); ok {
		ref.Digest = digested.Digest().String()
	}
	if ref.Tag == "" && ref.Digest == "" {
		ref.Tag = DefaultTag
	}
	return ref, nil
}

// Name returns registry/repository.
func (r Reference) Name() string {
	return r.Registry + "/" + r.Repository
}

// Target returns the tag or digest to resolve, preferring the digest.
func (r Reference) Target() string {
	if r.Digest != "" {
		return r.Digest
	}
	return r.Tag
}

// String returns the reference without the oci:// scheme.
func (r Reference) String() string {
	s := r.Name()
	if r.Tag != "" {
		s += ":" + r.Tag
	}
	if r.Digest != "" {
		s += "@" + r.Digest
	}
	return s
}
