package oci

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/memory"
	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/retry"

	"github.com/computeadvisor/advisor/pkg/catalog"
)

// Environment variables holding registry credentials.
const (
	EnvRegistryUsername = "ADVISOR_REGISTRY_USERNAME"
	EnvRegistryPassword = "ADVISOR_REGISTRY_PASSWORD"
)

// TargetFunc opens the repository a reference points at.
type TargetFunc func(ctx context.Context, ref Reference) (oras.Target, error)

// Client pushes and pulls catalog artifacts.
type Client struct {
	plainHTTP  bool
	credential auth.Credential
	target     TargetFunc
}

// Option configures a Client.
type Option func(*Client)

// WithPlainHTTP talks to the registry over HTTP instead of HTTPS.
func WithPlainHTTP(plain bool) Option {
	return func(c *Client) {
		c.plainHTTP = plain
	}
}

// WithCredential sets static registry credentials.
func WithCredential(username, password string) Option {
	return func(c *Client) {
		c.credential = auth.Credential{Username: username, Password: password}
	}
}

// WithTarget replaces the remote repository, e.g. with an in-memory store.
func WithTarget(fn TargetFunc) Option {
	return func(c *Client) {
		c.target = fn
	}
}

// NewClient returns a Client. Credentials default to the
// ADVISOR_REGISTRY_USERNAME and ADVISOR_REGISTRY_PASSWORD environment
// variables; anonymous access is used when they are unset.
func NewClient(opts ...Option) *Client {
	c := &Client{
		credential: auth.Credential{
			Username: os.Getenv(EnvRegistryUsername),
			Password: os.Getenv(EnvRegistryPassword),
		},
	}
	c.target = c.remoteRepository
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Push publishes cat at location (oci://registry/repository:tag).
func (c *Client) Push(ctx context.Context, location string, cat *catalog.Catalog) (ocispec.Descriptor, error) {
	ref, err := ParseReference(location)
	if err != nil {
		return ocispec.Descriptor{}, err
	}
	if ref.Tag == "" {
		return ocispec.Descriptor{}, fmt.Errorf("push to %q needs a tag", location)
	}

	data, err := catalog.Marshal(cat)
	if err != nil {
		return ocispec.Descriptor{}, err
	}

	staging := memory.New()
	if _, err := Pack(ctx, staging, data, cat.Version, ref.Tag); err != nil {
		return ocispec.Descriptor{}, err
	}

	dst, err := c.target(ctx, ref)
	if err != nil {
		return ocispec.Descriptor{}, err
	}

	desc, err := oras.Copy(ctx, staging, ref.Tag, dst, ref.Tag, oras.DefaultCopyOptions)
	if err != nil {
		return ocispec.Descriptor{}, fmt.Errorf("failed to push catalog to %s: %w", ref, err)
	}

	slog.Info("catalog pushed", "reference", ref.String(), "digest", desc.Digest.String(), "version", cat.Version)
	return desc, nil
}

// PullData fetches the raw catalog document at location.
func (c *Client) PullData(ctx context.Context, location string) ([]byte, error) {
	ref, err := ParseReference(location)
	if err != nil {
		return nil, err
	}

	src, err := c.target(ctx, ref)
	if err != nil {
		return nil, err
	}

	root, err := src.Resolve(ctx, ref.Target())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", ref, err)
	}

	staging := memory.New()
	if err := oras.CopyGraph(ctx, src, staging, root, oras.DefaultCopyGraphOptions); err != nil {
		return nil, fmt.Errorf("failed to pull catalog from %s: %w", ref, err)
	}

	data, err := FetchCatalog(ctx, staging, root)
	if err != nil {
		return nil, err
	}

	slog.Debug("catalog pulled", "reference", ref.String(), "digest", root.Digest.String(), "bytes", len(data))
	return data, nil
}

// Pull fetches and validates the catalog at location.
func (c *Client) Pull(ctx context.Context, location string) (*catalog.Catalog, error) {
	data, err := c.PullData(ctx, location)
	if err != nil {
		return nil, err
	}
	cat, err := catalog.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", location, err)
	}
	return cat, nil
}

// Source returns a catalog.Source pulling from location on every load.
func (c *Client) Source(location string) catalog.Source {
	return catalog.SourceFunc(func(ctx context.Context) (*catalog.Catalog, error) {
		return c.Pull(ctx, location)
	})
}

// SourceFor returns a Source for a file path or oci:// reference.
func SourceFor(location string, opts ...Option) catalog.Source {
	if IsReference(location) {
		return NewClient(opts...).Source(location)
	}
	return catalog.FileSource(location)
}

func (c *Client) remoteRepository(_ context.Context, ref Reference) (oras.Target, error) {
	repo, err := remote.NewRepository(ref.Name())
	if err != nil {
		return nil, fmt.Errorf("invalid repository %q: %w", ref.Name(), err)
	}
	repo.PlainHTTP = c.plainHTTP

	client := &auth.Client{
		Client: retry.DefaultClient,
		Cache:  auth.NewCache(),
	}
	if c.credential != auth.EmptyCredential {
		client.Credential = auth.StaticCredential(ref.Registry, c.credential)
	}
	repo.Client = client
	return repo, nil
}
