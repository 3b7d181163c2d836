package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Reader decodes one document.
type Reader struct {
	format Format
	data   []byte
}

// NewReader returns a Reader over data in format. Table is not a readable
// format.
func NewReader(format Format, data []byte) (*Reader, error) {
	if format != FormatJSON && format != FormatYAML {
		return nil, fmt.Errorf("unsupported input format %q", format)
	}
	return &Reader{format: format, data: data}, nil
}

// NewFileReader reads the document at path; "-" reads stdin.
func NewFileReader(format Format, path string) (*Reader, error) {
	var (
		data []byte
		err  error
	)
	if path == StdoutURI {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}
	return NewReader(format, data)
}

// Open reads the document at uri, which is a file path, "-" for stdin, or
// cm://namespace/name. The format comes from the file extension or the
// ConfigMap key; stdin is read as YAML, which also accepts JSON.
func Open(ctx context.Context, uri string) (*Reader, error) {
	uri = strings.TrimSpace(uri)
	if strings.HasPrefix(uri, ConfigMapURIScheme) {
		namespace, name, err := ParseConfigMapURI(uri)
		if err != nil {
			return nil, err
		}
		data, format, err := ReadConfigMap(ctx, nil, namespace, name)
		if err != nil {
			return nil, err
		}
		return NewReader(format, data)
	}
	if uri == StdoutURI {
		return NewFileReader(FormatYAML, uri)
	}
	return NewFileReader(FormatFromPath(uri), uri)
}

// Bytes returns the raw document.
func (r *Reader) Bytes() []byte {
	return r.data
}

// Format returns the document's format.
func (r *Reader) Format() Format {
	return r.format
}

// Deserialize decodes the document into v. Unknown fields are rejected.
func (r *Reader) Deserialize(v any) error {
	switch r.format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(r.data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("failed to decode json: %w", err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(r.data))
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("failed to decode yaml: %w", err)
		}
	}
	return nil
}
