package serializer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	k8sclient "github.com/computeadvisor/advisor/pkg/k8s/client"
)

// ParseConfigMapURI splits cm://namespace/name.
func ParseConfigMapURI(uri string) (namespace, name string, err error) {
	rest, ok := strings.CutPrefix(uri, ConfigMapURIScheme)
	if !ok {
		return "", "", fmt.Errorf("invalid ConfigMap URI %q: missing %s prefix", uri, ConfigMapURIScheme)
	}
	namespace, name, ok = strings.Cut(rest, "/")
	if !ok || namespace == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("invalid ConfigMap URI %q: expected %snamespace/name", uri, ConfigMapURIScheme)
	}
	return namespace, name, nil
}

// DataKey returns the ConfigMap data key a document in format is stored under.
func DataKey(format Format) string {
	return ConfigMapDataKeyPrefix + "." + format.extension()
}

// ConfigMapWriter stores documents in a ConfigMap, creating it when needed.
type ConfigMapWriter struct {
	namespace string
	name      string
	format    Format
	client    kubernetes.Interface
}

// NewConfigMapWriter returns a writer that uses the process-wide client.
func NewConfigMapWriter(namespace, name string, format Format) *ConfigMapWriter {
	if format.IsUnknown() {
		format = FormatYAML
	}
	return &ConfigMapWriter{namespace: namespace, name: name, format: format}
}

// WithClient sets the client used instead of the process-wide one.
func (w *ConfigMapWriter) WithClient(c kubernetes.Interface) *ConfigMapWriter {
	w.client = c
	return w
}

// Serialize encodes data and stores it under DataKey(format), replacing any
// document previously stored there.
func (w *ConfigMapWriter) Serialize(ctx context.Context, data any) error {
	b, err := Encode(w.format, data)
	if err != nil {
		return err
	}

	c, err := clientOrDefault(w.client)
	if err != nil {
		return err
	}

	cms := c.CoreV1().ConfigMaps(w.namespace)
	key := DataKey(w.format)

	existing, err := cms.Get(ctx, w.name, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		cm := &corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{
				Name:      w.name,
				Namespace: w.namespace,
				Labels:    map[string]string{ManagedByLabel: managedByValue},
			},
			Data: map[string]string{key: string(b)},
		}
		if _, err := cms.Create(ctx, cm, metav1.CreateOptions{}); err != nil {
			return fmt.Errorf("failed to create ConfigMap %s/%s: %w", w.namespace, w.name, err)
		}
		slog.Debug("created ConfigMap", "namespace", w.namespace, "name", w.name, "key", key)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get ConfigMap %s/%s: %w", w.namespace, w.name, err)
	}

	updated := existing.DeepCopy()
	if updated.Data == nil {
		updated.Data = map[string]string{}
	}
	updated.Data[key] = string(b)
	if _, err := cms.Update(ctx, updated, metav1.UpdateOptions{}); err != nil {
		return fmt.Errorf("failed to update ConfigMap %s/%s: %w", w.namespace, w.name, err)
	}
	slog.Debug("updated ConfigMap", "namespace", w.namespace, "name", w.name, "key", key)
	return nil
}

// ReadConfigMap returns the document stored in a ConfigMap and its format.
// JSON is preferred when both a JSON and a YAML document are present.
func ReadConfigMap(ctx context.Context, c kubernetes.Interface, namespace, name string) ([]byte, Format, error) {
	c, err := clientOrDefault(c)
	if err != nil {
		return nil, "", err
	}

	cm, err := c.CoreV1().ConfigMaps(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("failed to get ConfigMap %s/%s: %w", namespace, name, err)
	}

	for _, format := range []Format{FormatJSON, FormatYAML} {
		if data, ok := cm.Data[DataKey(format)]; ok {
			return []byte(data), format, nil
		}
	}
	return nil, "", fmt.Errorf("ConfigMap %s/%s has no %s or %s key",
		namespace, name, DataKey(FormatJSON), DataKey(FormatYAML))
}

func clientOrDefault(c kubernetes.Interface) (kubernetes.Interface, error) {
	if c != nil {
		return c, nil
	}
	c, err := k8sclient.Get()
	if err != nil {
		return nil, fmt.Errorf("kubernetes client unavailable: %w", err)
	}
	return c, nil
}
