package serializer

// URI scheme constants for input and output locations
const (
	// ConfigMapURIScheme is the URI scheme for Kubernetes ConfigMap locations.
	// Format: cm://namespace/configmap-name
	ConfigMapURIScheme = "cm://"

	// StdoutURI is the special URI for stdout (output) or stdin (input).
	StdoutURI = "-"

	// ConfigMapDataKeyPrefix prefixes the data key documents are stored under,
	// e.g. advisor.yaml.
	ConfigMapDataKeyPrefix = "advisor"

	// ManagedByLabel marks ConfigMaps written by the advisor.
	ManagedByLabel = "app.kubernetes.io/managed-by"
	managedByValue = "computeadvisor"
)
