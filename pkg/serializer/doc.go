// Package serializer reads and writes advisor documents.
//
// Documents are encoded as JSON, YAML, or a FIELD/VALUE table (write only).
// Destinations and sources are addressed by a single string:
//
//	""  or "-"           stdout / stdin
//	cm://namespace/name  a Kubernetes ConfigMap, under the advisor.json or
//	                     advisor.yaml key
//	anything else        a file path; .json means JSON, everything else YAML
//
// ConfigMap access uses the process-wide client from pkg/k8s/client, which is
// only built on first use.
//
// HTTP handlers use RespondJSON, or Respond to honour an Accept header asking
// for YAML. Both encode into a buffer before touching the ResponseWriter so an
// encoding failure still produces a clean 500.
package serializer
