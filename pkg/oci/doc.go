// Package oci publishes and fetches platform catalogs as OCI artifacts.
//
// A catalog artifact is an image manifest (OCI 1.1) with artifact type
// application/vnd.computeadvisor.catalog.v1 and a single YAML layer holding
// the catalog document. Locations are written oci://registry/repo:tag or
// oci://registry/repo@digest.
package oci
