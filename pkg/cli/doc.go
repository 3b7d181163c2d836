// Package cli implements the command-line interface of the advisor tool.
//
// # Overview
//
// The advisor CLI turns a loose description of a compute workload into a
// ranked recommendation of decentralized compute platforms. It extracts
// normalized requirements, scores each catalog platform, checks optional
// operational metrics against known problem patterns and builds a
// prioritized optimization plan.
//
// # Commands
//
// recommend - Full recommendation with optimization plan:
//
//	advisor recommend --text "simple AI projects, beginner, low budget"
//	advisor recommend -i workload.yaml -m latency=150 -o report.json -t json
//	advisor recommend -i cm://advisor/workload -o cm://advisor/report
//	advisor recommend --text "GPU rendering" --prose --seed 7
//
// requirements - Show extracted requirements only:
//
//	advisor requirements --text "ML training on a tight budget"
//
// score - Score platforms; unknown keys get "did you mean" suggestions:
//
//	advisor score --workload "ML training" -p akashNetwork -p netmindAI
//
// detect - Check a metrics snapshot against problem patterns:
//
//	advisor detect -m monthlyCost=500 -m budget=300 --category cost
//
// platforms - List the catalog:
//
//	advisor platforms --format table
//
// catalog - Validate, export, push and pull catalogs:
//
//	advisor catalog validate my-catalog.yaml
//	advisor catalog push my-catalog.yaml oci://ghcr.io/acme/catalog:v2
//	advisor catalog pull oci://ghcr.io/acme/catalog:v2 -o catalog.yaml
//
// serve - Run the HTTP API:
//
//	advisor serve --port 8080
//
// # Workload Input
//
// Requirement flags (--workload, --compute, --budget, --monthly-cost,
// --expertise, --security, --high-availability, --scalability, --text)
// override the fields of the document read with --input. Input documents are
// YAML or JSON:
//
//	description: "Need GPU instances for ML training"
//	workloadType: ML training
//	budget: 300
//	monthlyCost: 500
//	technicalExpertise: intermediate
//	performance:
//	  highAvailability: true
//
// # Global Flags
//
//	--debug        Enable debug logging
//	--log-json     Output logs in JSON format
//	--catalog      Catalog file or oci:// reference (env: ADVISOR_CATALOG)
//	--plain-http   Use HTTP for OCI registries
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Output Formats
//
// Every command that prints a document accepts --output/-o (file, - for
// stdout, or cm://namespace/name) and --format/-t:
//
//   - yaml (default): human-readable, suitable for version control
//   - json: machine-parseable
//   - table: flattened field/value rows for terminal viewing
//
// # Environment
//
//	LOG_LEVEL                   debug, info, warn, error
//	LOG_FORMAT                  text or json
//	ADVISOR_CATALOG             catalog source
//	ADVISOR_REGISTRY_USERNAME   registry user for catalog push/pull
//	ADVISOR_REGISTRY_PASSWORD   registry password for catalog push/pull
//	KUBECONFIG                  cluster used for cm:// input and output
//
// # Exit Codes
//
//	0  success
//	1  runtime failure
//	2  invalid input, flags or catalog data
package cli
