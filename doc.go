// Package openapifixer provides a small toolkit for scripted, idempotent
// transformations on OpenAPI documents.
//
// The toolkit consists of three independent batch tools that share one data
// shape (a parsed OpenAPI document held as a generic mapping tree) but do not
// call each other at runtime; they are composed externally as a pipeline.
//
// # Overview
//
// The library consists of three primary packages, built on the foundational
// document package:
//
//   - renamer: rename schemas whose names contain whitespace and rewrite
//     every $ref that points at them
//   - correction: apply configuration-driven correction rules to path and
//     operation definitions, with idempotence detection
//   - hydrator: enrich a document with metadata, security schemes, common
//     schemas, translated text, default error responses, global parameters
//     and tag ordering from an external configuration
//
// # Quick Start
//
// Rename invalid schema names:
//
//	import "github.com/rafactx/openapi-fixer-v2/renamer"
//
//	result, err := renamer.RenameWithOptions(
//		renamer.WithFilePath("openapi.json"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("renamed %d schemas, updated %d references\n",
//		result.RenamedCount, result.RefsUpdated)
//
// Apply correction rules:
//
//	import "github.com/rafactx/openapi-fixer-v2/correction"
//
//	rules, err := correction.ParseRulesFile("corrections.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	report := correction.New().Apply(doc, rules)
//	if !report.Success() {
//		log.Fatalf("%d rules failed", report.FailedCount)
//	}
//
// Hydrate a document:
//
//	import "github.com/rafactx/openapi-fixer-v2/hydrator"
//
//	cfg, err := hydrator.ParseConfigFile("hydration.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := hydrator.New(cfg).Hydrate(doc)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("applied %d placeholder translations\n", result.Substitutions)
//
// # Error Handling
//
// All packages follow consistent error handling patterns:
//
//   - File I/O and parse errors: returned directly, fatal before any mutation
//   - Rename collisions: collected in Result.Collisions, never returned as error
//   - Rule failures: collected in Report.Outcomes, processing continues
//   - Integrity findings (dangling refs, orphaned parameters): collected and
//     reported, never auto-repaired
//
// Always check both the error return value and any collected error fields in
// result objects.
//
// # Command-Line Interface
//
// In addition to the library packages, the module provides a command-line
// interface:
//
//	# Rename schemas with whitespace in their names
//	openapi-fixer rename openapi.json
//
//	# Apply correction rules from a config file
//	openapi-fixer correct --config corrections.yaml openapi.json
//
//	# Hydrate a document from a configuration
//	openapi-fixer hydrate --config hydration.yaml openapi.json
//
// Install the CLI:
//
//	go install github.com/rafactx/openapi-fixer-v2/cmd/openapi-fixer@latest
package openapifixer
