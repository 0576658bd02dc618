// Package document provides loading, saving and traversal of OpenAPI
// documents held as generic mapping trees.
//
// A Document is the root mutable tree: a mapping from string keys to nested
// mappings, sequences and scalars, rooted at an OpenAPI object. It has a
// single owner per run; it is loaded once, mutated in place by exactly one
// tool, and saved once. There is no caching across invocations.
//
// The package also defines the Logger interface shared by the transformation
// packages, together with a no-op default and an adapter for log/slog.
package document
