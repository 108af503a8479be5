// Package filters implements the storefront template filters used by the
// local preview renderer: color math, font CSS generation, string, math,
// array and money helpers. Filters are evaluator-neutral Funcs; adapters
// register them with a concrete template engine.
package filters
