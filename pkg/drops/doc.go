// Package drops wraps fetched store resources (products, collections,
// articles, the shop) and section settings in read-only views a template
// evaluator can walk. Every view answers a fixed set of typed accessors and
// falls back to the raw resource data for any other name, so templates that
// reference attributes the preview does not model still resolve.
package drops
