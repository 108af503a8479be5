// Package mockdata ships the placeholder store data used when a preview has
// no real resources selected. Presets are grouped by category and overlay the
// default context; callers may merge their own YAML or JSON payload on top.
package mockdata
