// Package preview renders section code for the editor preview. A remote
// storefront renderer is tried first when one is configured; on failure the
// section is rendered locally with the Liquid engine against mock or selected
// resource data, and the markup is sanitised before it is returned.
package preview
