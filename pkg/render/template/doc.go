// Package template defines the evaluator-neutral renderer contract used by the
// section preview. The pongo subpackage implements it with pongo2.
package template
