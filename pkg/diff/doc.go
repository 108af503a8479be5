// Package diff computes line-oriented differences between two versions of
// section code and groups changed lines into hunks with surrounding context.
//
// Line matching is delegated to diffmatchpatch's Myers implementation with
// the timeout disabled, so the add/remove counts are always minimal.
package diff
