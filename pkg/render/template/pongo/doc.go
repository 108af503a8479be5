// Package pongo renders Liquid section templates with pongo2.
//
// Liquid source is first rewritten into pongo2 markup by Translate. Property
// access, comparisons and filters are emitted as calls to helper functions
// installed in the template set's globals, and Liquid control flow (for,
// tablerow, assign, capture, cycle, break) runs on custom tags. The helpers
// apply Liquid semantics: only nil and false are falsy, missing properties
// resolve to nil and unknown filters return their input.
package pongo
