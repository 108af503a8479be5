// Package color parses CSS color strings and reproduces the host storefront's
// color filter arithmetic (conversion, lightness/saturation shifts, mixing,
// contrast and channel access). All functions are pure; unparseable input
// degrades to a documented fallback instead of failing.
package color
