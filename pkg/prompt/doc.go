// Package prompt edits section settings from a terminal. Each setting type
// maps to a prompt (text input, confirm, select, multi-line text) and the
// answers are written into a copy of the settings State. The Driver
// interface hides the terminal so editing flows can be scripted in tests.
package prompt
