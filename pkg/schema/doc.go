// Package schema reads the configuration block embedded in section code. It
// locates and decodes the block, resolves translation-key labels into readable
// text and computes the initial settings state the editor and the preview
// start from. Missing or malformed blocks are a normal state: Parse returns
// nil and callers carry on without customisable settings.
package schema
