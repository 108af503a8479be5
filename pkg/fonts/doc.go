// Package fonts holds the static catalog of web-safe fonts offered by the
// font_picker setting and used to promote raw setting values into font
// descriptors during preview rendering.
package fonts
