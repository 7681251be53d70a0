// Package core provides the shared screen primitives for the layout
// and rendering pipeline: colors, styles, styled text runs and display
// width measurement. It exists so layout, renderer and the terminal
// sinks can share types without import cycles.
package core
