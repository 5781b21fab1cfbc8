package gui

import (
	_ "embed"

	"fyne.io/fyne/v2"
)

//go:embed assets/logo.svg
var logoSVG []byte

// AppLogo is the resource for the embedded logo.svg file.
var AppLogo = fyne.NewStaticResource("logo.svg", logoSVG)
