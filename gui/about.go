package gui

import (
	"fmt"
	"runtime"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

func ShowAboutUI(version, baseURL string) fyne.CanvasObject {
	platform := fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
	lbl := widget.NewLabel(fmt.Sprintf(
		"Prodcat: browse and manage a product catalog\nVersion: %s, Platform: %s, Go Version: %s",
		version, platform, runtime.Version(),
	))
	lbl.Alignment = fyne.TextAlignCenter
	lbl.TextStyle = fyne.TextStyle{Bold: true}

	service := widget.NewLabel("Catalog service: " + baseURL)
	service.Alignment = fyne.TextAlignCenter
	return container.NewVBox(
		container.NewCenter(widget.NewIcon(AppLogo)),
		container.NewCenter(lbl),
		container.NewCenter(service),
	)
}
