package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

func SettingsTabUI() fyne.CanvasObject {
	a := fyne.CurrentApp()
	prefs := a.Preferences()

	themeRadio := widget.NewRadioGroup(themeChoices, func(selected string) {
		prefs.SetString(prefTheme, selected)
		a.Settings().SetTheme(CreateThemeFromPreferences())
	})
	themeRadio.SetSelected(prefs.StringWithFallback(prefTheme, "System Default"))

	fontSizeSelect := widget.NewSelect(fontSizeChoices, func(s string) {
		prefs.SetString(prefFontSize, s)
		a.Settings().SetTheme(CreateThemeFromPreferences())
	})
	fontSizeSelect.SetSelected(prefs.StringWithFallback(prefFontSize, "Normal"))

	uiCard := widget.NewCard("UI Configuration", "", container.NewVBox(
		widget.NewLabel("UI Theme"), themeRadio,
		widget.NewLabel("Font Size"), fontSizeSelect,
	))
	return container.NewVScroll(container.NewVBox(uiCard))
}
