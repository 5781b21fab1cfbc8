package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

var colorProdcatBlue = &color.NRGBA{R: 0x0, G: 0x78, B: 0xD4, A: 0xff}

// ProdcatTheme forces a color variant and text size on top of the default theme.
type ProdcatTheme struct {
	fyne.Theme
	variant  *fyne.ThemeVariant // nil follows the system
	textSize float32
}

func (t *ProdcatTheme) Color(name fyne.ThemeColorName, v fyne.ThemeVariant) color.Color {
	finalVariant := v
	if t.variant != nil {
		finalVariant = *t.variant
	}

	switch name {
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return colorProdcatBlue
	case theme.ColorNameSeparator:
		if finalVariant == theme.VariantDark {
			return &color.NRGBA{R: 0x4A, G: 0x4A, B: 0x4A, A: 0xff}
		}
		return &color.NRGBA{R: 0xD0, G: 0xD0, B: 0xD0, A: 0xff}
	}
	return t.Theme.Color(name, finalVariant)
}

func (t *ProdcatTheme) Size(name fyne.ThemeSizeName) float32 {
	if t.textSize > 0 && name == theme.SizeNameText {
		return t.textSize
	}
	return t.Theme.Size(name)
}

// Preference keys and their choices.
const (
	prefTheme    = "theme"
	prefFontSize = "fontSize"
)

var (
	themeChoices    = []string{"System Default", "Light", "Dark"}
	fontSizeChoices = []string{"Small", "Normal", "Large", "Extra Large"}
)

// CreateThemeFromPreferences builds the theme from the stored UI preferences.
func CreateThemeFromPreferences() fyne.Theme {
	prefs := fyne.CurrentApp().Preferences()
	return newTheme(
		prefs.StringWithFallback(prefTheme, "System Default"),
		prefs.StringWithFallback(prefFontSize, "Normal"),
	)
}

func newTheme(variantName, sizeName string) *ProdcatTheme {
	t := &ProdcatTheme{Theme: theme.DefaultTheme()}

	switch variantName {
	case "Light":
		v := theme.VariantLight
		t.variant = &v
	case "Dark":
		v := theme.VariantDark
		t.variant = &v
	}

	switch sizeName {
	case "Small":
		t.textSize = 12
	case "Normal":
		t.textSize = 14
	case "Large":
		t.textSize = 16
	case "Extra Large":
		t.textSize = 18
	}
	return t
}
