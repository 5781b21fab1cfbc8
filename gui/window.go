package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"github.com/habedi/prodcat/catalog"
	"github.com/habedi/prodcat/pkg/bus"
)

// Run opens the main window on gw and blocks until it is closed.
func Run(version, baseURL string, gw catalog.Gateway) {
	myApp := app.NewWithID("com.github.habedi.prodcat")
	myApp.SetIcon(AppLogo)
	myApp.Settings().SetTheme(CreateThemeFromPreferences())

	myWindow := myApp.NewWindow("Prodcat")
	products := NewProductsView(myWindow, gw, bus.New[catalog.ActionEvent](), nil)

	mainTabs := container.NewAppTabs(
		container.NewTabItemWithIcon("Products", theme.ListIcon(), products.Content()),
		container.NewTabItemWithIcon("Settings", theme.SettingsIcon(), SettingsTabUI()),
		container.NewTabItemWithIcon("About", theme.InfoIcon(), ShowAboutUI(version, baseURL)),
	)
	mainTabs.SetTabLocation(container.TabLocationTop)

	myWindow.SetContent(mainTabs)
	myWindow.Resize(fyne.NewSize(960, 640))
	myWindow.SetOnClosed(products.Close)
	products.bus.Publish(catalog.GetAllEvent())
	myWindow.ShowAndRun()
}
