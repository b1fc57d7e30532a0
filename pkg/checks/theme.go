package checks

import (
	"dev/bravebird/ui-check-go/pkg/models"
)

// Selectors and classes of the theme demo page
const (
	ThemeToggleSelector = "#theme-toggle"
	SidebarSelector     = ".sidebar"
	LightModeClass      = "light-mode"
)

// NarrowViewport is the device size used for the responsive sidebar check
var NarrowViewport = models.Viewport{Width: 500, Height: 800}

// ThemeSuite is the built-in suite: toggle applies the light theme, a second
// toggle reverts it, the choice survives a reload, and the sidebar stays
// rendered at a narrow viewport.
func ThemeSuite(targetURL string) models.CheckSuite {
	return models.CheckSuite{
		Name:      "theme-toggle",
		TargetURL: targetURL,
		Checks: []models.CheckSpec{
			{
				SequenceID:  1,
				Type:        models.CheckNavigate,
				Description: "open the page",
			},
			{
				SequenceID:    2,
				Type:          models.CheckToggleClass,
				Description:   "toggle applies light mode",
				Selector:      ThemeToggleSelector,
				Class:         LightModeClass,
				ExpectPresent: true,
			},
			{
				SequenceID:    3,
				Type:          models.CheckToggleClass,
				Description:   "second toggle reverts to dark mode",
				Selector:      ThemeToggleSelector,
				Class:         LightModeClass,
				ExpectPresent: false,
			},
			{
				SequenceID:  4,
				Type:        models.CheckReloadPersist,
				Description: "theme choice survives a reload",
				Class:       LightModeClass,
			},
			{
				SequenceID:  5,
				Type:        models.CheckViewportWidth,
				Description: "sidebar visible at narrow viewport",
				Selector:    SidebarSelector,
				Viewport:    &models.Viewport{Width: NarrowViewport.Width, Height: NarrowViewport.Height},
			},
		},
	}
}
