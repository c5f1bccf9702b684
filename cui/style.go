package cui

import "github.com/fatih/color"

var (
	styleBanner = color.New(color.Bold)
	stylePass   = color.New(color.FgGreen)
	styleFail   = color.New(color.FgRed)
)

const (
	iconPass = "✅"
	iconFail = "❌"
)

func statusStyle(passed bool) (*color.Color, string) {
	if passed {
		return stylePass, iconPass
	}
	return styleFail, iconFail
}
