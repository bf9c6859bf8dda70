package cli

import "github.com/charmbracelet/lipgloss"

type ColorKey int

// Colors
const (
	Black ColorKey = iota
	Amber100
	Amber600
	Gray300
	Gray400
	Gray500
	Gray900
	Green200
	Green700
	Red500
	Red700
	Sky300
	Sky500
	White
)

func (ck ColorKey) Hex() string {
	return map[ColorKey]string{
		Black:    "#000000",
		Amber100: "#fef3c6",
		Amber600: "#e17100",
		Gray300:  "#d4d4d4",
		Gray400:  "#a1a1a1",
		Gray500:  "#737373",
		Gray900:  "#1C1C1C",
		Green200: "#b9f8cf",
		Green700: "#008236",
		Red500:   "#fb2c36",
		Red700:   "#c10007",
		Sky300:   "#74d4ff",
		Sky500:   "#00a6f4",
		White:    "#FFFFFF",
	}[ck]
}

func (ck ColorKey) String() string {
	return map[ColorKey]string{
		Black:    "black",
		Amber100: "amber100",
		Amber600: "amber600",
		Gray300:  "gray300",
		Gray400:  "gray400",
		Gray500:  "gray500",
		Gray900:  "gray900",
		Green200: "green200",
		Green700: "green700",
		Red500:   "red500",
		Red700:   "red700",
		Sky300:   "sky300",
		Sky500:   "sky500",
		White:    "white",
	}[ck]
}

// LightDark picks light on light terminal backgrounds and dark otherwise.
func LightDark(light, dark ColorKey) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{
		Light: light.Hex(),
		Dark:  dark.Hex(),
	}
}
