package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/litebase/memvfs/pkg/cli"
)

var PrimaryBackgroundColor = cli.LightDark(cli.Sky500, cli.Sky300)
var PrimaryForegroundColor = cli.LightDark(cli.White, cli.Black)
var TextColor = cli.LightDark(cli.Black, cli.White)
var MutedTextColor = cli.LightDark(cli.Gray500, cli.Gray400)

var TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(TextColor)
var KeyStyle = lipgloss.NewStyle().Foreground(MutedTextColor)
var ValueStyle = lipgloss.NewStyle().Foreground(TextColor)

var TableBorderColor = cli.LightDark(cli.Gray300, cli.Gray500)
var TableHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(PrimaryBackgroundColor)
var TableCellStyle = lipgloss.NewStyle().Padding(0, 1).Foreground(TextColor)

var alertStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

var AlertSuccessStyle = alertStyle.
	Background(cli.LightDark(cli.Green700, cli.Green200)).
	Foreground(cli.LightDark(cli.White, cli.Black))

var AlertInfoStyle = alertStyle.
	Background(cli.LightDark(cli.Gray300, cli.Gray500)).
	Foreground(cli.LightDark(cli.Gray900, cli.White))

var AlertDangerStyle = alertStyle.
	Background(cli.LightDark(cli.Red700, cli.Red500)).
	Foreground(cli.LightDark(cli.White, cli.White))

var AlertWarningStyle = alertStyle.
	Background(cli.LightDark(cli.Amber600, cli.Amber100)).
	Foreground(cli.LightDark(cli.White, cli.Black))
