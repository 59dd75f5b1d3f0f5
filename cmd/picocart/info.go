package main

import (
	"fmt"
	"strings"

	"github.com/bodgit/picocart"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff77a8")).MarginBottom(1)
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#83769c")).Width(12)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#fff1e8"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff004d"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#29adff")).Padding(0, 1)
)

func row(key, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render(key), valueStyle.Render(value))
}

func usedSprites(contents *picocart.Contents) int {
	var n int
	for s := 0; s < 256; s++ {
		x, y := s%16*8, s/16*8
	sprite:
		for dy := 0; dy < 8; dy++ {
			for dx := 0; dx < 8; dx++ {
				if contents.Graphics.NRGBAAt(x+dx, y+dy).A != 0 {
					n++
					break sprite
				}
			}
		}
	}
	return n
}

func usedTiles(contents *picocart.Contents) int {
	var n int
	for _, t := range contents.Map {
		if t != 0 {
			n++
		}
	}
	return n
}

func usedSFX(contents *picocart.Contents) int {
	var n int
	for i := range contents.SFX {
		if !contents.SFX[i].Empty() {
			n++
		}
	}
	return n
}

func flaggedSprites(contents *picocart.Contents) int {
	var n int
	for _, f := range contents.Flags {
		if f != 0 {
			n++
		}
	}
	return n
}

func render(name string, contents *picocart.Contents, codeErr error) string {
	program := fmt.Sprintf("%s, %d characters, %d lines", contents.Format, len(contents.Code), strings.Count(contents.Code, "\n")+1)
	if codeErr != nil {
		program = errStyle.Render(codeErr.Error())
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(name),
		row("program", program),
		row("sprites", fmt.Sprintf("%d of 256", usedSprites(contents))),
		row("flags", fmt.Sprintf("%d sprites", flaggedSprites(contents))),
		row("map", fmt.Sprintf("%d tiles", usedTiles(contents))),
		row("sfx", fmt.Sprintf("%d of %d", usedSFX(contents), len(contents.SFX))),
	)

	return boxStyle.Render(body) + "\n"
}
