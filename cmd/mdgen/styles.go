package main

import "github.com/charmbracelet/lipgloss"

// Styles for stderr diagnostics. Data output on stdout is never
// styled.
var (
	styleFile = lipgloss.NewStyle().Bold(true)
	styleWarn = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleOK   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleDim  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)
