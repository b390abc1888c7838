package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mfigueroa/obra/internal/cli/formatter"
	"github.com/mfigueroa/obra/internal/domain"
)

// obraHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func obraHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// validateRequiredDate accepts only a YYYY-MM-DD date string.
func validateRequiredDate(s string) error {
	if _, err := time.Parse(domain.DateLayout, s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// validateOptionalMoney accepts empty or a non-negative amount.
func validateOptionalMoney(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return fmt.Errorf("enter a non-negative amount")
	}
	return nil
}

// taskFormValues collects the string state of the interactive add form.
type taskFormValues struct {
	Name     string
	Category string
	Start    string
	End      string
	Cost     string
}

// cost converts the optional money field, empty meaning zero.
func (v taskFormValues) cost() (float64, error) {
	if v.Cost == "" {
		return 0, nil
	}
	c, err := strconv.ParseFloat(v.Cost, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid cost %q: %w", v.Cost, err)
	}
	return c, nil
}

// taskAddForm builds the themed form for interactively adding a task.
func taskAddForm(v *taskFormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task Name").
				Placeholder("Pour slab").
				Value(&v.Name).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Category (blank for none)").
				Placeholder("Structure").
				Value(&v.Category),
			huh.NewInput().
				Title("Plan Start (YYYY-MM-DD)").
				Placeholder("2026-09-01").
				Value(&v.Start).
				Validate(validateRequiredDate),
			huh.NewInput().
				Title("Plan End (YYYY-MM-DD)").
				Placeholder("2026-09-14").
				Value(&v.End).
				Validate(validateRequiredDate),
			huh.NewInput().
				Title("Cost (blank for 0)").
				Placeholder("25000").
				Value(&v.Cost).
				Validate(validateOptionalMoney),
		),
	).WithTheme(obraHuhTheme()).WithShowHelp(false)
}
