package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveProjectID maps user input to a project UUID. Accepts the
// project code (case-insensitive), a full UUID, or a unique UUID prefix.
func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("project ID is required")
	}

	projects, err := app.Projects.List(ctx, false)
	if err != nil {
		return "", err
	}

	for _, p := range projects {
		if strings.EqualFold(p.Code, input) {
			return p.ID, nil
		}
	}
	for _, p := range projects {
		if p.ID == input {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveTaskID maps user input to a task UUID within a project.
// Accepts an exact name (case-insensitive), a full UUID, or a unique
// UUID prefix.
func resolveTaskID(ctx context.Context, app *App, projectID, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("task ID is required")
	}

	tasks, err := app.Tasks.ListByProject(ctx, projectID)
	if err != nil {
		return "", err
	}

	var nameMatches []string
	for _, t := range tasks {
		if t.ID == input {
			return t.ID, nil
		}
		if strings.EqualFold(t.Name, input) {
			nameMatches = append(nameMatches, t.ID)
		}
	}
	if len(nameMatches) == 1 {
		return nameMatches[0], nil
	}
	if len(nameMatches) > 1 {
		return "", fmt.Errorf("task name %q is ambiguous (%d matches)", input, len(nameMatches))
	}

	var matches []string
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, input) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("task not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("task ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
