package cli

import (
	"context"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/salespro-app/salespro/internal/models"
)

// NotebookAdd appends a new entry to the personal notebook.
func (a *App) NotebookAdd(ctx context.Context) error {
	text, err := GetSimpleText(a.reader, "Entry text", os.Stdout)
	if err != nil {
		return err
	}
	kind, err := GetSimpleText(a.reader, "Type (habit/goal/idea/note)", os.Stdout)
	if err != nil {
		return err
	}

	entryType := models.NotebookNote
	switch strings.ToLower(kind) {
	case "habit":
		entryType = models.NotebookHabit
	case "goal":
		entryType = models.NotebookGoal
	case "idea":
		entryType = models.NotebookIdea
	}

	a.profile.Notebook = append(a.profile.Notebook, models.NotebookEntry{
		ID:   uuid.NewString(),
		Text: text,
		Type: entryType,
	})
	a.syncer.Save(ctx, a.profile)
	_, _ = printlnFn("Entry added.")
	return nil
}

// NotebookCheck toggles the checked state of an entry.
func (a *App) NotebookCheck(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Entry id", os.Stdout)
	if err != nil {
		return err
	}

	for i := range a.profile.Notebook {
		if a.profile.Notebook[i].ID != id {
			continue
		}
		a.profile.Notebook[i].IsChecked = !a.profile.Notebook[i].IsChecked
		a.syncer.Save(ctx, a.profile)
		_, _ = printlnFn("Entry updated.")
		return nil
	}
	_, _ = printlnFn("No entry with that id.")
	return nil
}

// NotebookList prints all notebook entries.
func (a *App) NotebookList(ctx context.Context) error {
	if len(a.profile.Notebook) == 0 {
		_, _ = printlnFn("Notebook is empty.")
		return nil
	}
	for _, e := range a.profile.Notebook {
		mark := " "
		if e.IsChecked {
			mark = "x"
		}
		_, _ = printlnFn("["+mark+"]", e.ID, string(e.Type), "-", e.Text)
	}
	return nil
}
