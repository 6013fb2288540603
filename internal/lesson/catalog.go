package lesson

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"debacademy/internal/model"
)

// WriteCatalog prints every demoed command of root as a table, grouped by
// topic and lesson.
func WriteCatalog(w io.Writer, root *model.Menu) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Topic", "Lesson", "Command", "What it does"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetAutoMergeCells(true)
	table.SetRowLine(true)

	for _, topic := range root.Options {
		if topic.Action.Kind != model.ActionSubmenu {
			continue
		}
		for _, lesson := range topic.Action.Submenu.Options {
			if lesson.Action.Kind != model.ActionLesson {
				continue
			}
			for _, demo := range model.Demos(lesson.Action.Steps) {
				table.Append([]string{topic.Label, lesson.Label, demo.Command, demo.Description})
			}
		}
	}
	table.Render()
}
