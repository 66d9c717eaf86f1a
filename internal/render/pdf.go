package render

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// PDF writes a printable version of the view.
func PDF(w io.Writer, v View) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Task Manager")
	pdf.Ln(12)

	if v.Empty {
		pdf.SetFont("Arial", "I", 10)
		pdf.MultiCell(0, 6, tr(v.Placeholder), "0", "L", false)
		return pdf.Output(w)
	}

	for _, c := range v.Cards {
		pdf.SetFont("Arial", "B", 11)
		title := c.Title
		if c.Completed {
			title = "[done] " + title
		}
		pdf.MultiCell(0, 6, tr(title), "0", "L", false)

		pdf.SetFont("Arial", "", 9)
		meta := fmt.Sprintf("Priority: %s   Status: %s   Due: %s", c.Priority, selected(c.Statuses), c.Due)
		pdf.MultiCell(0, 5, tr(meta), "0", "L", false)
		if c.Description != "" {
			pdf.MultiCell(0, 5, tr(c.Description), "0", "L", false)
		}
		pdf.Ln(3)
	}
	return pdf.Output(w)
}

func selected(opts []Option) string {
	for _, o := range opts {
		if o.Selected {
			return o.Value
		}
	}
	return ""
}
