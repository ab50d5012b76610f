package docweave

// Deep copies of structural nodes, used by loop expansion: every item
// gets its own copy of the bounded region so that resolution of one
// clone cannot leak into another. Formatting property pointers are
// shared between clones; the engine treats them as opaque and never
// mutates them.

func cloneElements(elements []BodyElement) []BodyElement {
	cloned := make([]BodyElement, 0, len(elements))
	for _, elem := range elements {
		switch el := elem.(type) {
		case *Paragraph:
			cloned = append(cloned, cloneParagraph(el))
		case *Table:
			cloned = append(cloned, cloneTable(el))
		default:
			cloned = append(cloned, elem)
		}
	}
	return cloned
}

func cloneParagraph(para *Paragraph) *Paragraph {
	return &Paragraph{
		Properties: para.Properties,
		Runs:       cloneRuns(para.Runs),
	}
}

func cloneRuns(runs []Run) []Run {
	if runs == nil {
		return nil
	}
	cloned := make([]Run, len(runs))
	for i, run := range runs {
		cloned[i] = cloneRun(run)
	}
	return cloned
}

func cloneRun(run Run) Run {
	c := Run{
		Properties: run.Properties,
		Break:      run.Break,
	}
	if run.Text != nil {
		text := *run.Text
		c.Text = &text
	}
	return c
}

func cloneTable(table *Table) *Table {
	return &Table{
		Properties: table.Properties,
		Grid:       table.Grid,
		Rows:       cloneRows(table.Rows),
	}
}

func cloneRows(rows []TableRow) []TableRow {
	if rows == nil {
		return nil
	}
	cloned := make([]TableRow, len(rows))
	for i := range rows {
		cloned[i] = cloneRow(rows[i])
	}
	return cloned
}

func cloneRow(row TableRow) TableRow {
	c := TableRow{Properties: row.Properties}
	c.Cells = make([]TableCell, len(row.Cells))
	for i := range row.Cells {
		c.Cells[i] = cloneCell(row.Cells[i])
	}
	return c
}

func cloneCell(cell TableCell) TableCell {
	c := TableCell{Properties: cell.Properties}
	c.Paragraphs = make([]Paragraph, len(cell.Paragraphs))
	for i := range cell.Paragraphs {
		c.Paragraphs[i] = *cloneParagraph(&cell.Paragraphs[i])
	}
	return c
}
