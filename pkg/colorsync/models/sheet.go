package models

// Sheet is a sparse grid of cells for a single worksheet.
// Row and column indices are 0-based.
type Sheet struct {
	// Name is the worksheet name.
	Name string `json:"name"`
	// Rows holds one slice per row; a nil row or nil cell is absent.
	Rows [][]*Cell `json:"rows,omitempty"`
}

// Cell returns the cell at (row, col), or nil when the position is absent.
func (s *Sheet) Cell(row, col int) *Cell {
	if row < 0 || row >= len(s.Rows) || col < 0 {
		return nil
	}
	cells := s.Rows[row]
	if col >= len(cells) {
		return nil
	}
	return cells[col]
}

// LastRow returns the index of the last populated row, or -1 if the sheet is empty.
func (s *Sheet) LastRow() int {
	for r := len(s.Rows) - 1; r >= 0; r-- {
		if s.LastCol(r) >= 0 {
			return r
		}
	}
	return -1
}

// LastCol returns the index of the last populated cell in row, or -1.
func (s *Sheet) LastCol(row int) int {
	if row < 0 || row >= len(s.Rows) {
		return -1
	}
	cells := s.Rows[row]
	for c := len(cells) - 1; c >= 0; c-- {
		if cells[c] != nil {
			return c
		}
	}
	return -1
}
