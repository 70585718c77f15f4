package widget

// MinSize returns the smallest terminal area, in cells, in which w renders
// without children overlapping or borders being cut off.
func MinSize(w Widget) (cols, rows int) {
	switch v := w.(type) {
	case *Label:
		return leafMinSize(&v.leaf)
	case *Button:
		return leafMinSize(&v.leaf)
	case *Container:
		return containerMinSize(v)
	default:
		panic(emptySlot("measured"))
	}
}

func leafMinSize(l *leaf) (cols, rows int) {
	cols = int(textWidth(l.text)) + 2
	if l.align == AlignCenter {
		cols++
	}
	rows = 1
	if l.wrap {
		rows = 2
	}
	return cols, rows
}

func containerMinSize(c *Container) (cols, rows int) {
	maxCols := 0
	for i, child := range c.slots {
		cc, cr := MinSize(child)
		maxCols = max(maxCols, cc)
		pad := int(padding(child))
		if c.orientation == Horizontal {
			rows = max(rows, pad+cr)
		} else {
			rows = max(rows, rowStride*i+pad+cr)
		}
	}
	if c.orientation == Horizontal {
		return maxCols * len(c.slots), rows
	}
	return maxCols, rows
}
