package labels

// Slot is one label placed on a page.
type Slot struct {
	// Index is the slot on the page, 0..LabelsPerPage-1.
	Index    int
	Label    LabelData
	Position Position
}

// Page is one sheet of labels.
type Page struct {
	// Index is the 0-based sheet number.
	Index int
	Slots []Slot
}

// Paginate groups items into sheets. Item i lands on page i/LabelsPerPage in
// slot i%LabelsPerPage.
func Paginate(items []LabelData) []Page {
	chunks := ChunkIntoPages(items)
	pages := make([]Page, len(chunks))
	for p, chunk := range chunks {
		slots := make([]Slot, len(chunk))
		for s, item := range chunk {
			slots[s] = Slot{
				Index:    s,
				Label:    item,
				Position: slotPositions[s],
			}
		}
		pages[p] = Page{Index: p, Slots: slots}
	}
	return pages
}

// LabelCount returns the number of labels over all pages.
func LabelCount(pages []Page) int {
	n := 0
	for _, p := range pages {
		n += len(p.Slots)
	}
	return n
}
