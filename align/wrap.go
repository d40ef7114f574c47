package align

// Block is a run of consecutive columns that fits on one line
type Block struct {
	Reference  Row
	Hypothesis Row
	Evaluation Row
}

// Wrap splits the columns into blocks no wider than cols terminal columns.
// A column wider than cols gets a block of its own.
func (a *Alignment) Wrap(cols int) []Block {
	var blocks []Block
	start, w := 0, 0
	for k, cell := range a.Reference {
		cw := Width(cell)
		if k > start && w+1+cw > cols {
			blocks = append(blocks, a.block(start, k))
			start, w = k, 0
		}
		if k > start {
			w++ // separator
		}
		w += cw
	}
	if start < len(a.Reference) {
		blocks = append(blocks, a.block(start, len(a.Reference)))
	}
	return blocks
}

func (a *Alignment) block(i, j int) Block {
	return Block{a.Reference[i:j], a.Hypothesis[i:j], a.Evaluation[i:j]}
}
