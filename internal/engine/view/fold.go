package view

// Fold collapses the model lines after its header: lines Start+1
// through End are hidden, the header line Start stays visible.
type Fold struct {
	Start uint32 // header line, stays visible
	End   uint32 // last hidden line, inclusive
}

func (f Fold) hiddenLines() uint32 {
	return f.End - f.Start
}

// contains reports whether other nests entirely inside f.
func (f Fold) contains(other Fold) bool {
	return other.Start >= f.Start && other.End <= f.End
}

// disjoint reports whether the folds share no line.
func (f Fold) disjoint(other Fold) bool {
	return f.End < other.Start || other.End < f.Start
}
