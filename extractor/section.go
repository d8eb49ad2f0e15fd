package extractor

// Section is the statement section the walk is currently inside.
type Section int

const (
	SectionNone Section = iota
	SectionOperating
	SectionNonOperating
)

func (s Section) String() string {
	switch s {
	case SectionOperating:
		return "operating"
	case SectionNonOperating:
		return "nonoperating"
	default:
		return "none"
	}
}

// sectionTracker holds the current section for one page. It is re-seeded at
// the start of every page and carried across tables on the same page.
type sectionTracker struct {
	section Section
}

// apply transitions the tracker for one classified row. Total and item
// verdicts are observations within the current section and do not move it;
// recording an operating value closes the section separately (see
// closeOperating) so a smaller number later in the table cannot overwrite it.
func (t *sectionTracker) apply(v Verdict) {
	switch v {
	case VerdictEnterOperating:
		t.section = SectionOperating
	case VerdictEnterNonOperating:
		t.section = SectionNonOperating
	case VerdictExitOperating, VerdictPositionOrBalance:
		t.section = SectionNone
	}
}

// closeOperating is called once an operating revenue value has been recorded.
func (t *sectionTracker) closeOperating() {
	if t.section == SectionOperating {
		t.section = SectionNone
	}
}
