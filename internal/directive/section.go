package directive

// Section describes one block directive kind.
type Section struct {
	Open  string // canonical opener name
	Close string // canonical close marker, "" for define
	Body  bool   // the block stays open across newlines until Close
	// spellings accepted inside braces, lowercase
	OpenSpellings  []string
	CloseSpellings []string
}

var sections = []Section{
	{Open: StartOfChorus, Close: EndOfChorus, Body: true,
		OpenSpellings: []string{"soc", "start_of_chorus"}, CloseSpellings: []string{"eoc", "end_of_chorus"}},
	{Open: StartOfVerse, Close: EndOfVerse, Body: true,
		OpenSpellings: []string{"sov", "start_of_verse"}, CloseSpellings: []string{"end_of_verse"}},
	{Open: StartOfTab, Close: EndOfTab, Body: true,
		OpenSpellings: []string{"sot", "start_of_tab"}, CloseSpellings: []string{"eot", "end_of_tab"}},
	{Open: StartOfGrid, Close: EndOfGrid, Body: true,
		OpenSpellings: []string{"sog", "start_of_grid"}, CloseSpellings: []string{"eog", "end_of_grid"}},
	{Open: Define,
		OpenSpellings: []string{"define", "chord"}},
}

// Sections returns the block directive table in lexer priority order.
func Sections() []Section {
	return sections
}

// Lookup finds the section opened by the canonical name open.
func Lookup(open string) (Section, bool) {
	for _, s := range sections {
		if s.Open == open {
			return s, true
		}
	}
	return Section{}, false
}

// IsBlock reports whether name opens a block directive (including define).
func IsBlock(name string) bool {
	_, ok := Lookup(name)
	return ok
}

// IsBody reports whether name opens a block whose body spans lines.
func IsBody(name string) bool {
	s, ok := Lookup(name)
	return ok && s.Body
}

// IsClose reports whether name is a body close marker.
func IsClose(name string) bool {
	for _, s := range sections {
		if s.Close != "" && s.Close == name {
			return true
		}
	}
	return false
}
