package volt

import "fmt"

// Location is the position of a rule within a VOLT source.
// Lines and columns start at 1.
type Location struct {
	File   string
	Line   int
	Column int
}

func (loc Location) String() string {
	file := loc.File
	if file == "" {
		file = "<volt>"
	}
	return fmt.Sprintf("%s:%d:%d", file, loc.Line, loc.Column)
}
