package source

import (
	"fmt"
)

// Span is a half-open character range inside one file.
type Span struct {
	File  FileID
	Start uint32 // в символах включительно
	End   uint32 // в символах не включительно
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}
