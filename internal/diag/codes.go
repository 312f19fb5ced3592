package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// lexical
	LexInfo              Code = 1000
	LexUnknownChar       Code = 1001
	LexInvalidUTF8       Code = 1002
	LexUnterminatedChord Code = 1003
	LexBadDefine         Code = 1004

	// I/O
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002

	// songbook config
	CfgInvalid      Code = 5001
	CfgUnknownValue Code = 5002

	// observability
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:          "Unknown error",
	LexInfo:              "Lexical information",
	LexUnknownChar:       "Unknown character",
	LexInvalidUTF8:       "Invalid UTF-8 sequence",
	LexUnterminatedChord: "Unterminated chord",
	LexBadDefine:         "Malformed chord definition",
	IOLoadFileError:      "I/O load file error",
	IOCacheError:         "Token cache error",
	CfgInvalid:           "Invalid songbook configuration",
	CfgUnknownValue:      "Unknown configuration value",
	ObsTimings:           "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
