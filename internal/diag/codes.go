package diag

import (
	"fmt"

	"lintmap/internal/lint"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Modified UTF-8
	Utf8Info      Code = 1000
	Utf8Malformed Code = 1001
	Utf8BadName   Code = 1002

	// Outline / input
	InInfo          Code = 1100
	InBadOutline    Code = 1101
	InBadPosition   Code = 1102
	InUnknownLint   Code = 1103
	InDuplicateDecl Code = 1104

	// lintBase + lint.Category. Диапазон покрывает все категории.
	lintBase Code = 2000
	lintEnd  Code = 2100
)

var codeDescription = map[Code]string{
	UnknownCode:     "Unknown error",
	Utf8Info:        "Modified UTF-8 information",
	Utf8Malformed:   "Malformed modified UTF-8",
	Utf8BadName:     "Name is not valid modified UTF-8",
	InInfo:          "Input information",
	InBadOutline:    "Invalid outline file",
	InBadPosition:   "Position is out of range",
	InUnknownLint:   "Unknown lint category",
	InDuplicateDecl: "Duplicate top-level declaration",
}

// LintCode returns the code of warnings in category c.
func LintCode(c lint.Category) Code {
	return lintBase + Code(c)
}

// Category reports the lint category of a lint warning code.
func (c Code) Category() (lint.Category, bool) {
	if c < lintBase || c >= lintEnd {
		return 0, false
	}
	cat := lint.Category(c - lintBase)
	if cat.String() == "unknown" {
		return 0, false
	}
	return cat, true
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 1100:
		return fmt.Sprintf("UTF%04d", ic)
	case ic >= 1100 && ic < 2000:
		return fmt.Sprintf("IN%04d", ic)
	case ic >= 2000 && ic < 2100:
		return fmt.Sprintf("LNT%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	if cat, ok := c.Category(); ok {
		return "[" + cat.String() + "] warning"
	}
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
