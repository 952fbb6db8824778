package lint

import "math/bits"

// Category is a named class of compiler warning.
type Category uint8

const (
	Auxiliaryclass Category = iota
	Cast
	Classfile
	Deprecation
	DepAnn
	Divzero
	Empty
	Exports
	Fallthrough
	Finally
	LossyConversions
	Missing
	Module
	Opens
	Options
	Output
	Overloads
	Overrides
	Path
	Processing
	Rawtypes
	Removal
	RequiresAutomatic
	RequiresTransitiveAutomatic
	Serial
	Static
	Strictfp
	TextBlocks
	ThisEscape
	Try
	Unchecked
	Varargs
	Preview
	Restricted

	numCategories
)

var categoryNames = [numCategories]string{
	Auxiliaryclass:              "auxiliaryclass",
	Cast:                        "cast",
	Classfile:                   "classfile",
	Deprecation:                 "deprecation",
	DepAnn:                      "dep-ann",
	Divzero:                     "divzero",
	Empty:                       "empty",
	Exports:                     "exports",
	Fallthrough:                 "fallthrough",
	Finally:                     "finally",
	LossyConversions:            "lossy-conversions",
	Missing:                     "missing-explicit-ctor",
	Module:                      "module",
	Opens:                       "opens",
	Options:                     "options",
	Output:                      "output-file-clash",
	Overloads:                   "overloads",
	Overrides:                   "overrides",
	Path:                        "path",
	Processing:                  "processing",
	Rawtypes:                    "rawtypes",
	Removal:                     "removal",
	RequiresAutomatic:           "requires-automatic",
	RequiresTransitiveAutomatic: "requires-transitive-automatic",
	Serial:                      "serial",
	Static:                      "static",
	Strictfp:                    "strictfp",
	TextBlocks:                  "text-blocks",
	ThisEscape:                  "this-escape",
	Try:                         "try",
	Unchecked:                   "unchecked",
	Varargs:                     "varargs",
	Preview:                     "preview",
	Restricted:                  "restricted",
}

var categoryByName = func() map[string]Category {
	m := make(map[string]Category, numCategories)
	for c, name := range categoryNames {
		m[name] = Category(c)
	}
	return m
}()

// String returns the option name, e.g. "dep-ann".
func (c Category) String() string {
	if c >= numCategories {
		return "unknown"
	}
	return categoryNames[c]
}

// ParseCategory looks up a category by its option name.
func ParseCategory(name string) (Category, bool) {
	c, ok := categoryByName[name]
	return c, ok
}

// Categories returns every category in declaration order.
func Categories() []Category {
	out := make([]Category, numCategories)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// Set is a bit set of categories.
type Set uint64

const allSet = Set(1)<<numCategories - 1

// SetOf builds a set from cs.
func SetOf(cs ...Category) Set {
	var s Set
	for _, c := range cs {
		s = s.With(c)
	}
	return s
}

func (s Set) Has(c Category) bool    { return s&(1<<c) != 0 }
func (s Set) With(c Category) Set    { return s | 1<<c }
func (s Set) Without(c Category) Set { return s &^ (1 << c) }
func (s Set) Len() int               { return bits.OnesCount64(uint64(s)) }

// Slice lists the members in declaration order.
func (s Set) Slice() []Category {
	out := make([]Category, 0, s.Len())
	for c := range numCategories {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}
