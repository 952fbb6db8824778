package trace

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff   Level = iota // no tracing
	LevelPhase              // driver + phase boundaries
	LevelFile               // lint map file transitions, validated files
	LevelDebug              // every CalculateLints call
)

var levelNames = []string{
	LevelOff:   "off",
	LevelPhase: "phase",
	LevelFile:  "file",
	LevelDebug: "debug",
}

// deepest scope emitted at each level
var levelScopes = []Scope{
	LevelPhase: ScopePhase,
	LevelFile:  ScopeFile,
	LevelDebug: ScopeDecl,
}

func (l Level) String() string { return nameOf(levelNames, l) }

// ParseLevel converts a flag or config value. Empty means off.
func ParseLevel(s string) (Level, error) {
	if s == "" {
		return LevelOff, nil
	}
	return parseName[Level]("trace level", levelNames, s)
}

// ShouldEmit reports whether events of scope pass this level.
func (l Level) ShouldEmit(scope Scope) bool {
	if l == LevelOff || int(l) >= len(levelScopes) {
		return false
	}
	return scope <= levelScopes[l]
}
