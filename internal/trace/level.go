package trace

import "fmt"

// Level controls how fine-grained the recorded scopes are.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // только ring buffer, печатается при ошибке
	LevelPhase        // команда и фазы
	LevelDetail       // + файлы
	LevelDebug        // + определения
)

var levelNames = []string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts the names above in any case; "" is off.
func ParseLevel(s string) (Level, error) {
	if s == "" {
		return LevelOff, nil
	}
	if i, ok := lookupName(levelNames, s); ok {
		return Level(i), nil
	}
	return LevelOff, fmt.Errorf("invalid trace level %q (want off, error, phase, detail or debug)", s)
}

// maxScope is the finest scope each level records. LevelError keeps phase
// events so the failure dump shows where the command stopped.
var maxScope = [...]Scope{
	LevelError:  ScopePhase,
	LevelPhase:  ScopePhase,
	LevelDetail: ScopeFile,
	LevelDebug:  ScopeDef,
}

// ShouldEmit reports whether events of scope pass this level.
func (l Level) ShouldEmit(scope Scope) bool {
	return l != LevelOff && int(l) < len(maxScope) && scope <= maxScope[l]
}
