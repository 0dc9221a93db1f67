// internal/scancode/translate.go
package scancode

// Direction selects the source and result columns.
type Direction int

const (
	ATToXT Direction = iota
	XTToAT
)

func (d Direction) String() string {
	if d == XTToAT {
		return "xt2at"
	}
	return "at2xt"
}

// Flags is the runtime parameter the engine reads. params.Params satisfies it.
type Flags interface {
	ExtendedKeys() bool
}

// Result is a resolved scan code.
type Result struct {
	Code  uint8
	Key   uint8
	Table TableID

	// StripPrefix means the code must be sent without an extended prefix.
	StripPrefix bool
}

// Engine translates single scan codes between AT and XT.
// Lookups have no side effects and keep no state between calls.
type Engine struct {
	flags Flags
}

func NewEngine(flags Flags) *Engine {
	return &Engine{flags: flags}
}

// Translate resolves code in direction dir.
// Without the extended prefix only the standard table is searched. With it,
// extended-short is searched first, then extended-nav when 101-key mode is on.
// ok is false when no applicable table holds the code; zero never matches.
func (e *Engine) Translate(dir Direction, code uint8, extended bool) (res Result, ok bool) {
	if code == 0 {
		return Result{}, false
	}

	if !extended {
		return lookup(standardKeys, TableStandard, dir, code)
	}

	if res, ok := lookup(extendedShortKeys, TableExtendedShort, dir, code); ok {
		return res, true
	}

	if e.flags == nil || !e.flags.ExtendedKeys() {
		return Result{}, false
	}

	res, ok = lookup(extendedNavKeys, TableExtendedNav, dir, code)
	if !ok {
		return Result{}, false
	}
	res.StripPrefix = stripped(res.Key, code, dir)
	return res, true
}

func lookup(table []KeyCode, id TableID, dir Direction, code uint8) (Result, bool) {
	for _, kc := range table {
		src, dst := kc.AT, kc.XT
		if dir == XTToAT {
			src, dst = kc.XT, kc.AT
		}
		if src == code {
			return Result{Code: dst, Key: kc.Key, Table: id}, true
		}
	}
	return Result{}, false
}

func stripped(key, code uint8, dir Direction) bool {
	for _, kc := range extendedStripKeys {
		src := kc.AT
		if dir == XTToAT {
			src = kc.XT
		}
		if kc.Key == key && src == code {
			return true
		}
	}
	return false
}
