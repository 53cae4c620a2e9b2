package variant

// Matrix describes a set of variants as the cartesian product of its axes.
type Matrix struct {
	Builds   []BuildType
	Backends []Backend
	Langs    []Language
}

// supported is the set of variants dsbuild exposes as entry points:
// instrumented debug/release builds for both backends, plus an
// uninstrumented baseline for comparison runs.
var supported = []Matrix{
	{
		Builds:   []BuildType{Debug, Release},
		Backends: []Backend{Mask, MPX},
		Langs:    Languages,
	},
	{
		Builds:   []BuildType{Baseline},
		Backends: []Backend{None},
		Langs:    Languages,
	},
}

// Combinations returns every variant of the matrix. Builds vary slowest and
// languages fastest, so the result order is stable.
func (m Matrix) Combinations() []Variant {
	if m.CombinationCount() == 0 {
		return nil
	}
	out := make([]Variant, 0, m.CombinationCount())
	for _, b := range m.Builds {
		for _, be := range m.Backends {
			for _, l := range m.Langs {
				out = append(out, Variant{Build: b, Backend: be, Lang: l})
			}
		}
	}
	return out
}

// CombinationCount returns the number of variants in the matrix.
func (m Matrix) CombinationCount() int {
	return len(m.Builds) * len(m.Backends) * len(m.Langs)
}

// All returns every supported variant.
func All() []Variant {
	var out []Variant
	for _, m := range supported {
		out = append(out, m.Combinations()...)
	}
	return out
}
