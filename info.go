package usymlu

// Info reports statistics from a completed (or failed) symbolic analysis
// call, spec §6's "Info vector" expanded into named fields for idiomatic
// access, with ToSlice() producing the flat ABI-style array the spec
// describes for wire/ffi consumers.
type Info struct {
	Status Status

	NRow, NCol, Nz int

	RowSingletons, ColSingletons int
	NemptyRow, NemptyCol         int
	N2                           int

	Symmetry float64
	Nzdiag   int
	NzAAT    int

	NdenseRow, NdenseCol int

	StrategyUsed  Strategy
	OrderingUsed  OrderingKind
	QFixed        bool
	DiagPreferred bool

	PeakMemory           float64
	SizeEstimate         float64
	VariableInitEstimate float64

	LnzBound, UnzBound int
	Flops              float64

	MaxNRows, MaxNCols int
}

// Info vector slot positions, matching the well-known positions spec §6
// calls for. Only the slots this implementation populates are assigned;
// the rest of the 90-slot array stays at the spec's "-1 == not computed"
// sentinel, per spec §9's note that -1 always means unset.
const (
	infoStatus = iota
	infoNRow
	infoNCol
	infoNz
	infoRowSingletons
	infoColSingletons
	infoNemptyRow
	infoNemptyCol
	infoN2
	infoSymmetry
	infoNzdiag
	infoNzAAT
	infoNdenseRow
	infoNdenseCol
	infoStrategyUsed
	infoOrderingUsed
	infoQFixed
	infoDiagPreferred
	infoPeakMemory
	infoSizeEstimate
	infoVariableInitEstimate
	infoLnzBound
	infoUnzBound
	infoFlops
	infoMaxNRows
	infoMaxNCols

	infoVectorLen = 90
)

// ToSlice renders Info into the flat 90-slot array spec §6 describes,
// with unset slots left at -1.
func (in *Info) ToSlice() [infoVectorLen]float64 {
	var v [infoVectorLen]float64
	for i := range v {
		v[i] = -1
	}
	v[infoStatus] = float64(in.Status)
	v[infoNRow] = float64(in.NRow)
	v[infoNCol] = float64(in.NCol)
	v[infoNz] = float64(in.Nz)
	v[infoRowSingletons] = float64(in.RowSingletons)
	v[infoColSingletons] = float64(in.ColSingletons)
	v[infoNemptyRow] = float64(in.NemptyRow)
	v[infoNemptyCol] = float64(in.NemptyCol)
	v[infoN2] = float64(in.N2)
	v[infoSymmetry] = in.Symmetry
	v[infoNzdiag] = float64(in.Nzdiag)
	v[infoNzAAT] = float64(in.NzAAT)
	v[infoNdenseRow] = float64(in.NdenseRow)
	v[infoNdenseCol] = float64(in.NdenseCol)
	v[infoStrategyUsed] = float64(in.StrategyUsed)
	v[infoOrderingUsed] = float64(in.OrderingUsed)
	v[infoQFixed] = boolToFloat(in.QFixed)
	v[infoDiagPreferred] = boolToFloat(in.DiagPreferred)
	v[infoPeakMemory] = in.PeakMemory
	v[infoSizeEstimate] = in.SizeEstimate
	v[infoVariableInitEstimate] = in.VariableInitEstimate
	v[infoLnzBound] = float64(in.LnzBound)
	v[infoUnzBound] = float64(in.UnzBound)
	v[infoFlops] = in.Flops
	v[infoMaxNRows] = float64(in.MaxNRows)
	v[infoMaxNCols] = float64(in.MaxNCols)
	return v
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Trace is one stage-completion record accumulated during analysis
// (SPEC_FULL §E1.4). It carries no timing/duration field, and Info does
// not record stage or wall-clock timing either.
type Trace struct {
	Stage string
	Note  string
}
