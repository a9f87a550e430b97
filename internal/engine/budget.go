package engine

const (
	// CoreBaseMinutes is reserved for Core before anything else is split.
	CoreBaseMinutes = 60

	// FullSplitThreshold is the daily budget at which all four buckets get a share.
	FullSplitThreshold = 120

	// MaxCoreDebt caps the Core debt considered by one planning run.
	MaxCoreDebt = 300

	// BuilderDebtFloor is the Builder bucket's minimum when debt is reallocated.
	BuilderDebtFloor = 20
)

// Buckets is one day's budget split per priority, in minutes.
type Buckets struct {
	Core       int
	Builder    int
	Maintainer int
	Dabbler    int
}

func (b Buckets) Total() int {
	return b.Core + b.Builder + b.Maintainer + b.Dabbler
}

// For returns the bucket for p.
func (b Buckets) For(p Priority) int {
	switch p {
	case PriorityCore:
		return b.Core
	case PriorityBuilder:
		return b.Builder
	case PriorityMaintainer:
		return b.Maintainer
	case PriorityDabbler:
		return b.Dabbler
	default:
		return 0
	}
}

// ClampCoreDebt bounds debt to [0, MaxCoreDebt].
func ClampCoreDebt(debt int) int {
	if debt < 0 {
		return 0
	}
	if debt > MaxCoreDebt {
		return MaxCoreDebt
	}
	return debt
}

// Distribute splits availableMinutes across the four buckets, then pulls time
// into Core to repay coreDebt. The buckets always sum to availableMinutes and
// Core never exceeds its daily max.
func Distribute(availableMinutes int, coreDebt int) Buckets {
	if availableMinutes < 0 {
		availableMinutes = 0
	}
	if availableMinutes <= CoreBaseMinutes {
		return Buckets{Core: availableMinutes}
	}

	b := Buckets{Core: CoreBaseMinutes}
	remaining := availableMinutes - CoreBaseMinutes

	if availableMinutes >= FullSplitThreshold {
		coreSlice := remaining * 40 / 100
		b.Builder = remaining * 30 / 100
		b.Maintainer = remaining * 20 / 100
		b.Dabbler = remaining - coreSlice - b.Builder - b.Maintainer

		coreCap := DailyMax(PriorityCore)
		if overflow := b.Core + coreSlice - coreCap; overflow > 0 {
			coreSlice -= overflow
			b.Dabbler += overflow
		}
		b.Core += coreSlice
	} else {
		coreSlice := remaining * 70 / 100
		b.Core += coreSlice
		b.Builder = remaining - coreSlice
	}

	debt := ClampCoreDebt(coreDebt)
	if debt == 0 {
		return b
	}
	return reallocateDebt(b, debt)
}

// reallocateDebt steals from Dabbler, then Maintainer, then Builder down to its
// floor, stopping once the debt is covered or Core hits its cap.
func reallocateDebt(b Buckets, debt int) Buckets {
	need := debt
	if room := DailyMax(PriorityCore) - b.Core; room < need {
		need = room
	}
	if need <= 0 {
		return b
	}

	take := func(available int) int {
		if available <= 0 || need <= 0 {
			return 0
		}
		n := min(available, need)
		need -= n
		b.Core += n
		return n
	}

	b.Dabbler -= take(b.Dabbler)
	b.Maintainer -= take(b.Maintainer)
	b.Builder -= take(b.Builder - BuilderDebtFloor)
	return b
}
