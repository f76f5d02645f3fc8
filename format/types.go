package format

type (
	DimensionType    uint8
	SamplingStrategy uint8
	StackStrategy    uint8
	BrushType        uint8
	VisualState      uint8
	Phase            uint8
	ColorBy          uint8
)

const (
	DimensionNumber  DimensionType = 0x1 // DimensionNumber represents a numeric dimension.
	DimensionOrdinal DimensionType = 0x2 // DimensionOrdinal represents a category dimension stored as codes.
	DimensionTime    DimensionType = 0x3 // DimensionTime represents a time dimension stored as epoch milliseconds.
)

const (
	SamplingNone    SamplingStrategy = 0x0 // SamplingNone disables down-sampling.
	SamplingAverage SamplingStrategy = 0x1 // SamplingAverage keeps the bucket mean.
	SamplingMin     SamplingStrategy = 0x2 // SamplingMin keeps the bucket minimum.
	SamplingMax     SamplingStrategy = 0x3 // SamplingMax keeps the bucket maximum.
	SamplingSum     SamplingStrategy = 0x4 // SamplingSum keeps the bucket sum.
	SamplingLTTB    SamplingStrategy = 0x5 // SamplingLTTB uses largest-triangle-three-buckets.
	SamplingMinMax  SamplingStrategy = 0x6 // SamplingMinMax keeps both extremes of a bucket.
)

const (
	StackSameSign StackStrategy = 0x1 // StackSameSign stacks positives on positives and negatives on negatives.
	StackAll      StackStrategy = 0x2 // StackAll stacks every value onto the running sum.
	StackPositive StackStrategy = 0x3 // StackPositive only stacks positive values.
	StackNegative StackStrategy = 0x4 // StackNegative only stacks negative values.
)

const (
	BrushRect    BrushType = 0x1 // BrushRect is an axis-aligned rectangle.
	BrushLineX   BrushType = 0x2 // BrushLineX is an interval along the horizontal pixel axis.
	BrushLineY   BrushType = 0x3 // BrushLineY is an interval along the vertical pixel axis.
	BrushPolygon BrushType = 0x4 // BrushPolygon is a free-form polygon.
)

const (
	InRange    VisualState = 0x1 // InRange marks values inside the selected range.
	OutOfRange VisualState = 0x2 // OutOfRange marks values outside the selected range.
)

const (
	PhaseTransform Phase = 0x1 // PhaseTransform runs data transforms.
	PhaseStatistic Phase = 0x2 // PhaseStatistic runs stacking and sampling.
	PhaseVisual    Phase = 0x3 // PhaseVisual runs style, legend and visual-map coders.
	PhaseLayout    Phase = 0x4 // PhaseLayout is reserved for the external layout stage.
)

const (
	ColorBySeries ColorBy = 0x1 // ColorBySeries gives every item the series colour.
	ColorByData   ColorBy = 0x2 // ColorByData cycles the palette per item.
)

func (d DimensionType) String() string {
	switch d {
	case DimensionNumber:
		return "number"
	case DimensionOrdinal:
		return "ordinal"
	case DimensionTime:
		return "time"
	default:
		return "unknown"
	}
}

// Valid reports whether d is one of the declared dimension types.
func (d DimensionType) Valid() bool {
	return d >= DimensionNumber && d <= DimensionTime
}

func (s SamplingStrategy) String() string {
	switch s {
	case SamplingNone:
		return "none"
	case SamplingAverage:
		return "average"
	case SamplingMin:
		return "min"
	case SamplingMax:
		return "max"
	case SamplingSum:
		return "sum"
	case SamplingLTTB:
		return "lttb"
	case SamplingMinMax:
		return "minmax"
	default:
		return "unknown"
	}
}

// ParseSamplingStrategy converts an option string into a SamplingStrategy.
// An empty string maps to SamplingNone.
func ParseSamplingStrategy(s string) (SamplingStrategy, bool) {
	switch s {
	case "", "none":
		return SamplingNone, true
	case "average":
		return SamplingAverage, true
	case "min":
		return SamplingMin, true
	case "max":
		return SamplingMax, true
	case "sum":
		return SamplingSum, true
	case "lttb":
		return SamplingLTTB, true
	case "minmax":
		return SamplingMinMax, true
	default:
		return SamplingNone, false
	}
}

func (s StackStrategy) String() string {
	switch s {
	case StackSameSign:
		return "samesign"
	case StackAll:
		return "all"
	case StackPositive:
		return "positive"
	case StackNegative:
		return "negative"
	default:
		return "unknown"
	}
}

func (b BrushType) String() string {
	switch b {
	case BrushRect:
		return "rect"
	case BrushLineX:
		return "lineX"
	case BrushLineY:
		return "lineY"
	case BrushPolygon:
		return "polygon"
	default:
		return "unknown"
	}
}

func (v VisualState) String() string {
	switch v {
	case InRange:
		return "inRange"
	case OutOfRange:
		return "outOfRange"
	default:
		return "unknown"
	}
}

func (p Phase) String() string {
	switch p {
	case PhaseTransform:
		return "transform"
	case PhaseStatistic:
		return "statistic"
	case PhaseVisual:
		return "visual"
	case PhaseLayout:
		return "layout"
	default:
		return "unknown"
	}
}

func (c ColorBy) String() string {
	switch c {
	case ColorBySeries:
		return "series"
	case ColorByData:
		return "data"
	default:
		return "unknown"
	}
}
