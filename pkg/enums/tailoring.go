package enums

type SuitSize string

const (
	SuitSizeXS SuitSize = "XS"
	SuitSizeS  SuitSize = "S"
	SuitSizeM  SuitSize = "M"
	SuitSizeL  SuitSize = "L"
	SuitSizeXL SuitSize = "XL"
)

var validSuitSizes = []SuitSize{SuitSizeXS, SuitSizeS, SuitSizeM, SuitSizeL, SuitSizeXL}

func (s SuitSize) String() string { return string(s) }

func (s SuitSize) IsValid() bool { return member(validSuitSizes, s) }

func ParseSuitSize(value string) (SuitSize, error) {
	return parse("suit size", validSuitSizes, value)
}

type FitStyle string

const (
	FitStyleSlim     FitStyle = "Slim"
	FitStyleRegular  FitStyle = "Regular"
	FitStyleTailored FitStyle = "Tailored"
	FitStyleLoose    FitStyle = "Loose"
)

var validFitStyles = []FitStyle{FitStyleSlim, FitStyleRegular, FitStyleTailored, FitStyleLoose}

func (f FitStyle) String() string { return string(f) }

func (f FitStyle) IsValid() bool { return member(validFitStyles, f) }

func ParseFitStyle(value string) (FitStyle, error) {
	return parse("fit style", validFitStyles, value)
}

// BottomStyle only applies to women's suits.
type BottomStyle string

const (
	BottomStyleTrouser BottomStyle = "trouser"
	BottomStyleSkirt   BottomStyle = "skirt"
)

func (b BottomStyle) String() string { return string(b) }

func (b BottomStyle) IsValid() bool {
	return b == BottomStyleTrouser || b == BottomStyleSkirt
}

func ParseBottomStyle(value string) (BottomStyle, error) {
	return parse("bottom style", []BottomStyle{BottomStyleTrouser, BottomStyleSkirt}, value)
}

type Lapels string

const (
	LapelsNotch Lapels = "Notch"
	LapelsPeak  Lapels = "Peak"
	LapelsShawl Lapels = "Shawl"
)

var validLapels = []Lapels{LapelsNotch, LapelsPeak, LapelsShawl}

func (l Lapels) String() string { return string(l) }

func (l Lapels) IsValid() bool { return member(validLapels, l) }

func ParseLapels(value string) (Lapels, error) {
	return parse("lapels", validLapels, value)
}
