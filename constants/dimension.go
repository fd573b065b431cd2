package constants

// DimensionCategory groups psychometric sub-scores by test family.
type DimensionCategory string

const (
	CategoryDarkFactor DimensionCategory = "dark_factor"
	CategoryDISC       DimensionCategory = "disc"
	CategoryBigFive    DimensionCategory = "big5"
	CategoryCognitive  DimensionCategory = "cognitive"
	CategoryOther      DimensionCategory = "other"
)

// Dimension values are percentile-like; anything outside this range is a
// validation error, never silently clamped.
const (
	DimensionMin = 0.0
	DimensionMax = 100.0
)
