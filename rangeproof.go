package ringct

// BitRange bounds committed values: 0 <= v < 2^BitRange.
const BitRange = 64

// MaxValue is the largest value a rangeproof can cover.
const MaxValue = ^uint64(0)

// MaxAggregationSize is the most values a single aggregated
// bulletproof may cover. Must be a power of two.
const MaxAggregationSize = 64
