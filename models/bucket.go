package models

import "math"

// PerformanceBucket is a coarse worldwide revenue tier.
type PerformanceBucket string

const (
	BucketNone        PerformanceBucket = ""
	BucketLow         PerformanceBucket = "Low (<$100M)"
	BucketMedium      PerformanceBucket = "Medium ($100M-$500M)"
	BucketHigh        PerformanceBucket = "High ($500M-$1B)"
	BucketBlockbuster PerformanceBucket = "Blockbuster (>$1B)"
)

// PerformanceBuckets lists the tiers in ascending revenue order.
var PerformanceBuckets = []PerformanceBucket{BucketLow, BucketMedium, BucketHigh, BucketBlockbuster}

// bucketEdges are the upper bounds, in millions, of each tier. Intervals
// are closed on the right: (0,100], (100,500], (500,1000], (1000,inf).
var bucketEdges = []float64{100, 500, 1000, math.Inf(1)}

// BucketFor assigns the performance tier for a worldwide figure in millions.
// Zero, negative and NaN inputs fall outside every tier and return BucketNone.
func BucketFor(worldwideMillions float64) PerformanceBucket {
	if math.IsNaN(worldwideMillions) || worldwideMillions <= 0 {
		return BucketNone
	}
	for i, edge := range bucketEdges {
		if worldwideMillions <= edge {
			return PerformanceBuckets[i]
		}
	}
	return BucketNone
}

// Index returns the ascending tier position of b, or -1 for BucketNone.
func (b PerformanceBucket) Index() int {
	for i, p := range PerformanceBuckets {
		if p == b {
			return i
		}
	}
	return -1
}
