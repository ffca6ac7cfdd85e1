package liquidity

import "fmt"

// Bucket is the coarse liquidity rating derived from the dynamic score.
type Bucket string

const (
	BucketVeryLow  Bucket = "VERY_LOW"
	BucketLow      Bucket = "LOW"
	BucketModerate Bucket = "MODERATE"
	BucketHigh     Bucket = "HIGH"
	BucketVeryHigh Bucket = "VERY_HIGH"
)

func (b Bucket) Validate() error {
	switch b {
	case BucketVeryLow, BucketLow, BucketModerate, BucketHigh, BucketVeryHigh:
		return nil
	default:
		return fmt.Errorf("Bucket: Validate: invalid bucket: %s", b)
	}
}

// OrderType is the execution style the profile recommends for working the
// spread.
type OrderType string

const (
	OrderTypeMarket    OrderType = "MARKET"
	OrderTypeLimit     OrderType = "LIMIT"
	OrderTypeLimitOnly OrderType = "LIMIT_ONLY"
)

func (o OrderType) Validate() error {
	switch o {
	case OrderTypeMarket, OrderTypeLimit, OrderTypeLimitOnly:
		return nil
	default:
		return fmt.Errorf("OrderType: Validate: invalid order type: %s", o)
	}
}

// Difficulty labels how hard the position will be to fill and unwind.
type Difficulty string

const (
	DifficultyEasy     Difficulty = "EASY"
	DifficultyModerate Difficulty = "MODERATE"
	DifficultyHard     Difficulty = "HARD"
	DifficultyVeryHard Difficulty = "VERY_HARD"
)

func (d Difficulty) Validate() error {
	switch d {
	case DifficultyEasy, DifficultyModerate, DifficultyHard, DifficultyVeryHard:
		return nil
	default:
		return fmt.Errorf("Difficulty: Validate: invalid difficulty: %s", d)
	}
}
