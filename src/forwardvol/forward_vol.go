package forwardvol

import (
	"fmt"
	"math"

	"github.com/jiaming2012/calendar-scanner/src/optionmodels"
)

const (
	// DefaultEarningsCrushPoints is how many IV points an earnings print is
	// assumed to drain from the front month.
	DefaultEarningsCrushPoints = 15.0

	// maxCrushFraction caps the earnings adjustment so a low-vol name never
	// has most of its front IV stripped away.
	maxCrushFraction = 0.30
)

type Config struct {
	EarningsCrushPoints float64 `yaml:"earnings_crush_points"`
}

func (c *Config) ApplyDefaults() {
	if c.EarningsCrushPoints <= 0 {
		c.EarningsCrushPoints = DefaultEarningsCrushPoints
	}
}

// Decomposition is the variance split of one front/back expiration pair.
// ForwardVol and ForwardFactor are both zero when the pair carries no
// signal, either because the calendar is degenerate or because the back
// month's total variance does not exceed the front month's.
type Decomposition struct {
	FrontIV          float64             `json:"front_iv"`  // percent, post-adjustment when EarningsAdjusted
	BackIV           float64             `json:"back_iv"`   // percent
	FrontDTE         int                 `json:"front_dte"`
	BackDTE          int                 `json:"back_dte"`
	ForwardVol       float64             `json:"forward_vol"`    // percent
	ForwardFactor    float64             `json:"forward_factor"` // percent
	Signal           optionmodels.Signal `json:"signal,omitempty"`
	EarningsAdjusted bool                `json:"earnings_adjusted"`
}

// HasSignal reports whether the decomposition produced a tradeable
// mispricing.
func (d *Decomposition) HasSignal() bool {
	return d.ForwardFactor != 0
}

// Decompose splits the back month's total variance into the front month's
// share and the forward period, then measures how rich the front IV trades
// against the forward vol:
//
//	frontVar   = (frontIV/100)^2 * frontDTE/365
//	backVar    = (backIV/100)^2 * backDTE/365
//	forwardVar = backVar - frontVar
//	forwardVol = sqrt(forwardVar / ((backDTE-frontDTE)/365)) * 100
//	factor     = (frontIV - forwardVol) / forwardVol * 100
//
// IVs are percentages. A positive factor signals selling the front month, a
// negative one buying it.
func Decompose(frontIV, backIV float64, frontDTE, backDTE int) (Decomposition, error) {
	if err := validate(frontIV, backIV, frontDTE, backDTE); err != nil {
		return Decomposition{}, fmt.Errorf("Decompose: %w", err)
	}

	d := Decomposition{
		FrontIV:  frontIV,
		BackIV:   backIV,
		FrontDTE: frontDTE,
		BackDTE:  backDTE,
	}

	// A back month at or inside the front month cannot define a forward
	// period. Not an error: the pair is simply not a candidate.
	if backDTE <= frontDTE {
		return d, nil
	}

	frontVar := math.Pow(frontIV/100, 2) * float64(frontDTE) / 365
	backVar := math.Pow(backIV/100, 2) * float64(backDTE) / 365

	forwardVar := backVar - frontVar
	if forwardVar <= 0 {
		// The front month already consumes all of the back month's
		// variance. No forward vol is defined.
		return d, nil
	}

	forwardTime := float64(backDTE-frontDTE) / 365

	d.ForwardVol = math.Sqrt(forwardVar/forwardTime) * 100
	d.ForwardFactor = (frontIV - d.ForwardVol) / d.ForwardVol * 100
	d.Signal, _ = optionmodels.SignalFromForwardFactor(d.ForwardFactor)

	return d, nil
}

// DecomposeExEarnings strips the assumed earnings premium from the front
// month before decomposing, so that a known event does not masquerade as a
// structural mispricing. The haircut is crushPoints IV points, never more
// than 30% of the front IV itself.
func DecomposeExEarnings(frontIV, backIV float64, frontDTE, backDTE int, crushPoints float64) (Decomposition, error) {
	if err := validate(frontIV, backIV, frontDTE, backDTE); err != nil {
		return Decomposition{}, fmt.Errorf("DecomposeExEarnings: %w", err)
	}

	if crushPoints <= 0 {
		crushPoints = DefaultEarningsCrushPoints
	}

	haircut := math.Min(crushPoints, frontIV*maxCrushFraction)

	d, err := Decompose(frontIV-haircut, backIV, frontDTE, backDTE)
	if err != nil {
		return Decomposition{}, fmt.Errorf("DecomposeExEarnings: %w", err)
	}

	d.EarningsAdjusted = true

	return d, nil
}

// DecomposePair runs the decomposition for two scanned expiration groups.
func DecomposePair(front, back optionmodels.ExpirationGroup) (Decomposition, error) {
	d, err := Decompose(front.ATMIV, back.ATMIV, front.DTE, back.DTE)
	if err != nil {
		return Decomposition{}, fmt.Errorf("DecomposePair: %w", err)
	}

	return d, nil
}

func validate(frontIV, backIV float64, frontDTE, backDTE int) error {
	if frontIV <= 0 || math.IsNaN(frontIV) || math.IsInf(frontIV, 0) {
		return fmt.Errorf("front IV must be positive and finite, got %v", frontIV)
	}

	if backIV <= 0 || math.IsNaN(backIV) || math.IsInf(backIV, 0) {
		return fmt.Errorf("back IV must be positive and finite, got %v", backIV)
	}

	if frontDTE <= 0 {
		return fmt.Errorf("front DTE must be positive, got %v", frontDTE)
	}

	if backDTE <= 0 {
		return fmt.Errorf("back DTE must be positive, got %v", backDTE)
	}

	return nil
}
