package byline

import (
	"errors"
	"fmt"
)

// ErrConfiguration matches every error returned for invalid inputs. Such
// errors are reported before any accumulator is modified.
var ErrConfiguration = errors.New("byline: configuration error")

// Errors returned by the reducer. All of them wrap ErrConfiguration.
var (
	ErrAccumulatorLength = fmt.Errorf("%w: accumulator length does not match axis", ErrConfiguration)
	ErrFrameShape        = fmt.Errorf("%w: frame shape does not match detector", ErrConfiguration)
	ErrThreshold         = fmt.Errorf("%w: invalid threshold", ErrConfiguration)
	ErrReference         = fmt.Errorf("%w: invalid reference correction", ErrConfiguration)
	ErrNilAccumulators   = fmt.Errorf("%w: accumulators are nil", ErrConfiguration)
)

func configError(err error) error {
	if err == nil || errors.Is(err, ErrConfiguration) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrConfiguration, err)
}
