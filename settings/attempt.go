package settings

import (
	"context"
	"errors"
)

// errNotSet marks an attempt that failed because the source simply carries no
// value for the key, as opposed to a fetch or decode failure.
var errNotSet = errors.New("not set")

type valueSource interface {
	Source() ValueSource
	Identifier() string
	Fetch(ctx context.Context) (any, error)
}

type attemptCollector struct {
	fieldPath string
	attempts  []AttemptError
}

func newAttemptCollector(fieldPath string) *attemptCollector {
	return &attemptCollector{fieldPath: fieldPath}
}

func (c *attemptCollector) try(ctx context.Context, src valueSource, assign func(any) error) bool {
	value, err := src.Fetch(ctx)
	if err != nil {
		c.fail(src.Source(), src.Identifier(), err)
		return false
	}
	if err := assign(value); err != nil {
		c.fail(SourceDecoder, src.Identifier(), err)
		return false
	}
	return true
}

func (c *attemptCollector) fail(source ValueSource, identifier string, err error) {
	c.attempts = append(c.attempts, AttemptError{
		Source:     source,
		Identifier: identifier,
		Err:        err,
	})
}

func (c *attemptCollector) result() *FieldError {
	if len(c.attempts) == 0 {
		c.fail(SourceTag, "", errors.New("no source attempts recorded"))
	}
	return &FieldError{
		FieldPath: c.fieldPath,
		Attempts:  c.attempts,
	}
}

// onlyNotSet reports whether every recorded attempt failed with errNotSet,
// meaning the field is merely absent rather than broken.
func (c *attemptCollector) onlyNotSet() bool {
	for _, attempt := range c.attempts {
		if !errors.Is(attempt.Err, errNotSet) {
			return false
		}
	}
	return true
}
