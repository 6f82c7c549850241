package services

import (
	"context"
	"errors"
	"time"

	"conferencecentral/internal/domain"

	"github.com/cenkalti/backoff/v5"
)

// maxWriteAttempts bounds retries of optimistic or transactional writes that lost a race.
const maxWriteAttempts = 5

// writeBackOff is a var so tests can shrink the intervals.
var writeBackOff = func() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 25 * time.Millisecond
	b.MaxInterval = time.Second
	return b
}

// retryConcurrentUpdate runs op until it succeeds, fails with anything other than
// domain.ErrConcurrentUpdate, or runs out of attempts.
func retryConcurrentUpdate(ctx context.Context, op func() error) error {
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		err := op()
		if err == nil {
			return struct{}{}, nil
		}
		if errors.Is(err, domain.ErrConcurrentUpdate) {
			return struct{}{}, err
		}
		return struct{}{}, backoff.Permanent(err)
	}, backoff.WithBackOff(writeBackOff()), backoff.WithMaxTries(maxWriteAttempts))
	return err
}
