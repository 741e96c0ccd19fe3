package smoketest

import (
	"context"
	"fmt"
)

// verifyRoster checks that every email is present (or absent) in activity
// and that the roster holds no duplicates.
func verifyRoster(ctx context.Context, c *Client, activity string, emails []string, present bool) error {
	acts, err := c.Activities(ctx)
	if err != nil {
		return err
	}
	a, ok := acts[activity]
	if !ok {
		return fmt.Errorf("%w: %q", ErrActivityMissing, activity)
	}

	roster := make(map[string]struct{}, len(a.Participants))
	for _, p := range a.Participants {
		if _, dup := roster[p]; dup {
			return fmt.Errorf("%w: %s listed twice", ErrVerification, p)
		}
		roster[p] = struct{}{}
	}

	missing, stale := 0, 0
	for _, e := range emails {
		_, listed := roster[e]
		switch {
		case present && !listed:
			missing++
		case !present && listed:
			stale++
		}
	}
	if missing > 0 {
		return fmt.Errorf("%w: %d of %d signups missing from %s", ErrVerification, missing, len(emails), activity)
	}
	if stale > 0 {
		return fmt.Errorf("%w: %d of %d removed students still in %s", ErrVerification, stale, len(emails), activity)
	}
	return nil
}

// expectStatus sends one request through call and checks its status code.
func expectStatus(ctx context.Context, want int, what string, call func(context.Context) (int, []byte, error)) error {
	status, body, err := call(ctx)
	if err != nil {
		return err
	}
	if status != want {
		return fmt.Errorf("%w: %s returned %d, want %d (%s)", ErrUnexpectedStatus, what, status, want, body)
	}
	return nil
}
