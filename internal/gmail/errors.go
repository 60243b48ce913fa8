package gmail

import (
	"context"
	"errors"
	"net"

	"google.golang.org/api/googleapi"

	"github.com/jsievers/mailbridge/internal/mailerr"
)

// classify maps a Gmail API failure onto the error taxonomy. Anything
// already classified passes through; anything unrecognized is treated as
// transient so callers surface it as temporary rather than permanent.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var me *mailerr.Error
	if errors.As(err, &me) {
		return err
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return mailerr.Wrap(kindForStatus(gerr), op, err)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return mailerr.Wrap(mailerr.Transient, op, err)
	}
	var nerr net.Error
	if errors.As(err, &nerr) {
		return mailerr.Wrap(mailerr.Transient, op, err)
	}

	return mailerr.Wrap(mailerr.Transient, op, err)
}

func kindForStatus(gerr *googleapi.Error) mailerr.Kind {
	switch gerr.Code {
	case 400:
		return mailerr.Invalid
	case 401:
		return mailerr.Auth
	case 403:
		for _, item := range gerr.Errors {
			switch item.Reason {
			case "rateLimitExceeded", "userRateLimitExceeded", "dailyLimitExceeded":
				return mailerr.RateLimited
			}
		}
		return mailerr.PermissionDenied
	case 404:
		return mailerr.NotFound
	case 429:
		return mailerr.RateLimited
	}
	if gerr.Code >= 500 {
		return mailerr.Transient
	}
	return mailerr.Transient
}
