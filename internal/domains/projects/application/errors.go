package application

import (
	"errors"
	"fmt"

	"github.com/solcrm/pipeline-api/internal/domains/projects/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid project input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrEmptyClient) ||
		errors.Is(err, domain.ErrNegativeAmount) ||
		errors.Is(err, domain.ErrMissingDeadline) ||
		errors.Is(err, domain.ErrInvalidStage) ||
		errors.Is(err, domain.ErrInvalidProbability) ||
		errors.Is(err, domain.ErrInvalidProgress) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
