package application

import (
	"errors"

	"github.com/Apurer/pawsitive-drive-server/internal/domains/adoptions/domain"
	sharederrors "github.com/Apurer/pawsitive-drive-server/internal/shared/errors"
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingPet) ||
		errors.Is(err, domain.ErrMissingApplicant) ||
		errors.Is(err, domain.ErrInvalidStatus) {
		return sharederrors.Wrap(sharederrors.KindInvalidInput, err)
	}
	return err
}
