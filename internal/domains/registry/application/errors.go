package application

import (
	"errors"

	"github.com/Apurer/pawsitive-drive-server/internal/domains/registry/domain"
	sharederrors "github.com/Apurer/pawsitive-drive-server/internal/shared/errors"
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyUserName) ||
		errors.Is(err, domain.ErrEmptyEmail) ||
		errors.Is(err, domain.ErrInvalidEmail) ||
		errors.Is(err, domain.ErrInvalidUserStatus) ||
		errors.Is(err, domain.ErrMissingRole) ||
		errors.Is(err, domain.ErrEmptyRoleName) ||
		errors.Is(err, domain.ErrEmptyPetName) ||
		errors.Is(err, domain.ErrNegativeAge) ||
		errors.Is(err, domain.ErrMissingAddedBy) {
		return sharederrors.Wrap(sharederrors.KindInvalidInput, err)
	}
	return err
}
