package application

import (
	"errors"

	"github.com/Apurer/pawsitive-drive-server/internal/domains/donations/domain"
	sharederrors "github.com/Apurer/pawsitive-drive-server/internal/shared/errors"
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingDonor) ||
		errors.Is(err, domain.ErrInvalidAmount) ||
		errors.Is(err, domain.ErrNegativeAmount) ||
		errors.Is(err, domain.ErrAmountOutOfRange) ||
		errors.Is(err, domain.ErrPaymentMethodTooLong) ||
		errors.Is(err, domain.ErrInvalidStatus) {
		return sharederrors.Wrap(sharederrors.KindInvalidInput, err)
	}
	return err
}
