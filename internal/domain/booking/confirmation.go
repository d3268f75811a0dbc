package booking

import "fmt"

const confirmationWidth = 6

// ConfirmationNumber renders prefix-NNNNNN. Identities wider than six digits
// are kept whole.
func ConfirmationNumber(prefix string, id uint) (string, error) {
	if id == 0 {
		return "", ErrInvalidIdentity
	}
	return fmt.Sprintf("%s-%0*d", prefix, confirmationWidth, id), nil
}
