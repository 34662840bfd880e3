package trade

import (
	"errors"
	"strings"
)

var errInvalidCardID = errors.New("Invalid UUID format for card_id")

func isInsufficientQuantity(err error) bool {
	return strings.HasPrefix(err.Error(), "Insufficient quantity for ")
}
