package transfer

import "errors"

var ErrSelfTransfer = errors.New("Cannot transfer tokens to yourself")
