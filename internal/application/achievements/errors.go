package achievements

import "errors"

var (
	ErrDuplicateGrant  = errors.New("Achievement already granted to this employee")
	ErrUnknownCriteria = errors.New("Unknown achievement criteria kind")
)
