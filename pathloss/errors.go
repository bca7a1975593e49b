package pathloss

import "github.com/pkg/errors"

var (
	ErrUnknownModel     = errors.New("unknown path loss model")
	ErrInvalidParameter = errors.New("invalid model parameter")
)
