package trace

import (
	"errors"

	"github.com/ezrec/scmips/translate"
)

var f = translate.From

var (
	ErrSelectionEmpty = errors.New(f("cycle selection empty"))
)

// ErrSelectionToken names a selection entry that is neither a cycle
// number, 'all' nor 'last'.
type ErrSelectionToken string

func (err ErrSelectionToken) Error() string {
	return f("'%v' is not a cycle number, 'all' or 'last'", string(err))
}
