package errs

// Error classes shared by the use case layers. Concrete errors are marked with
// one of these so handlers can map them without knowing every sentinel.
var (
	// Rejected before touching the store: malformed window, empty seat set,
	// unknown venue, missing permission to act.
	ErrValidation = New("validation error")

	// Store or broker failure. Never retried automatically beyond the
	// transaction retry policy.
	ErrInfrastructure = New("infrastructure error")
)

func Validation(err error) error {
	return Mark(err, ErrValidation)
}

func Infrastructure(err error) error {
	return Mark(err, ErrInfrastructure)
}

func IsValidation(err error) bool {
	return Is(err, ErrValidation)
}

func IsInfrastructure(err error) bool {
	return Is(err, ErrInfrastructure)
}
