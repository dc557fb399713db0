package domain

import "errors"

var (
	ErrUserIDRequired   = errors.New("user_id is required")
	ErrUserNotFound     = errors.New("user not found")
	ErrPlanetNotFound   = errors.New("planet not found")
	ErrPersonNotFound   = errors.New("person not found")
	ErrVehicleNotFound  = errors.New("vehicle not found")
	ErrAlreadyFavorite  = errors.New("already in favorites")
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrUnknownKind      = errors.New("unknown favorite kind")
)

// TargetNotFound returns the sentinel reported when the target of kind k
// does not exist.
func (k Kind) TargetNotFound() error {
	switch k {
	case KindPlanet:
		return ErrPlanetNotFound
	case KindPerson:
		return ErrPersonNotFound
	case KindVehicle:
		return ErrVehicleNotFound
	}
	return ErrUnknownKind
}
