package room

import (
	"errors"
	"fmt"
)

// Global is the distinguished token for the shared stream. It is not
// derivable from any pair of user IDs, so it can never collide with a
// pairwise token.
const Global = "global"

// ErrSelfPair is returned when both participants of a pairwise room are the
// same user.
var ErrSelfPair = errors.New("room: cannot pair a user with themself")

// Resolve повертає канонічний токен кімнати для пари користувачів.
// The two IDs are ordered ascending before encoding, so Resolve(a, b) and
// Resolve(b, a) always yield the same token. The underscore separator cannot
// appear inside a numeric ID, which keeps distinct pairs collision-free.
func Resolve(a, b uint) (string, error) {
	if a == b {
		return "", ErrSelfPair
	}
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("room_%d_%d", a, b), nil
}
