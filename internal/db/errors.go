package db

import "errors"

// ErrNotFound covers both missing rows and rows owned by another user;
// every owned-row query is scoped by user_id, so the two cases are
// indistinguishable at this layer.
var ErrNotFound = errors.New("not found")
