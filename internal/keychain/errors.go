package keychain

import "errors"

// errBackendNotFound is what a native backend reports for a missing item.
var errBackendNotFound = errors.New("key not found")
