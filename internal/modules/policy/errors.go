package policy

import "errors"

// ErrNoPolicy means no tier covers the computed lead time. Surfacing this
// instead of defaulting to 0% keeps a misconfigured policy table visible.
var ErrNoPolicy = errors.New("no policy tier matches the lead time")
