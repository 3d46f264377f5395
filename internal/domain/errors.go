package domain

import "errors"

// ErrMemberOnly marks content that exists but requires a paid membership.
// Distinct from a missing entry so transports can answer 403 instead of 404.
var ErrMemberOnly = errors.New("content is member-only")
