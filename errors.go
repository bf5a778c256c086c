package vpathrepo

import "github.com/vpathfs/repository/internal/apperr"

// Error sentinels, re-exported from the internal error taxonomy so callers
// can use errors.Is(err, vpathrepo.ErrResourceNotFound) without importing an
// internal package.
var (
	ErrInvalidPath          = apperr.ErrInvalidPath
	ErrResourceNotFound     = apperr.ErrResourceNotFound
	ErrUnsupportedLanguage  = apperr.ErrUnsupportedLanguage
	ErrUnsupportedResource  = apperr.ErrUnsupportedResource
	ErrUnsupportedOperation = apperr.ErrUnsupportedOperation
	ErrLinkDepthExceeded    = apperr.ErrLinkDepthExceeded
)
