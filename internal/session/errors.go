package session

import "codeberg.org/snonux/wordcycle/internal/domain"

var (
	errNoWords   = domain.NewValidationError("file", "contains no words")
	errEmptyList = domain.NewValidationError("words", "the word list is empty")
)
