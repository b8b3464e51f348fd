package renderer

import "errors"

var (
	ErrInvalidSettings  = errors.New("renderer: invalid settings")
	ErrIncompleteScene  = errors.New("renderer: scene is missing a root primitive or camera")
	ErrIncompleteRender = errors.New("renderer: not every pixel was rendered")
)
