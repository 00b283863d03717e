package core

import "errors"

var (
	ErrConfiguration     = errors.New("invalid configuration")
	ErrExtraction        = errors.New("text extraction failed")
	ErrPersistence       = errors.New("index persistence failed")
	ErrGeneration        = errors.New("generation failed")
	ErrNoState           = errors.New("no persisted index")
	ErrIncompatibleState = errors.New("persisted index is incompatible")
)
