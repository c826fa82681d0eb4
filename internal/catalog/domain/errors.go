package domain

import "errors"

var (
	ErrUnitNotFound     = errors.New("military unit not found")
	ErrBuildingNotFound = errors.New("building not found")
	ErrResearchNotFound = errors.New("research not found")
	ErrResourceNotFound = errors.New("resource not found")
)
