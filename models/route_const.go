package models

import "github.com/pkg/errors"

type RouteType string

const (
	RouteTypeInternal RouteType = "internal"
	RouteTypeExternal RouteType = "external"
)

func (r RouteType) Validate() error {
	switch r {
	case RouteTypeInternal, RouteTypeExternal:
		return nil
	}
	return errors.Errorf("unknown route type: %v", r)
}

type PermissionType string

const (
	PermissionTypeEdit    PermissionType = "edit"
	PermissionTypeComment PermissionType = "comment"
)

func (p PermissionType) Validate() error {
	switch p {
	case PermissionTypeEdit, PermissionTypeComment:
		return nil
	}
	return errors.Errorf("unknown permission type: %v", p)
}
