package models

// MaterialChangeType records what happened to a shared material in its
// append-only history.
type MaterialChangeType string

const (
	MaterialChangeTypeCreate MaterialChangeType = "create"
	MaterialChangeTypeUpdate MaterialChangeType = "update"
	MaterialChangeTypeDelete MaterialChangeType = "delete"
)

type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleOperator UserRole = "operator"
)
