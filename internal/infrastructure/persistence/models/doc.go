// Package models contains GORM persistence models that map to database tables.
// Domain types stay free of ORM concerns; each model converts to and from its
// domain type with ToDomain / FromDomain.
package models
