package uuid

import (
	"strings"

	googleuuid "github.com/google/uuid"
)

//New returns a random UUID string
func New() string {
	return googleuuid.New().String()
}

//NewLettersNumbers returns UUID without dashes. Safe to use as a part of SQL identifiers
func NewLettersNumbers() string {
	return strings.ReplaceAll(New(), "-", "")
}
