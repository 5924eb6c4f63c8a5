package repository

import (
	"fmt"
	"strings"

	"github.com/prperemyshlev/donor-service/internal/domain"
)

// searchableColumns are matched by the free-text search term
var searchableColumns = []string{"u.name", "u.email", "u.location", "u.blood_type"}

// sortableColumns maps public sort keys to columns
var sortableColumns = map[string]string{
	"name":         "u.name",
	"email":        "u.email",
	"bloodType":    "u.blood_type",
	"location":     "u.location",
	"availability": "u.availability",
	"createdAt":    "u.created_at",
	"updatedAt":    "u.updated_at",
}

const defaultDonorOrder = "u.created_at DESC, u.id DESC"

// DonorPredicate composes the directory filter: search OR-group AND exact matches
func DonorPredicate(f domain.DonorFilter) Predicate {
	var parts []Predicate

	if term := strings.TrimSpace(f.SearchTerm); term != "" {
		search := make([]Predicate, 0, len(searchableColumns))
		for _, col := range searchableColumns {
			search = append(search, Contains(col, term))
		}
		parts = append(parts, Or(search...))
	}

	if f.BloodType != nil {
		parts = append(parts, Equals("u.blood_type", *f.BloodType))
	}
	if f.Location != nil {
		parts = append(parts, Equals("u.location", *f.Location))
	}
	if f.Availability != nil {
		parts = append(parts, Equals("u.availability", *f.Availability))
	}

	return And(parts...)
}

// DonorOrder renders the ORDER BY expression. Unknown keys fall back to newest first.
func DonorOrder(sortBy, sortOrder string) string {
	col, ok := sortableColumns[sortBy]
	if !ok {
		return defaultDonorOrder
	}

	var dir string
	switch strings.ToLower(sortOrder) {
	case "asc":
		dir = "ASC"
	case "desc":
		dir = "DESC"
	default:
		return defaultDonorOrder
	}

	return fmt.Sprintf("%s %s, u.id %s", col, dir, dir)
}
