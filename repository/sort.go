package repository

import (
	"strings"

	"gorm.io/gorm/clause"
)

type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

type StoreSortField int

const (
	StoreSortName StoreSortField = iota
	StoreSortEmail
	StoreSortAddress
	StoreSortRating
)

// column คืน expression คงที่เท่านั้น ห้ามเอา input ของ client มาต่อ SQL
func (f StoreSortField) column() string {
	switch f {
	case StoreSortEmail:
		return "stores.email"
	case StoreSortAddress:
		return "stores.address"
	case StoreSortRating:
		return "average_rating"
	default:
		return "stores.name"
	}
}

type StoreSort struct {
	Field StoreSortField
	Order SortOrder
}

type UserSortField int

const (
	UserSortName UserSortField = iota
	UserSortEmail
	UserSortAddress
	UserSortRole
)

func (f UserSortField) column() string {
	switch f {
	case UserSortEmail:
		return "users.email"
	case UserSortAddress:
		return "users.address"
	case UserSortRole:
		return "users.role"
	default:
		return "users.name"
	}
}

type UserSort struct {
	Field UserSortField
	Order SortOrder
}

func orderBy(column string, order SortOrder) clause.OrderByColumn {
	return clause.OrderByColumn{
		Column: clause.Column{Name: column, Raw: true},
		Desc:   order == Descending,
	}
}

// likeEscape ใช้ '!' เป็น escape เพราะ backslash ตีความต่างกันระหว่าง mysql กับ sqlite
const likeEscape = "!"

func containsPattern(s string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return "%" + r.Replace(strings.ToLower(s)) + "%"
}

func likeClause(column string) string {
	return "LOWER(" + column + ") LIKE ? ESCAPE '" + likeEscape + "'"
}
