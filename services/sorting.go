package services

import (
	"strings"

	"storerating/repository"
)

// StoreView แต่ละ role เรียงได้ด้วย field ต่างกัน
type StoreView int

const (
	UserStoreView StoreView = iota
	AdminStoreView
)

var storeSortFields = map[StoreView]map[string]repository.StoreSortField{
	UserStoreView: {
		"name":          repository.StoreSortName,
		"address":       repository.StoreSortAddress,
		"rating":        repository.StoreSortRating,
		"overallrating": repository.StoreSortRating,
	},
	AdminStoreView: {
		"name":          repository.StoreSortName,
		"email":         repository.StoreSortEmail,
		"address":       repository.StoreSortAddress,
		"rating":        repository.StoreSortRating,
		"overallrating": repository.StoreSortRating,
	},
}

var userSortFields = map[string]repository.UserSortField{
	"name":    repository.UserSortName,
	"email":   repository.UserSortEmail,
	"address": repository.UserSortAddress,
	"role":    repository.UserSortRole,
}

// ParseSortOrder ค่าว่าง = asc; ok == false ถ้าไม่รู้จัก
func ParseSortOrder(s string) (repository.SortOrder, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return repository.Ascending, true
	case "desc", "descending":
		return repository.Descending, true
	}
	return repository.Ascending, false
}

// ParseStoreSort ค่าที่ไม่รู้จักจะถูกเมิน แล้วใช้ค่า default (name asc)
func ParseStoreSort(view StoreView, sortBy, sortOrder string) repository.StoreSort {
	order, ok := ParseSortOrder(sortOrder)
	if !ok {
		return repository.StoreSort{}
	}
	key := strings.ToLower(strings.TrimSpace(sortBy))
	if key == "" {
		return repository.StoreSort{Order: order}
	}
	field, ok := storeSortFields[view][key]
	if !ok {
		return repository.StoreSort{}
	}
	return repository.StoreSort{Field: field, Order: order}
}

func ParseUserSort(sortBy, sortOrder string) repository.UserSort {
	order, ok := ParseSortOrder(sortOrder)
	if !ok {
		return repository.UserSort{}
	}
	key := strings.ToLower(strings.TrimSpace(sortBy))
	if key == "" {
		return repository.UserSort{Order: order}
	}
	field, ok := userSortFields[key]
	if !ok {
		return repository.UserSort{}
	}
	return repository.UserSort{Field: field, Order: order}
}
