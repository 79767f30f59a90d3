package services

import (
	"sort"
	"strings"

	"github.com/marinehub/fleetdesk/modules/review/domain/insuredobject"
)

type SortField string

const (
	SortByCreatedAt    SortField = "createdAt"
	SortByOrganization SortField = "organization"
	SortByObjectType   SortField = "objectType"
	SortByValue        SortField = "value"
)

// ListQuery narrows and orders the review list. Search matches
// case-insensitive substrings over display name, organization, notes and the
// object-type label.
type ListQuery struct {
	Search       string
	ObjectType   insuredobject.ObjectType
	Organization string
	SortBy       SortField
	Descending   bool
}

func ApplyQuery(objects []*insuredobject.PendingObject, q ListQuery) []*insuredobject.PendingObject {
	needle := strings.ToLower(strings.TrimSpace(q.Search))

	matched := make([]*insuredobject.PendingObject, 0, len(objects))
	for _, obj := range objects {
		if q.ObjectType != "" && obj.ObjectType != q.ObjectType {
			continue
		}
		if q.Organization != "" && obj.Organization != q.Organization {
			continue
		}
		if needle != "" && !matchesSearch(obj, needle) {
			continue
		}
		matched = append(matched, obj)
	}

	less := lessFunc(q.SortBy)
	sort.SliceStable(matched, func(i, j int) bool {
		if q.Descending {
			return less(matched[j], matched[i])
		}
		return less(matched[i], matched[j])
	})
	return matched
}

func matchesSearch(obj *insuredobject.PendingObject, needle string) bool {
	for _, haystack := range []string{obj.Name, obj.Organization, obj.Notes, obj.ObjectType.Label()} {
		if strings.Contains(strings.ToLower(haystack), needle) {
			return true
		}
	}
	return false
}

func lessFunc(field SortField) func(a, b *insuredobject.PendingObject) bool {
	switch field {
	case SortByOrganization:
		return func(a, b *insuredobject.PendingObject) bool { return a.Organization < b.Organization }
	case SortByObjectType:
		return func(a, b *insuredobject.PendingObject) bool { return a.ObjectType.Label() < b.ObjectType.Label() }
	case SortByValue:
		return func(a, b *insuredobject.PendingObject) bool { return a.Value < b.Value }
	default:
		return func(a, b *insuredobject.PendingObject) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}
}
