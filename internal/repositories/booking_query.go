package repositories

import (
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 200
)

// SortColumn is one of the columns the admin listing may be ordered by.
type SortColumn string

const (
	SortCreatedAt     SortColumn = "created_at"
	SortPrice         SortColumn = "price"
	SortFullName      SortColumn = "full_name"
	SortDestination   SortColumn = "destination"
	SortStatus        SortColumn = "status"
	SortBookingNumber SortColumn = "booking_number"
)

var sortableColumns = map[SortColumn]struct{}{
	SortCreatedAt:     {},
	SortPrice:         {},
	SortFullName:      {},
	SortDestination:   {},
	SortStatus:        {},
	SortBookingNumber: {},
}

// ParseSortColumn falls back to created_at for anything outside the allow-list.
func ParseSortColumn(raw string) SortColumn {
	col := SortColumn(strings.TrimSpace(raw))
	if _, ok := sortableColumns[col]; ok {
		return col
	}
	return SortCreatedAt
}

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ParseSortDirection is case-insensitive and falls back to desc.
func ParseSortDirection(raw string) SortDirection {
	switch SortDirection(strings.ToLower(strings.TrimSpace(raw))) {
	case SortAsc:
		return SortAsc
	default:
		return SortDesc
	}
}

// BookingFilter is the predicate shared by the listing, its count and the export.
type BookingFilter struct {
	Q           string
	Destination string
	Status      string
}

func NewBookingFilter(q, destination, status string) BookingFilter {
	return BookingFilter{
		Q:           strings.TrimSpace(q),
		Destination: strings.TrimSpace(destination),
		Status:      strings.TrimSpace(status),
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Where renders the WHERE clause (with leading keyword, or empty) and its
// bound arguments. No caller value is ever written into the SQL text.
func (f BookingFilter) Where() (string, []any) {
	where := []string{}
	args := []any{}

	if f.Q != "" {
		where = append(where, "(full_name LIKE ? OR phone LIKE ? OR booking_number LIKE ? OR payer_name LIKE ?)")
		like := "%" + likeEscaper.Replace(f.Q) + "%"
		args = append(args, like, like, like, like)
	}
	if f.Destination != "" {
		where = append(where, "destination = ?")
		args = append(args, f.Destination)
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, f.Status)
	}

	if len(where) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(where, " AND "), args
}

// BookingListParams is a validated admin listing request.
type BookingListParams struct {
	Filter BookingFilter
	Sort   SortColumn
	Dir    SortDirection
	Page   int
	Limit  int
}

// NewBookingListParams accepts raw query-string values and coerces them into
// the allow-listed, clamped form.
func NewBookingListParams(q, destination, status, sort, dir, page, limit string) BookingListParams {
	return BookingListParams{
		Filter: NewBookingFilter(q, destination, status),
		Sort:   ParseSortColumn(sort),
		Dir:    ParseSortDirection(dir),
		Page:   ClampPage(parseIntOr(page, DefaultPage)),
		Limit:  ClampLimit(parseIntOr(limit, DefaultLimit)),
	}
}

func (p BookingListParams) OrderBy() string {
	return " ORDER BY " + string(ParseSortColumn(string(p.Sort))) + " " + strings.ToUpper(string(ParseSortDirection(string(p.Dir))))
}

func (p BookingListParams) Offset() int {
	return (ClampPage(p.Page) - 1) * ClampLimit(p.Limit)
}

func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func ClampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// parseIntOr treats a zero like a missing value, so limit=0 means the default.
func parseIntOr(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n == 0 {
		return def
	}
	return n
}
