package core

import (
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
)

const (
	DefaultPageSize = 10
	// AllPageSize bounds lists fetched as a whole (eg. the classrooms select list).
	AllPageSize = 100
)

// PageSizeOptions are the sizes offered by list views.
var PageSizeOptions = []int{10, 20, 30, 40, 50}

// ErrUnknownPageEnvelope is returned when a paginated payload matches none of the known envelopes.
var ErrUnknownPageEnvelope = errors.New("unrecognized page envelope")

// PageRequest holds the pagination query params.
type PageRequest struct {
	Page int
	Size int
}

func (pr PageRequest) normalized() PageRequest {
	if pr.Page < 0 {
		pr.Page = 0
	}
	if pr.Size <= 0 {
		pr.Size = DefaultPageSize
	}
	return pr
}

// Values encodes pr as `page` & `size` query params.
func (pr PageRequest) Values() url.Values {
	pr = pr.normalized()
	v := make(url.Values, 2)
	v.Set("page", strconv.Itoa(pr.Page))
	v.Set("size", strconv.Itoa(pr.Size))
	return v
}

// Page is the canonical pagination envelope.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Size          int   `json:"size"`
	Number        int   `json:"number"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
	Empty         bool  `json:"empty"`
}

type pageMeta struct {
	TotalElements *int64 `json:"totalElements"`
	TotalPages    *int   `json:"totalPages"`
	Size          *int   `json:"size"`
	Number        *int   `json:"number"`
}

type rawPage struct {
	pageMeta
	Content json.RawMessage `json:"content"`
	First   *bool           `json:"first"`
	Last    *bool           `json:"last"`
	Empty   *bool           `json:"empty"`
	Page    *pageMeta       `json:"page"`
}

// DecodePage decodes one of the two envelopes the backend produces:
//   - flat:   {"content": [...], "totalElements": n, "totalPages": n, "size": n, "number": n, ...}
//   - nested: {"content": [...], "page": {"totalElements": n, "totalPages": n, "size": n, "number": n}}
//
// Metadata missing from a known envelope falls back to req. Any other shape is rejected.
func DecodePage[T any](data []byte, req PageRequest) (Page[T], error) {
	var raw rawPage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Page[T]{}, errors.Wrap(ErrUnknownPageEnvelope, err.Error())
	}
	if raw.Content == nil {
		return Page[T]{}, errors.Wrap(ErrUnknownPageEnvelope, "missing content")
	}

	var meta pageMeta
	switch {
	case raw.Page != nil:
		meta = *raw.Page
	case raw.TotalElements != nil || raw.TotalPages != nil:
		meta = raw.pageMeta
	default:
		return Page[T]{}, errors.Wrap(ErrUnknownPageEnvelope, "missing pagination metadata")
	}

	var content []T
	if err := json.Unmarshal(raw.Content, &content); err != nil {
		return Page[T]{}, errors.Wrap(err, "decoding page content")
	}
	if content == nil {
		content = []T{}
	}

	req = req.normalized()
	page := Page[T]{
		Content:    content,
		TotalPages: 1,
		Size:       req.Size,
		Number:     req.Page,
	}
	if meta.TotalElements != nil {
		page.TotalElements = *meta.TotalElements
	}
	if meta.TotalPages != nil {
		page.TotalPages = *meta.TotalPages
	}
	if meta.Size != nil {
		page.Size = *meta.Size
	}
	if meta.Number != nil {
		page.Number = *meta.Number
	}

	page.First = page.Number == 0
	if raw.First != nil {
		page.First = *raw.First
	}
	page.Last = page.Number >= page.TotalPages-1
	if raw.Last != nil {
		page.Last = *raw.Last
	}
	page.Empty = len(content) == 0
	if raw.Empty != nil {
		page.Empty = *raw.Empty
	}
	return page, nil
}

// NewPage builds a flat Page out of a full slice, as a paginating backend would.
func NewPage[T any](all []T, req PageRequest) Page[T] {
	req = req.normalized()
	total := len(all)
	totalPages := (total + req.Size - 1) / req.Size
	start := req.Page * req.Size
	if start > total {
		start = total
	}
	end := start + req.Size
	if end > total {
		end = total
	}
	content := make([]T, end-start)
	copy(content, all[start:end])
	return Page[T]{
		Content:       content,
		TotalElements: int64(total),
		TotalPages:    totalPages,
		Size:          req.Size,
		Number:        req.Page,
		First:         req.Page == 0,
		Last:          req.Page >= totalPages-1,
		Empty:         len(content) == 0,
	}
}
