package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jogaaurora/aurora/core"
)

// bindPage reads the `page` & `size` query params.
func bindPage(ctx echo.Context) (core.PageRequest, error) {
	var page core.PageRequest
	err := echo.QueryParamsBinder(ctx).
		Int("page", &page.Page).
		Int("size", &page.Size).
		BindError()
	if err != nil {
		return page, core.NewValidationError(errors.New("Parâmetros de paginação inválidos"))
	}
	return page, nil
}

// bindDate reads an optional yyyy-MM-dd query param.
func bindDate(ctx echo.Context, name string) (core.Date, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return core.Date{}, nil
	}
	d, err := core.ParseDate(raw)
	if err != nil {
		return core.Date{}, core.NewValidationError(nil, core.FieldError{Field: name, Error: "Data inválida"})
	}
	return d, nil
}

type idRef struct {
	ID string `json:"id"`
}

// nestedPage is the envelope some collections are served with.
type nestedPage[T any] struct {
	Content []T      `json:"content"`
	Page    pageInfo `json:"page"`
}

type pageInfo struct {
	Size          int   `json:"size"`
	Number        int   `json:"number"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

func nest[T any](p core.Page[T]) nestedPage[T] {
	return nestedPage[T]{
		Content: p.Content,
		Page: pageInfo{
			Size:          p.Size,
			Number:        p.Number,
			TotalElements: p.TotalElements,
			TotalPages:    p.TotalPages,
		},
	}
}
