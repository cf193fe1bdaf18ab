package core

import "fmt"

// Pager drives the first/previous/next/last controls of a paginated list.
// Out of range values are normalized so that at least one page is always shown.
type Pager struct {
	TotalPages  int
	CurrentPage int
}

func NewPager(totalPages, currentPage int) Pager {
	if totalPages <= 0 {
		totalPages = 1
	}
	if currentPage < 0 || currentPage >= totalPages {
		currentPage = 0
	}
	return Pager{TotalPages: totalPages, CurrentPage: currentPage}
}

// PagerOf returns the Pager of a fetched page.
func PagerOf[T any](p Page[T]) Pager {
	return NewPager(p.TotalPages, p.Number)
}

func (p Pager) CanPrev() bool { return p.CurrentPage > 0 }

func (p Pager) CanNext() bool { return p.CurrentPage < p.TotalPages-1 }

func (p Pager) First() int { return 0 }

func (p Pager) Last() int { return p.TotalPages - 1 }

func (p Pager) Prev() int {
	if p.CurrentPage-1 < 0 {
		return 0
	}
	return p.CurrentPage - 1
}

func (p Pager) Next() int {
	if p.CurrentPage+1 > p.TotalPages-1 {
		return p.TotalPages - 1
	}
	return p.CurrentPage + 1
}

// Label renders the 1-based position, eg: "Página 3 de 5".
func (p Pager) Label() string {
	return fmt.Sprintf("Página %d de %d", p.CurrentPage+1, p.TotalPages)
}
