// Package pagination provides page/offset helpers for admin listings.
package pagination

// Page describes a one-indexed page request.
type Page struct {
	Number int
	Size   int
}

// NewPage clamps the requested page number to 1 and applies the size.
func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = 1
	}
	return Page{Number: number, Size: size}
}

// Offset returns the row offset for the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Pages returns the total page count for the given row total. A total of
// zero still yields one (empty) page so meta always reports a valid range.
func (p Page) Pages(total int64) int {
	if total <= 0 {
		return 1
	}
	pages := int(total) / p.Size
	if int(total)%p.Size != 0 {
		pages++
	}
	return pages
}

// Meta is the page metadata echoed back to admin clients.
type Meta struct {
	Page  int `json:"page"`
	Pages int `json:"pages"`
}

// MetaFor builds the response metadata for a page and row total.
func MetaFor(p Page, total int64) Meta {
	return Meta{Page: p.Number, Pages: p.Pages(total)}
}
