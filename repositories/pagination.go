// File: /repositories/pagination.go
package repositories

import "gorm.io/gorm"

const maxPerPage = 100

// Page describes the requested slice of a list. NoPaginate returns every row.
type Page struct {
	Page       int
	PerPage    int
	NoPaginate bool
}

// Normalize clamps the page values, using defaultPerPage when none is set.
func (p Page) Normalize(defaultPerPage int) Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = defaultPerPage
	}
	if p.PerPage > maxPerPage {
		p.PerPage = maxPerPage
	}
	return p
}

// Offset returns the number of rows skipped before the page starts.
func (p Page) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// paginate counts the matching rows and restricts query to the page.
func paginate(query *gorm.DB, model interface{}, page Page) (*gorm.DB, int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Model(model).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if page.NoPaginate {
		return query, total, nil
	}
	return query.Offset(page.Offset()).Limit(page.PerPage), total, nil
}
