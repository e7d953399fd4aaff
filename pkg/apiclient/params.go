package apiclient

import (
	"fmt"
	"net/url"
	"strconv"
)

// Params builds the backend's query parameter dialect: relation expansion,
// field filters, sorting and pagination.
type Params struct {
	values url.Values
}

// NewParams creates an empty parameter set.
func NewParams() *Params {
	return &Params{values: url.Values{}}
}

// Populate requests relation expansion. Populate("*") expands everything;
// named relations are indexed: populate[0]=user, populate[1]=skills.
func (p *Params) Populate(relations ...string) *Params {
	if len(relations) == 1 && relations[0] == "*" {
		p.values.Set("populate", "*")
		return p
	}
	for i, rel := range relations {
		p.values.Set(fmt.Sprintf("populate[%d]", i), rel)
	}
	return p
}

// Filter adds a field filter, e.g. Filter("slug", "$eq", "resina").
func (p *Params) Filter(field, op, value string) *Params {
	p.values.Set(fmt.Sprintf("filters[%s][%s]", field, op), value)
	return p
}

// Sort sets the sort order, e.g. Sort("name:asc").
func (p *Params) Sort(fields ...string) *Params {
	for i, f := range fields {
		p.values.Set(fmt.Sprintf("sort[%d]", i), f)
	}
	return p
}

// Paginate sets page and page size.
func (p *Params) Paginate(page, pageSize int) *Params {
	p.values.Set("pagination[page]", strconv.Itoa(page))
	p.values.Set("pagination[pageSize]", strconv.Itoa(pageSize))
	return p
}

// Values returns the accumulated url.Values.
func (p *Params) Values() url.Values {
	return p.values
}
