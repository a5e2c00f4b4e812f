package rule

import (
	"slices"

	"go.trai.ch/wave/internal/core/domain"
)

// categoryFiles is an insertion ordered map from category to a set of paths.
type categoryFiles struct {
	order []domain.Category
	files map[domain.Category]map[domain.InternedString]struct{}
}

func (c *categoryFiles) add(cat domain.Category, paths ...string) {
	if c.files == nil {
		c.files = make(map[domain.Category]map[domain.InternedString]struct{})
	}
	set, ok := c.files[cat]
	if !ok {
		set = make(map[domain.InternedString]struct{})
		c.files[cat] = set
		c.order = append(c.order, cat)
	}
	for _, p := range paths {
		set[domain.NewInternedString(p)] = struct{}{}
	}
}

func (c *categoryFiles) categories() []domain.Category {
	return slices.Clone(c.order)
}

func (c *categoryFiles) get(cat domain.Category) []string {
	set := c.files[cat]
	out := make([]domain.InternedString, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	return domain.Strings(out)
}

func (c *categoryFiles) all() []string {
	var out []domain.InternedString
	for _, cat := range c.order {
		for p := range c.files[cat] {
			out = append(out, p)
		}
	}
	return domain.Strings(out)
}

func (c *categoryFiles) size() int {
	return len(c.order)
}

func (c *categoryFiles) contains(path string) bool {
	key := domain.NewInternedString(path)
	for _, set := range c.files {
		if _, ok := set[key]; ok {
			return true
		}
	}
	return false
}
