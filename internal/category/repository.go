package category

// Repository provides access to category rows.
type Repository interface {
	List(limit int) ([]Item, error)
}

// StaticRepository serves the built-in category list.
type StaticRepository struct{}

func (StaticRepository) List(limit int) ([]Item, error) {
	out := make([]Item, 0, len(Names))
	for i, n := range Names {
		if limit > 0 && i >= limit {
			break
		}
		out = append(out, Item{Name: n, Ord: i})
	}
	return out, nil
}
