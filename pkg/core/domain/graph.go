package domain

// Graph is an id-keyed arena of loaded catalog entities. Relationships are
// plain ids resolved through the graph; there are no back-pointers.
type Graph struct {
	Categories  map[int64]*Category
	Collections map[int64]*Collection
	Products    map[int64]*Product
}

func NewGraph() *Graph {
	return &Graph{
		Categories:  make(map[int64]*Category),
		Collections: make(map[int64]*Collection),
		Products:    make(map[int64]*Product),
	}
}

// Category returns the category with the given id, or nil. Safe on a nil graph.
func (g *Graph) Category(id int64) *Category {
	if g == nil {
		return nil
	}
	return g.Categories[id]
}

// Collection returns the collection with the given id, or nil. Safe on a nil graph.
func (g *Graph) Collection(id int64) *Collection {
	if g == nil {
		return nil
	}
	return g.Collections[id]
}

// Product returns the product with the given id, or nil. Safe on a nil graph.
func (g *Graph) Product(id int64) *Product {
	if g == nil {
		return nil
	}
	return g.Products[id]
}

func (g *Graph) AddCategory(c *Category) {
	if c != nil {
		g.Categories[c.ID] = c
	}
}

func (g *Graph) AddCollection(c *Collection) {
	if c != nil {
		g.Collections[c.ID] = c
	}
}

func (g *Graph) AddProduct(p *Product) {
	if p != nil {
		g.Products[p.ID] = p
	}
}
