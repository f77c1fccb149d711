package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/wadjakorntonsri/go-catalog/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/go-catalog/pkg/core/assembler"
	"github.com/wadjakorntonsri/go-catalog/pkg/core/domain"
	"github.com/wadjakorntonsri/go-catalog/pkg/ports"
)

type fixture struct {
	repo        *sqlite.SQLiteRepository
	categories  *CategoryService
	collections *CollectionService
	products    *ProductService
	links       *ProductCollectionService
	orders      *OrderService
	orderLines  *OrderProductService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	repo, err := sqlite.NewSQLiteRepository(fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("Failed to init db: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	asm := assembler.New()
	log := zap.NewNop()
	return &fixture{
		repo:        repo,
		categories:  NewCategoryService(repo, asm, log),
		collections: NewCollectionService(repo, asm, log),
		products:    NewProductService(repo, asm, log),
		links:       NewProductCollectionService(repo, log),
		orders:      NewOrderService(repo, repo, asm, log),
		orderLines:  NewOrderProductService(repo, repo, asm, log),
	}
}

func (f *fixture) category(t *testing.T, name string) *domain.CategoryResponse {
	t.Helper()
	c, err := f.categories.Create(context.Background(), domain.CategoryRequest{Name: name})
	if err != nil {
		t.Fatalf("create category %q: %v", name, err)
	}
	return c
}

func (f *fixture) collection(t *testing.T, name string) *domain.CollectionResponse {
	t.Helper()
	c, err := f.collections.Create(context.Background(), domain.CollectionRequest{Name: name})
	if err != nil {
		t.Fatalf("create collection %q: %v", name, err)
	}
	return c
}

func (f *fixture) product(t *testing.T, name string, categoryID int64, refs ...domain.CollectionRef) *domain.ProductResponse {
	t.Helper()
	p, err := f.products.Create(context.Background(), domain.ProductRequest{
		Name:        name,
		Price:       1000,
		Description: name + " description",
		CategoryID:  categoryID,
		Collections: refs,
	})
	if err != nil {
		t.Fatalf("create product %q: %v", name, err)
	}
	return p
}

func id(v int64) *int64 { return &v }

func collectionNames(cs []domain.CollectionResponse) []string {
	names := make([]string, 0, len(cs))
	for _, c := range cs {
		names = append(names, c.Name)
	}
	return names
}

func TestCategoryRoundTripBySlug(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.categories.Create(ctx, domain.CategoryRequest{Name: "Kitchen Tools", Description: "Pans"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Slug != "kitchen_tools" {
		t.Fatalf("expected slug kitchen_tools, got %q", created.Slug)
	}

	read, err := f.categories.GetBySlug(ctx, "kitchen_tools")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if !reflect.DeepEqual(created, read) {
		t.Errorf("round trip mismatch:\ncreated %+v\nread    %+v", created, read)
	}

	// Hyphenated and mixed-case filters resolve to the same category
	read, err = f.categories.GetBySlug(ctx, "Kitchen-Tools")
	if err != nil || read.ID != created.ID {
		t.Errorf("expected lookup by raw slug to match, got %+v, %v", read, err)
	}
}

func TestCategoryCreateConflictAndUpdateKeepsSlug(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c := f.category(t, "Shoes")
	if _, err := f.categories.Create(ctx, domain.CategoryRequest{Name: " SHOES "}); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
	if _, err := f.categories.Create(ctx, domain.CategoryRequest{Name: "--"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}

	updated, err := f.categories.Update(ctx, c.ID, domain.CategoryRequest{Name: "Footwear"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Footwear" || updated.Slug != "shoes" {
		t.Errorf("expected renamed category with original slug, got %+v", updated)
	}

	if _, err := f.categories.Update(ctx, 999, domain.CategoryRequest{Name: "X"}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := f.categories.Delete(ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCategoryListWithProductsBySlugs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.category(t, "Shoes")
	menShoes := f.category(t, "Men Shoes")
	f.product(t, "Runner", menShoes.ID)
	f.product(t, "Loafer", menShoes.ID)

	tests := []struct {
		name      string
		slugs     []string
		wantSlugs []string
		wantCount []int
	}{
		{"normalizes filters", []string{"shoes", "men-shoes"}, []string{"shoes", "men_shoes"}, []int{0, 2}},
		{"blank entry is ignored", []string{"", "MEN SHOES", "  "}, []string{"men_shoes"}, []int{2}},
		{"no match", []string{"hats"}, nil, nil},
		{"empty input", nil, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.categories.ListWithProductsBySlugs(ctx, tt.slugs)
			if err != nil {
				t.Fatalf("ListWithProductsBySlugs: %v", err)
			}
			if got == nil {
				t.Fatal("expected empty list, got nil")
			}
			if len(got) != len(tt.wantSlugs) {
				t.Fatalf("expected %d categories, got %d", len(tt.wantSlugs), len(got))
			}
			for i, c := range got {
				if c.Slug != tt.wantSlugs[i] || len(c.Products) != tt.wantCount[i] {
					t.Errorf("category %d: got slug %q with %d products", i, c.Slug, len(c.Products))
				}
				for _, p := range c.Products {
					if p.Category == nil || p.Category.ID != c.ID {
						t.Errorf("product %d has wrong category %+v", p.ID, p.Category)
					}
				}
			}
		})
	}
}

func TestCollectionListingsFailWhenEmpty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cat := f.category(t, "Shoes")
	summer := f.collection(t, "Summer Sale")
	f.product(t, "Sandal", cat.ID, domain.CollectionRef{ID: id(summer.ID)})

	flat, err := f.collections.ListBySlugs(ctx, []string{"summer-sale"})
	if err != nil {
		t.Fatalf("ListBySlugs: %v", err)
	}
	if len(flat) != 1 || flat[0].Slug != "summer_sale" {
		t.Errorf("unexpected collections: %+v", flat)
	}

	nested, err := f.collections.ListWithProductsBySlugs(ctx, []string{"Summer Sale"})
	if err != nil {
		t.Fatalf("ListWithProductsBySlugs: %v", err)
	}
	if len(nested) != 1 || len(nested[0].Products) != 1 || nested[0].Products[0].Name != "Sandal" {
		t.Errorf("unexpected nested collections: %+v", nested)
	}

	for _, slugs := range [][]string{nil, {""}, {"winter"}} {
		if _, err := f.collections.ListBySlugs(ctx, slugs); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("ListBySlugs(%q): expected ErrNotFound, got %v", slugs, err)
		}
		if _, err := f.collections.ListWithProductsBySlugs(ctx, slugs); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("ListWithProductsBySlugs(%q): expected ErrNotFound, got %v", slugs, err)
		}
	}

	if _, err := f.collections.Create(ctx, domain.CollectionRequest{Name: "summer sale"}); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestProductUpdateReconcilesCollections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cat := f.category(t, "Shoes")
	existing := f.collection(t, "Five")
	p := f.product(t, "Runner", cat.ID)

	req := domain.ProductRequest{
		Name:        "Runner",
		Price:       1500,
		Description: "Updated",
		CategoryID:  cat.ID,
		Collections: []domain.CollectionRef{
			{ID: id(existing.ID)},
			{ID: id(existing.ID)},
			{Name: "New"},
			{},
		},
	}

	for round := 1; round <= 2; round++ {
		got, err := f.products.Update(ctx, p.ID, req)
		if err != nil {
			t.Fatalf("round %d Update: %v", round, err)
		}
		names := collectionNames(got.Collections)
		if len(names) != 2 || !strings.Contains(strings.Join(names, ","), "Five") || !strings.Contains(strings.Join(names, ","), "New") {
			t.Errorf("round %d: expected links to Five and New, got %v", round, names)
		}

		links, err := f.links.List(ctx)
		if err != nil {
			t.Fatalf("List links: %v", err)
		}
		if len(links) != 2 {
			t.Errorf("round %d: expected 2 stored links, got %d", round, len(links))
		}
	}

	all, err := f.collections.List(ctx)
	if err != nil {
		t.Fatalf("List collections: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected the auto-created collection to be reused, got %d collections", len(all))
	}
	for _, c := range all {
		if c.Name == "New" && c.Slug != "" {
			t.Errorf("auto-created collection should have no slug, got %q", c.Slug)
		}
	}

	// Replacing with an empty set clears every link
	req.Collections = nil
	got, err := f.products.Update(ctx, p.ID, req)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(got.Collections) != 0 {
		t.Errorf("expected no collections, got %v", collectionNames(got.Collections))
	}
}

func TestProductUpdateUnknownCollectionID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cat := f.category(t, "Shoes")
	p := f.product(t, "Runner", cat.ID)

	_, err := f.products.Update(ctx, p.ID, domain.ProductRequest{
		Name: "Runner", Description: "d", CategoryID: cat.ID,
		Collections: []domain.CollectionRef{{ID: id(404)}},
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestProductCreateImagesAndCategory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cat := f.category(t, "Shoes")

	if _, err := f.products.Create(ctx, domain.ProductRequest{Name: "X", Description: "d", CategoryID: 999}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing category, got %v", err)
	}

	p, err := f.products.Create(ctx, domain.ProductRequest{
		Name:        "Runner",
		Price:       4999,
		Description: "Light",
		CategoryID:  cat.ID,
		Images:      []string{"https://img/a.jpg", "  ", "https://img/b.jpg"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !reflect.DeepEqual(p.Images, []string{"https://img/a.jpg", "https://img/b.jpg"}) {
		t.Errorf("unexpected images: %v", p.Images)
	}
	if p.Category == nil || p.Category.Slug != "shoes" {
		t.Errorf("unexpected category: %+v", p.Category)
	}

	updated, err := f.products.Update(ctx, p.ID, domain.ProductRequest{
		Name: "Runner", Description: "Light", CategoryID: cat.ID,
		Images: []string{"https://img/c.jpg"},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !reflect.DeepEqual(updated.Images, []string{"https://img/c.jpg"}) {
		t.Errorf("expected images to be replaced, got %v", updated.Images)
	}
}

func TestProductQueries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	shoes := f.category(t, "Shoes")
	hats := f.category(t, "Hats")
	summer := f.collection(t, "Summer")
	runner := f.product(t, "Trail Runner", shoes.ID, domain.CollectionRef{ID: id(summer.ID)})
	f.product(t, "Cap", hats.ID)

	byCategory, err := f.products.ListByCategorySlug(ctx, "SHOES")
	if err != nil || len(byCategory) != 1 || byCategory[0].ID != runner.ID {
		t.Errorf("ListByCategorySlug: %+v, %v", byCategory, err)
	}
	byCollection, err := f.products.ListByCollectionSlug(ctx, "summer")
	if err != nil || len(byCollection) != 1 || byCollection[0].ID != runner.ID {
		t.Errorf("ListByCollectionSlug: %+v, %v", byCollection, err)
	}
	found, err := f.products.Search(ctx, "trail")
	if err != nil || len(found) != 1 {
		t.Errorf("Search: %+v, %v", found, err)
	}
	all, err := f.products.List(ctx)
	if err != nil || len(all) != 2 {
		t.Errorf("List: %d, %v", len(all), err)
	}
	none, err := f.products.ListByCategorySlug(ctx, "boots")
	if err != nil || none == nil || len(none) != 0 {
		t.Errorf("expected empty non-nil list, got %v, %v", none, err)
	}

	if _, err := f.products.ListByCategorySlug(ctx, " - "); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}

	if err := f.products.Delete(ctx, runner.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := f.products.Delete(ctx, runner.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
	if _, err := f.products.Get(ctx, runner.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// Deleting a category does not touch its products. Any read that has to
// assemble one of them fails instead of returning a product with no category.
func TestDeletedCategoryOrphansProducts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	shoes := f.category(t, "Shoes")
	hats := f.category(t, "Hats")
	runner := f.product(t, "Trail Runner", shoes.ID)
	beanie := f.product(t, "Beanie", hats.ID)

	if err := f.categories.Delete(ctx, shoes.ID); err != nil {
		t.Fatalf("Delete category: %v", err)
	}

	reads := []struct {
		name string
		call func() error
	}{
		{"get", func() error { _, err := f.products.Get(ctx, runner.ID); return err }},
		{"list", func() error { _, err := f.products.List(ctx); return err }},
		{"search", func() error { _, err := f.products.Search(ctx, "runner"); return err }},
	}
	for _, tt := range reads {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, domain.ErrInconsistentState) {
				t.Errorf("expected ErrInconsistentState, got %v", err)
			}
		})
	}

	// Products of other categories are unaffected
	got, err := f.products.ListByCategorySlug(ctx, "hats")
	if err != nil || len(got) != 1 || got[0].ID != beanie.ID {
		t.Errorf("ListByCategorySlug(hats): %+v, %v", got, err)
	}
	if _, err := f.products.Update(ctx, runner.ID, domain.ProductRequest{
		Name: "Trail Runner", Description: "d", CategoryID: shoes.ID,
	}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound when updating into the deleted category, got %v", err)
	}
}

func TestProductCollectionCreateConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cat := f.category(t, "Shoes")
	summer := f.collection(t, "Summer")
	p := f.product(t, "Runner", cat.ID, domain.CollectionRef{ID: id(summer.ID)})

	_, err := f.links.Create(ctx, domain.ProductCollectionRequest{ProductID: p.ID, CollectionID: summer.ID})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	links, _ := f.links.List(ctx)
	if len(links) != 1 || links[0] != (domain.ProductCollection{ProductID: p.ID, CollectionID: summer.ID}) {
		t.Errorf("existing link changed: %+v", links)
	}

	if _, err := f.links.Create(ctx, domain.ProductCollectionRequest{ProductID: p.ID, CollectionID: 999}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing collection, got %v", err)
	}

	if err := f.links.Delete(ctx, p.ID, summer.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := f.links.Delete(ctx, p.ID, summer.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	winter := f.collection(t, "Winter")
	link, err := f.links.Create(ctx, domain.ProductCollectionRequest{ProductID: p.ID, CollectionID: winter.ID})
	if err != nil || link.CollectionID != winter.ID {
		t.Errorf("Create: %+v, %v", link, err)
	}
}

func TestOrdersAndLines(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cat := f.category(t, "Shoes")
	p := f.product(t, "Runner", cat.ID)

	if _, err := f.orders.Create(ctx, domain.OrderRequest{Quantity: 1, OrderDate: time.Now(), ProductID: 999, CustomerID: 1}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing product, got %v", err)
	}

	order, err := f.orders.Create(ctx, domain.OrderRequest{Quantity: 2, OrderDate: time.Now().UTC(), Total: 2000, ProductID: p.ID, CustomerID: 7})
	if err != nil {
		t.Fatalf("Create order: %v", err)
	}

	lineReq := domain.OrderProductRequest{OrderID: order.ID, ProductID: p.ID, Quantity: 2, Price: 1000}
	if _, err := f.orderLines.Create(ctx, lineReq); err != nil {
		t.Fatalf("Create line: %v", err)
	}
	if _, err := f.orderLines.Create(ctx, lineReq); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
	if _, err := f.orderLines.Create(ctx, domain.OrderProductRequest{OrderID: 999, ProductID: p.ID, Quantity: 1}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing order, got %v", err)
	}

	updated, err := f.orderLines.Update(ctx, order.ID, p.ID, domain.OrderProductRequest{Quantity: 3, Price: 900})
	if err != nil || updated.Quantity != 3 || updated.Price != 900 {
		t.Errorf("Update line: %+v, %v", updated, err)
	}

	if err := f.orderLines.Delete(ctx, order.ID, p.ID); err != nil {
		t.Fatalf("Delete line: %v", err)
	}
	if _, err := f.orderLines.Get(ctx, order.ID, p.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if err := f.orders.Delete(ctx, order.ID); err != nil {
		t.Fatalf("Delete order: %v", err)
	}
	if _, err := f.orders.Get(ctx, order.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// recordingOrders fails the test if any mutation is attempted
type recordingOrders struct {
	ports.OrderRepository
	exists    bool
	mutations int
}

func (r *recordingOrders) OrderProductExists(ctx context.Context, orderID, productID int64) (bool, error) {
	return r.exists, nil
}

func (r *recordingOrders) DeleteOrderProduct(ctx context.Context, orderID, productID int64) error {
	r.mutations++
	return nil
}

func (r *recordingOrders) SaveOrderProduct(ctx context.Context, line *domain.OrderProduct) error {
	r.mutations++
	return nil
}

func TestOrderLineDeleteMissingDoesNotMutate(t *testing.T) {
	orders := &recordingOrders{}
	svc := NewOrderProductService(orders, nil, assembler.New(), zap.NewNop())

	err := svc.Delete(context.Background(), 1, 2)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if orders.mutations != 0 {
		t.Errorf("expected no storage mutation, got %d", orders.mutations)
	}
}

// failingCatalog returns errBoom from every method it overrides
type failingCatalog struct {
	ports.CatalogRepository
}

var errBoom = errors.New("disk on fire")

func (failingCatalog) LoadCategoryGraph(ctx context.Context, slugs []string) ([]*domain.Category, *domain.Graph, error) {
	return nil, nil, errBoom
}

func (failingCatalog) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	return nil, errBoom
}

func (failingCatalog) GetCollection(ctx context.Context, id int64) (*domain.Collection, error) {
	return nil, errBoom
}

func (failingCatalog) ListProductIDs(ctx context.Context) ([]int64, error) {
	return nil, errBoom
}

func (failingCatalog) ProductCollectionExists(ctx context.Context, productID, collectionID int64) (bool, error) {
	return false, errBoom
}

func TestRepositoryFailuresPropagate(t *testing.T) {
	repo := failingCatalog{}
	asm := assembler.New()
	log := zap.NewNop()
	categories := NewCategoryService(repo, asm, log)
	products := NewProductService(repo, asm, log)
	links := NewProductCollectionService(repo, log)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{"category listing", func() error {
			_, err := categories.ListWithProductsBySlugs(ctx, []string{"shoes"})
			return err
		}},
		{"category get", func() error {
			_, err := categories.Get(ctx, 1)
			return err
		}},
		{"product list", func() error {
			_, err := products.List(ctx)
			return err
		}},
		{"product create", func() error {
			_, err := products.Create(ctx, domain.ProductRequest{Name: "X", CategoryID: 1})
			return err
		}},
		{"link delete", func() error {
			return links.Delete(ctx, 1, 1)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if !errors.Is(err, domain.ErrRepository) {
				t.Errorf("expected ErrRepository, got %v", err)
			}
			if !errors.Is(err, errBoom) {
				t.Errorf("expected cause to be kept, got %v", err)
			}
		})
	}
}

func TestReconcilerPropagatesLookupFailure(t *testing.T) {
	r := NewReconciler(failingCatalog{}, nil)
	_, err := r.Collections(context.Background(), 1, []domain.CollectionRef{{ID: id(5)}})
	if !errors.Is(err, domain.ErrRepository) {
		t.Errorf("expected ErrRepository, got %v", err)
	}

	links, err := r.Collections(context.Background(), 1, []domain.CollectionRef{{}, {Name: "   "}})
	if err != nil || len(links) != 0 {
		t.Errorf("expected empty refs to be skipped, got %v, %v", links, err)
	}
}

func TestBuildImages(t *testing.T) {
	images := BuildImages(3, []string{"a", "", " b ", "c"})
	if len(images) != 3 {
		t.Fatalf("expected 3 images, got %d", len(images))
	}
	for i, img := range images {
		if img.Position == nil || *img.Position != i {
			t.Errorf("image %d: unexpected position %v", i, img.Position)
		}
		if img.ProductID != 3 {
			t.Errorf("image %d: unexpected product id %d", i, img.ProductID)
		}
	}
	if images[1].ImageURL != "b" {
		t.Errorf("expected trimmed url, got %q", images[1].ImageURL)
	}
}
