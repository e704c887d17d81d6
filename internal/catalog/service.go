package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/noah-isme/backend-mandi/internal/obs"
)

// ErrProductNotFound is returned when a product id has no catalog entry.
var ErrProductNotFound = errors.New("product not found")

const productsCacheKey = "catalog:products:v1"

// Product is a single commodity listing parsed from the catalog file.
type Product struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory"`
	Price       float64 `json:"price"`
	Unit        string  `json:"unit"`
	Seller      string  `json:"seller"`
	Location    string  `json:"location"`
	State       string  `json:"state"`
	Image       string  `json:"image"`
	Date        string  `json:"date"`
}

// rawProduct mirrors the commodity data file layout. Prices arrive as
// display strings like "₹ 180 /- Kg" and must be parsed.
type rawProduct struct {
	URL      string `json:"url"`
	ID       string `json:"id"`
	Image    string `json:"image"`
	Date     string `json:"date"`
	Title    string `json:"title"`
	Price    string `json:"price"`
	Seller   string `json:"seller"`
	Location string `json:"location"`
}

var priceRe = regexp.MustCompile(`₹\s*([\d,.]+)\s*/-\s*(\w+)`)

// Service loads the commodity catalog from a JSON file exactly once per
// process and serves it from memory afterwards. The singleton is explicit:
// Reset invalidates both the in-memory copy and the shared redis cache so
// tests and admin tooling can force a reload.
type Service struct {
	Path  string
	Cache *Cache

	mu       sync.RWMutex
	loaded   bool
	products []Product
	byID     map[string]Product
}

// NewService constructs a catalog service over the given file path.
func NewService(path string, cache *Cache) *Service {
	return &Service{Path: path, Cache: cache}
}

// Products returns all listings, loading the catalog on first use.
func (s *Service) Products(ctx context.Context) ([]Product, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

// Categories returns the distinct category names in sorted order.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := map[string]struct{}{}
	var categories []string
	for _, p := range s.products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

// ProductByID looks up a single listing.
func (s *Service) ProductByID(ctx context.Context, id string) (Product, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return Product{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[id]
	if !ok {
		return Product{}, ErrProductNotFound
	}
	return p, nil
}

// Reset drops the in-memory catalog and the shared cache entry. The next
// read reloads from disk.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	s.loaded = false
	s.products = nil
	s.byID = nil
	s.mu.Unlock()
	return s.Cache.Delete(ctx, productsCacheKey)
}

func (s *Service) ensureLoaded(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}

	var products []Product
	if hit, err := s.Cache.GetJSON(ctx, productsCacheKey, &products); err == nil && hit {
		s.install(products)
		return nil
	}

	products, err := s.loadFromDisk()
	if err != nil {
		return err
	}
	if obs.CatalogReloadTotal != nil {
		obs.CatalogReloadTotal.Inc()
	}
	_ = s.Cache.SetJSON(ctx, productsCacheKey, products)
	s.install(products)
	return nil
}

func (s *Service) install(products []Product) {
	byID := make(map[string]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	s.products = products
	s.byID = byID
	s.loaded = true
}

func (s *Service) loadFromDisk() ([]Product, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	// File layout: category -> subcategory -> listings.
	var raw map[string]map[string][]rawProduct
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	var products []Product
	for category, subcategories := range raw {
		for subcategory, listings := range subcategories {
			for _, listing := range listings {
				products = append(products, processRaw(listing, category, subcategory))
			}
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func processRaw(raw rawProduct, category, subcategory string) Product {
	price := 0.0
	unit := "Kg"
	if m := priceRe.FindStringSubmatch(raw.Price); m != nil {
		if parsed, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil {
			price = parsed
		}
		unit = strings.TrimSpace(m[2])
	}

	image := raw.Image
	if image == "" || image == "N/A" || !strings.HasPrefix(image, "http") {
		image = ""
	}

	return Product{
		ID:          raw.ID,
		Title:       raw.Title,
		Category:    category,
		Subcategory: subcategory,
		Price:       price,
		Unit:        unit,
		Seller:      raw.Seller,
		Location:    raw.Location,
		State:       stateFromLocation(raw.Location),
		Image:       image,
		Date:        raw.Date,
	}
}

// stateFromLocation extracts the trailing state name from a "City, State"
// location string. A location without a comma is returned as-is.
func stateFromLocation(location string) string {
	idx := strings.LastIndex(location, ",")
	if idx < 0 {
		return strings.TrimSpace(location)
	}
	return strings.TrimSpace(location[idx+1:])
}
