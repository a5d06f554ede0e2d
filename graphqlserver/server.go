package graphqlserver

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"gorm.io/gorm"

	"brightlaptop.GO/config"
	"brightlaptop.GO/graphql"
	gqlmodels "brightlaptop.GO/graphql/models"
	"brightlaptop.GO/graphql/registry"
	catalogEntity "brightlaptop.GO/model/entity/catalog"
	catalogRepo "brightlaptop.GO/model/repository/catalog"
	catalogService "brightlaptop.GO/service/catalog"
	"brightlaptop.GO/service/pricing"
)

// RootResolver is the root for graphql-go.
type RootResolver struct {
	DB *gorm.DB
}

// Query returns the query resolver.
func (r *RootResolver) Query() *QueryResolver {
	return &QueryResolver{repo: catalogRepo.NewCatalogRepository(r.DB)}
}

// QueryResolver implements Query fields over the catalog repository and the
// pricing calculator.
type QueryResolver struct {
	repo *catalogRepo.CatalogRepository
}

// ProductsArgs matches the products query arguments (defaults in schema: pageSize=20, currentPage=1).
type ProductsArgs struct {
	Search      *string
	Category    *string
	Condition   *string
	Sort        *string
	PriceMin    *float64
	PriceMax    *float64
	Brands      *[]string
	Memory      *[]string
	Storage     *[]string
	Processors  *[]string
	ScreenSizes *[]string
	PageSize    int32
	CurrentPage int32
}

func (a ProductsArgs) criteria() catalogService.Criteria {
	c := catalogService.Criteria{}
	if a.Search != nil {
		c.Query = *a.Search
	}
	if a.PriceMin != nil {
		c.PriceMin = *a.PriceMin
	}
	if a.PriceMax != nil {
		c.PriceMax = *a.PriceMax
	}
	if a.Brands != nil {
		c.Brands = *a.Brands
	}
	if a.Memory != nil {
		c.Memory = *a.Memory
	}
	if a.Storage != nil {
		c.Storage = *a.Storage
	}
	if a.Processors != nil {
		c.Processors = *a.Processors
	}
	if a.ScreenSizes != nil {
		c.ScreenSizes = *a.ScreenSizes
	}
	if a.Sort != nil {
		c.Sort = catalogService.ParseSortMode(*a.Sort)
	}
	return c
}

func (r *QueryResolver) Products(ctx context.Context, args ProductsArgs) (*gqlmodels.ProductList, error) {
	list, err := r.fetch(args)
	if err != nil {
		return nil, err
	}
	items := catalogService.Query(list, args.criteria())

	ps, cp := int(args.PageSize), int(args.CurrentPage)
	if ps <= 0 {
		ps = 20
	}
	if cp <= 0 {
		cp = 1
	}
	total := len(items)
	totalPages := (total + ps - 1) / ps
	if totalPages < 1 {
		totalPages = 1
	}
	start := (cp - 1) * ps
	if start > total {
		start = total
	}
	end := start + ps
	if end > total {
		end = total
	}

	return &gqlmodels.ProductList{
		Items:      gqlmodels.FromEntities(items[start:end]),
		TotalCount: int32(total),
		PageInfo: gqlmodels.PageInfo{
			PageSize:    int32(ps),
			CurrentPage: int32(cp),
			TotalPages:  int32(totalPages),
		},
	}, nil
}

// fetch narrows the DB read by condition or category before the in-memory
// pipeline runs, mirroring the REST listing endpoint.
func (r *QueryResolver) fetch(args ProductsArgs) ([]catalogEntity.Product, error) {
	if args.Condition != nil && *args.Condition != "" {
		return r.repo.ListByCondition(*args.Condition)
	}
	if args.Category != nil && *args.Category != "" {
		return r.repo.ListByCategory(*args.Category)
	}
	return r.repo.ListActive()
}

// ProductArgs matches the product query arguments.
type ProductArgs struct {
	ID gql.ID
}

func (r *QueryResolver) Product(ctx context.Context, args ProductArgs) (*gqlmodels.Product, error) {
	id, err := strconv.ParseUint(string(args.ID), 10, 32)
	if err != nil {
		return nil, nil
	}
	p, err := r.repo.ByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return gqlmodels.FromEntity(p), nil
}

// QuoteArgs matches the quote query arguments (default in schema: quantity=1).
type QuoteArgs struct {
	ProductID gql.ID
	Memory    *string
	Storage   *string
	Warranty  *string
	Quantity  int32
}

func (r *QueryResolver) Quote(ctx context.Context, args QuoteArgs) (*gqlmodels.Quote, error) {
	id, err := strconv.ParseUint(string(args.ProductID), 10, 32)
	if err != nil {
		return nil, err
	}
	p, err := r.repo.ByID(uint(id))
	if err != nil {
		return nil, err
	}
	sel := pricing.Selection{}
	if args.Memory != nil {
		sel.Memory = *args.Memory
	}
	if args.Storage != nil {
		sel.Storage = *args.Storage
	}
	if args.Warranty != nil {
		sel.Warranty = *args.Warranty
	}
	q, err := pricing.Price(p, sel, int(args.Quantity))
	if err != nil {
		return nil, err
	}
	out := &gqlmodels.Quote{
		UnitPrice: q.UnitPrice,
		LineTotal: q.LineTotal,
		Tier:      q.Tier,
		Quantity:  int32(q.Quantity),
	}
	if q.Tier == pricing.TierBulk {
		out.RequiresBulkContact = true
		if config.AppConfig != nil && config.AppConfig.BulkContactPhone != "" {
			phone := config.AppConfig.BulkContactPhone
			out.BulkContactPhone = &phone
		}
	}
	return out, nil
}

// ExtensionArgs for extension(name, args).
type ExtensionArgs struct {
	Name string
	Args *string
}

func (r *QueryResolver) Extension(ctx context.Context, args ExtensionArgs) (*string, error) {
	var m map[string]interface{}
	if args.Args != nil && *args.Args != "" {
		_ = json.Unmarshal([]byte(*args.Args), &m)
	}
	if m == nil {
		m = make(map[string]interface{})
	}
	out, err := registry.Resolve(ctx, args.Name, m)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

// NewSchema parses the schema and returns a graphql-go Schema.
func NewSchema(db *gorm.DB) (*gql.Schema, error) {
	return gql.ParseSchema(graphql.Schema(), &RootResolver{DB: db}, gql.UseFieldResolvers())
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}
