package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/hyfac/catalog/internal/core/domain"
)

// buildSchema creates the GraphQL read schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lng": &graphql.Field{Type: graphql.Float},
		},
	})

	storeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Store",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.String},
			"name":        &graphql.Field{Type: graphql.String},
			"slug":        &graphql.Field{Type: graphql.String},
			"address":     &graphql.Field{Type: graphql.String},
			"city":        &graphql.Field{Type: graphql.String},
			"postal_code": &graphql.Field{Type: graphql.String},
			"country":     &graphql.Field{Type: graphql.String},
			"location":    &graphql.Field{Type: geoPointType},
			"ranges":      &graphql.Field{Type: graphql.NewList(graphql.String)},
			"phone":       &graphql.Field{Type: graphql.String},
			"is_active":   &graphql.Field{Type: graphql.Boolean},
			"is_featured": &graphql.Field{Type: graphql.Boolean},
			"distance":    &graphql.Field{Type: graphql.Float},
		},
	})

	productType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id":         &graphql.Field{Type: graphql.String},
			"name":       &graphql.Field{Type: graphql.String},
			"slug":       &graphql.Field{Type: graphql.String},
			"category":   &graphql.Field{Type: graphql.String},
			"ranges":     &graphql.Field{Type: graphql.NewList(graphql.String)},
			"skin_types": &graphql.Field{Type: graphql.NewList(graphql.String)},
			"volume":     &graphql.Field{Type: graphql.String},
			"price":      &graphql.Field{Type: graphql.Float},
			"image_url":  &graphql.Field{Type: graphql.String},
			"in_stock":   &graphql.Field{Type: graphql.Boolean},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"stores": &graphql.Field{
				Type:        graphql.NewList(storeType),
				Description: "List stores with optional filters",
				Args: graphql.FieldConfigArgument{
					"city":  &graphql.ArgumentConfig{Type: graphql.String},
					"range": &graphql.ArgumentConfig{Type: graphql.String},
					"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 50},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					filter := domain.StoreFilter{Page: 1}
					if city, ok := p.Args["city"].(string); ok {
						filter.City = city
					}
					if rng, ok := p.Args["range"].(string); ok {
						filter.Range = rng
					}
					if limit, ok := p.Args["limit"].(int); ok {
						filter.Limit = limit
					}
					stores, _, err := deps.Stores.List(p.Context, filter)
					return stores, err
				},
			},
			"storesNearby": &graphql.Field{
				Type:        graphql.NewList(storeType),
				Description: "Find stores near a location, sorted by distance",
				Args: graphql.FieldConfigArgument{
					"lat":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lng":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"radius": &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: 0.0},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					lat := p.Args["lat"].(float64)
					lng := p.Args["lng"].(float64)
					radius := p.Args["radius"].(float64)
					return deps.Stores.FindNearby(p.Context, lat, lng, radius)
				},
			},
			"store": &graphql.Field{
				Type:        storeType,
				Description: "Get a store by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Stores.GetByID(p.Context, p.Args["id"].(string))
				},
			},
			"products": &graphql.Field{
				Type:        graphql.NewList(productType),
				Description: "List products with optional filters",
				Args: graphql.FieldConfigArgument{
					"category": &graphql.ArgumentConfig{Type: graphql.String},
					"range":    &graphql.ArgumentConfig{Type: graphql.String},
					"limit":    &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					filter := domain.ProductFilter{Page: 1}
					if category, ok := p.Args["category"].(string); ok {
						filter.Category = category
					}
					if rng, ok := p.Args["range"].(string); ok {
						filter.Range = rng
					}
					if limit, ok := p.Args["limit"].(int); ok {
						filter.Limit = limit
					}
					products, _, err := deps.Products.List(p.Context, filter)
					return products, err
				},
			},
			"product": &graphql.Field{
				Type:        productType,
				Description: "Get a product by ID or slug",
				Args: graphql.FieldConfigArgument{
					"id":   &graphql.ArgumentConfig{Type: graphql.String},
					"slug": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if id, ok := p.Args["id"].(string); ok && id != "" {
						return deps.Products.GetByID(p.Context, id)
					}
					if slug, ok := p.Args["slug"].(string); ok && slug != "" {
						return deps.Products.GetBySlug(p.Context, slug)
					}
					return nil, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Context(),
		})

		return c.JSON(result)
	}
}
