// Package graphql exposes a read-only query surface over the public
// catalogue (materials and products) at POST /graphql. Mutations stay
// on the REST surface.
package graphql

import (
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/ecotrackhq/ecotrack/app/services"
	pkggraphql "github.com/ecotrackhq/ecotrack/pkg/graphql"
)

var materialType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Material",
	Fields: graphql.Fields{
		"id":           &graphql.Field{Type: graphql.Int},
		"name":         &graphql.Field{Type: graphql.String},
		"code":         &graphql.Field{Type: graphql.String},
		"description":  &graphql.Field{Type: graphql.String},
		"unit":         &graphql.Field{Type: graphql.String},
		"pricePerUnit": &graphql.Field{Type: graphql.Float},
		"hazardous":    &graphql.Field{Type: graphql.Boolean},
	},
})

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.Int},
		"name":        &graphql.Field{Type: graphql.String},
		"sku":         &graphql.Field{Type: graphql.String},
		"type":        &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
		"price":       &graphql.Field{Type: graphql.Float},
		"stock":       &graphql.Field{Type: graphql.Int},
		"imageUrl":    &graphql.Field{Type: graphql.String},
	},
})

// NewSchema builds the catalogue query schema over the given services.
func NewSchema(materials *services.MaterialService, products *services.ProductService) (graphql.Schema, error) {
	root := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootQuery",
		Fields: graphql.Fields{
			"materials": &graphql.Field{
				Type: graphql.NewList(materialType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return materials.List()
				},
			},
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"type": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					productType, _ := p.Args["type"].(string)
					return products.List(productType)
				},
			},
		},
	})

	return pkggraphql.NewSchema(root)
}

// Handler returns the http.HandlerFunc for POST /graphql.
func Handler(schema graphql.Schema) http.HandlerFunc {
	return pkggraphql.Handler(schema)
}
