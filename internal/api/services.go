package api

// Service accessors group Client methods by resource. Each service
// embeds *Client so a service value is cheap to construct at call sites.

type ProductsService struct{ *Client }

type OrdersService struct{ *Client }

type VariantsService struct{ *Client }

type MetafieldsService struct{ *Client }

type GraphQLService struct{ *Client }

// Products returns the products service.
func (c *Client) Products() ProductsService { return ProductsService{c} }

// Orders returns the orders service.
func (c *Client) Orders() OrdersService { return OrdersService{c} }

// Variants returns the variants service.
func (c *Client) Variants() VariantsService { return VariantsService{c} }

// Metafields returns the metafields service.
func (c *Client) Metafields() MetafieldsService { return MetafieldsService{c} }

// GraphQL returns the GraphQL service.
func (c *Client) GraphQL() GraphQLService { return GraphQLService{c} }
