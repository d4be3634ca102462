package kvmabi

// Contract binds a schema to a deployed contract address. It builds call data
// for endpoint invocations and decodes readonly endpoint results.
type Contract struct {
	address string
	schema  *Schema
	encoder *Encoder
	decoder *Decoder
}

// NewContract creates a Contract. Options apply to both argument encoding and
// result decoding.
func NewContract(address string, schema *Schema, opts ...Option) *Contract {
	return &Contract{
		address: address,
		schema:  schema,
		encoder: NewEncoder(schema, opts...),
		decoder: NewDecoder(schema, opts...),
	}
}

// Address returns the contract address.
func (c *Contract) Address() string {
	return c.address
}

// Schema returns the contract schema.
func (c *Contract) Schema() *Schema {
	return c.schema
}

// Invoke creates a Call for the named endpoint. Each argument is encoded
// top-level against the matching input type; variadic inputs take a slice.
func (c *Contract) Invoke(endpoint string, args ...any) (*Call, error) {
	ep, err := c.schema.Endpoint(endpoint)
	if err != nil {
		return nil, err
	}
	return newCall(c, ep, args)
}

// MustInvoke is like Invoke but panics on error.
func (c *Contract) MustInvoke(endpoint string, args ...any) *Call {
	call, err := c.Invoke(endpoint, args...)
	if err != nil {
		panic(err)
	}
	return call
}

// HasEndpoint returns true if the schema declares the named endpoint.
func (c *Contract) HasEndpoint(endpoint string) bool {
	_, err := c.schema.Endpoint(endpoint)
	return err == nil
}

// EndpointNames returns all endpoint names in declaration order.
func (c *Contract) EndpointNames() []string {
	return c.schema.EndpointNames()
}

// DecodeOutput decodes the return data of a readonly endpoint.
func (c *Contract) DecodeOutput(endpoint, hexData string) (any, error) {
	return c.decoder.Decode(hexData, endpoint)
}
