package kvmabi

import "strings"

// Call is an encoded endpoint invocation. Call is immutable.
type Call struct {
	contract *Contract
	endpoint *Endpoint
	args     []string
}

// newCall encodes rawArgs against the endpoint inputs. A variadic or
// multi_arg input expands to one wire argument per item.
func newCall(contract *Contract, ep *Endpoint, rawArgs []any) (*Call, error) {
	if len(rawArgs) != len(ep.Inputs) {
		return nil, &ArgumentError{
			Endpoint: ep.Name,
			Index:    len(rawArgs),
			Err:      ErrArgumentCount,
		}
	}

	args := make([]string, 0, len(rawArgs))
	for i, arg := range rawArgs {
		in := ep.Inputs[i]
		t, err := ParseType(in.Type)
		if err != nil {
			return nil, &ArgumentError{Endpoint: ep.Name, Index: i, Err: err}
		}
		if in.MultiArg && t.Kind != KindVariadic {
			t = &Type{Kind: KindVariadic, Elems: []*Type{t}}
		}

		s, err := contract.encoder.encode(arg, t, false, 0)
		if err != nil {
			return nil, &ArgumentError{Endpoint: ep.Name, Index: i, Err: err}
		}

		switch t.Kind {
		case KindVariadic, KindMulti:
			if s != "" {
				args = append(args, strings.Split(s, ArgSeparator)...)
			}
		default:
			args = append(args, s)
		}
	}

	return &Call{
		contract: contract,
		endpoint: ep,
		args:     args,
	}, nil
}

// Contract returns the target contract for this call.
func (c *Call) Contract() *Contract {
	return c.contract
}

// Endpoint returns the endpoint name.
func (c *Call) Endpoint() string {
	return c.endpoint.Name
}

// Args returns the hex-encoded wire arguments.
func (c *Call) Args() []string {
	args := make([]string, len(c.args))
	copy(args, c.args)
	return args
}

// Data returns the call data: the endpoint name followed by each argument,
// separated by "@".
func (c *Call) Data() string {
	if len(c.args) == 0 {
		return c.endpoint.Name
	}
	return c.endpoint.Name + ArgSeparator + strings.Join(c.args, ArgSeparator)
}

// IsReadonly returns true if the endpoint does not modify contract state.
func (c *Call) IsReadonly() bool {
	return c.endpoint.Mutability == MutabilityReadonly
}

// HasReturnValue returns true if the endpoint declares outputs.
func (c *Call) HasReturnValue() bool {
	return len(c.endpoint.Outputs) > 0
}

// ReturnType returns the type of the first output, or "" if there is none.
func (c *Call) ReturnType() string {
	if len(c.endpoint.Outputs) == 0 {
		return ""
	}
	return c.endpoint.Outputs[0].Type
}

// DecodeResult decodes return data for this call's endpoint.
func (c *Call) DecodeResult(hexData string) (any, error) {
	return c.contract.DecodeOutput(c.endpoint.Name, hexData)
}
