package client

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/go-querystring/query"
)

// Named handle for one resource type (eg "User", "Photo"). All methods forward to [Client.Call] with the resource path prefixed.
type Resource struct {
	client *Client
	path   string
}

func (c *Client) resource(path string) *Resource {
	return &Resource{client: c, path: path}
}

// Path prefix of this resource, relative to the versioned REST root.
func (r *Resource) Path() string {
	return r.path
}

// Returns a handle for a sub-path of this resource, eg User.Sub("recent").
func (r *Resource) Sub(suffix string) *Resource {
	return &Resource{
		client: r.client,
		path:   r.path + "/" + strings.TrimPrefix(suffix, "/"),
	}
}

// Common query parameters of resource listing and lookup endpoints.
type Query struct {
	ID       string   `url:"id,omitempty"`
	Fields   []string `url:"fields,comma,omitempty"`
	Count    int      `url:"count,omitempty"`
	Anchor   string   `url:"anchor,omitempty"`
	Author   string   `url:"author,omitempty"`
	Private  bool     `url:"private,omitempty"`
	Approved *bool    `url:"approved,omitempty"`

	// Additional parameters passed through as-is; these take priority over the fields above.
	Extra Params `url:"-"`
}

// Flattens the query to request parameters.
func (q *Query) Params() (Params, error) {
	if q == nil {
		return nil, nil
	}
	vals, err := query.Values(q)
	if err != nil {
		return nil, err
	}
	out := make(Params, len(vals)+len(q.Extra))
	for k, vs := range vals {
		if len(vs) == 1 {
			out[k] = vs[0]
		} else {
			out[k] = vs
		}
	}
	for k, v := range q.Extra {
		out[k] = v
	}
	return out, nil
}

func (r *Resource) query(ctx context.Context, method, path string, q *Query, opts []RequestOption) (*Result, error) {
	params, err := q.Params()
	if err != nil {
		return nil, err
	}
	return r.client.Call(ctx, method, path, params, opts...)
}

// Fetches the resource (usually a single item selected with [Query.ID]).
func (r *Resource) Get(ctx context.Context, q *Query, opts ...RequestOption) (*Result, error) {
	return r.query(ctx, http.MethodGet, r.path, q, opts)
}

// Lists the most recently created items.
func (r *Resource) Recent(ctx context.Context, q *Query, opts ...RequestOption) (*Result, error) {
	return r.query(ctx, http.MethodGet, r.path+"/recent", q, opts)
}

// Lists items in alphabetical order.
func (r *Resource) Alpha(ctx context.Context, q *Query, opts ...RequestOption) (*Result, error) {
	return r.query(ctx, http.MethodGet, r.path+"/alpha", q, opts)
}

// Counts items, optionally filtered with [Query.Extra] (eg "createdAfter").
func (r *Resource) Count(ctx context.Context, q *Query, opts ...RequestOption) (*Result, error) {
	return r.query(ctx, http.MethodGet, r.path+"/count", q, opts)
}

// Creates an item. Include a [*File] under the "file" key to upload media.
func (r *Resource) Create(ctx context.Context, body Params, opts ...RequestOption) (*Result, error) {
	return r.client.Post(ctx, r.path, body, opts...)
}

// Updates an item; body normally includes "id".
func (r *Resource) Update(ctx context.Context, body Params, opts ...RequestOption) (*Result, error) {
	return r.client.Put(ctx, r.path, body, opts...)
}

func (r *Resource) Delete(ctx context.Context, q *Query, opts ...RequestOption) (*Result, error) {
	return r.query(ctx, http.MethodDelete, r.path, q, opts)
}
