package bpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// Query is a builder for a single request to the REST data API, created with Client.From.
//
// A Query describes an operation on one table: a read (Select) or a mutation (Insert, Upsert,
// Update, Delete), narrowed by any number of filters and modifiers. Nothing is sent to the
// service until one of the Execute methods is called, and each Execute call performs exactly
// one request; a Query may be executed more than once.
//
// Filter values are serialized into the request query string, so the service applies them
// together with the project's row-level access policies. For example:
//
//	var orders []Order
//	err := client.From("orders").
//	    Select("id", "status", "total").
//	    Eq("status", "open").
//	    OrderBy("total", true).
//	    Limit(10).
//	    ExecuteInto(ctx, &orders)
type Query struct {
	client  *Client
	table   string
	method  string
	body    []byte
	bodyErr error
	params  url.Values
	headers http.Header
}

func newQuery(client *Client, table string) *Query {
	return &Query{
		client:  client,
		table:   table,
		method:  "GET",
		params:  make(url.Values),
		headers: make(http.Header),
	}
}

// Select makes this a read operation returning the specified columns. With no arguments, all
// columns are returned. This is the default operation for a Query.
func (q *Query) Select(columns ...string) *Query {
	q.method = "GET"
	if len(columns) > 0 {
		q.params.Set("select", strings.Join(columns, ","))
	}
	return q
}

// Insert makes this a mutation that inserts the given row or rows. The value may be a struct,
// a map, or a slice of either; it is serialized as JSON. The inserted rows are returned in the
// response.
func (q *Query) Insert(rows interface{}) *Query {
	q.method = "POST"
	q.body, q.bodyErr = json.Marshal(rows)
	q.headers.Set("Prefer", "return=representation")
	return q
}

// Upsert is like Insert, but rows that conflict with an existing primary key are merged into
// the existing row instead of failing.
func (q *Query) Upsert(rows interface{}) *Query {
	q.method = "POST"
	q.body, q.bodyErr = json.Marshal(rows)
	q.headers.Set("Prefer", "resolution=merge-duplicates,return=representation")
	return q
}

// Update makes this a mutation that sets the given column values on every row matching the
// query's filters. The updated rows are returned in the response.
func (q *Query) Update(values interface{}) *Query {
	q.method = "PATCH"
	q.body, q.bodyErr = json.Marshal(values)
	q.headers.Set("Prefer", "return=representation")
	return q
}

// Delete makes this a mutation that deletes every row matching the query's filters.
func (q *Query) Delete() *Query {
	q.method = "DELETE"
	return q
}

// Eq filters to rows whose column equals the given value.
func (q *Query) Eq(column, value string) *Query { return q.filter(column, "eq", value) }

// Neq filters to rows whose column does not equal the given value.
func (q *Query) Neq(column, value string) *Query { return q.filter(column, "neq", value) }

// Gt filters to rows whose column is greater than the given value.
func (q *Query) Gt(column, value string) *Query { return q.filter(column, "gt", value) }

// Gte filters to rows whose column is greater than or equal to the given value.
func (q *Query) Gte(column, value string) *Query { return q.filter(column, "gte", value) }

// Lt filters to rows whose column is less than the given value.
func (q *Query) Lt(column, value string) *Query { return q.filter(column, "lt", value) }

// Lte filters to rows whose column is less than or equal to the given value.
func (q *Query) Lte(column, value string) *Query { return q.filter(column, "lte", value) }

// Like filters to rows whose column matches the given pattern, where "%" matches any sequence
// of characters.
func (q *Query) Like(column, pattern string) *Query { return q.filter(column, "like", pattern) }

// Is filters on an exact identity such as null: for instance, Is("deleted_at", "null").
func (q *Query) Is(column, value string) *Query { return q.filter(column, "is", value) }

// In filters to rows whose column equals one of the given values.
func (q *Query) In(column string, values ...string) *Query {
	return q.filter(column, "in", "("+strings.Join(values, ",")+")")
}

func (q *Query) filter(column, operator, value string) *Query {
	q.params.Add(column, operator+"."+value)
	return q
}

// OrderBy sorts the result rows by a column. It may be called more than once to sort by
// multiple columns.
func (q *Query) OrderBy(column string, descending bool) *Query {
	direction := ".asc"
	if descending {
		direction = ".desc"
	}
	q.params.Add("order", column+direction)
	return q
}

// Limit restricts the number of rows returned.
func (q *Query) Limit(count int) *Query {
	q.params.Set("limit", strconv.Itoa(count))
	return q
}

// Offset skips the given number of rows before returning results.
func (q *Query) Offset(count int) *Query {
	q.params.Set("offset", strconv.Itoa(count))
	return q
}

// Single tells the service to return exactly one row as a JSON object rather than an array of
// rows. The request fails if the query matches zero rows or more than one row.
func (q *Query) Single() *Query {
	q.headers.Set("Accept", "application/vnd.pgrst.object+json")
	return q
}

// Execute performs the request and returns the raw JSON response body.
//
// If the service rejects the request, the returned error is an *interfaces.APIError carrying
// the status and the service's structured error fields.
func (q *Query) Execute(ctx context.Context) ([]byte, error) {
	if q.bodyErr != nil {
		return nil, fmt.Errorf("unable to serialize row data: %w", q.bodyErr)
	}
	return q.client.rest.request(ctx, q.method, q.table, q.params, q.headers, q.body)
}

// ExecuteInto performs the request and unmarshals the JSON response into dest, which should be
// a pointer to a slice of row structs (or a pointer to a single struct if Single was used).
func (q *Query) ExecuteInto(ctx context.Context, dest interface{}) error {
	data, err := q.Execute(ctx)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// ExecuteValue performs the request and returns the response as a dynamically-typed JSON value,
// for callers that do not have a struct type for the rows.
func (q *Query) ExecuteValue(ctx context.Context) (ldvalue.Value, error) {
	data, err := q.Execute(ctx)
	if err != nil {
		return ldvalue.Null(), err
	}
	return ldvalue.Parse(data), nil
}
