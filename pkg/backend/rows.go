package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Query builds a filtered request against a row collection. The wire
// format is the backend's REST row API: filters become query params
// like `col=eq.value`.
type Query struct {
	c       *Client
	table   string
	params  url.Values
	selects string
}

func (c *Client) From(table string) *Query {
	return &Query{c: c, table: table, params: url.Values{}, selects: "*"}
}

func (q *Query) Select(columns string) *Query {
	q.selects = columns
	return q
}

func (q *Query) Eq(column string, value any) *Query {
	q.params.Set(column, fmt.Sprintf("eq.%v", value))
	return q
}

func (q *Query) In(column string, values []int) *Query {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	q.params.Set(column, "in.("+strings.Join(parts, ",")+")")
	return q
}

func (q *Query) Order(column string, ascending bool) *Query {
	dir := "desc"
	if ascending {
		dir = "asc"
	}
	q.params.Set("order", column+"."+dir)
	return q
}

func (q *Query) Limit(n int) *Query {
	q.params.Set("limit", fmt.Sprint(n))
	return q
}

// Get runs the select and decodes the row array into dest.
func (q *Query) Get(ctx context.Context, dest any) error {
	q.params.Set("select", q.selects)
	resp, err := q.c.http.R().
		SetContext(ctx).
		SetAuthToken(q.c.accessToken()).
		SetQueryParamsFromValues(q.params).
		SetResult(dest).
		Get("/rest/v1/" + q.table)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return rowsError(q.table, resp.StatusCode())
	}
	return nil
}

// Delete removes every row matching the filters. Deleting nothing is
// not an error.
func (q *Query) Delete(ctx context.Context) error {
	resp, err := q.c.http.R().
		SetContext(ctx).
		SetAuthToken(q.c.accessToken()).
		SetQueryParamsFromValues(q.params).
		Delete("/rest/v1/" + q.table)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return rowsError(q.table, resp.StatusCode())
	}
	return nil
}

// Upsert inserts the payload, merging into the existing row on the
// declared conflict target so repeats are idempotent.
func (c *Client) Upsert(ctx context.Context, table string, payload any, onConflict string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.accessToken()).
		SetQueryParam("on_conflict", onConflict).
		SetHeader("Prefer", "resolution=merge-duplicates").
		SetBody(payload).
		Post("/rest/v1/" + table)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return rowsError(table, resp.StatusCode())
	}
	return nil
}

// Insert adds a row without conflict handling.
func (c *Client) Insert(ctx context.Context, table string, payload any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.accessToken()).
		SetBody(payload).
		Post("/rest/v1/" + table)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return rowsError(table, resp.StatusCode())
	}
	return nil
}

func rowsError(table string, status int) error {
	return fmt.Errorf("%s: %d %s", table, status, http.StatusText(status))
}
