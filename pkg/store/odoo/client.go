// Package odoo is a thin XML-RPC client for the Odoo external API.
package odoo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kolo/xmlrpc"
	"github.com/rs/zerolog"

	"github.com/de-tools/fg-sync/pkg/models/domain"
)

var ErrAuthenticationFailed = errors.New("odoo: authentication failed, check credentials")

// Caller is the subset of *xmlrpc.Client used by Client.
type Caller interface {
	Call(serviceMethod string, args interface{}, reply interface{}) error
}

type Client struct {
	cfg    domain.SourceConfig
	common Caller
	object Caller
	uid    int64
}

func NewClient(cfg domain.SourceConfig) (*Client, error) {
	base := strings.TrimRight(cfg.URL, "/")

	common, err := xmlrpc.NewClient(base+"/xmlrpc/2/common", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create common endpoint client: %w", err)
	}
	object, err := xmlrpc.NewClient(base+"/xmlrpc/2/object", nil)
	if err != nil {
		_ = common.Close()
		return nil, fmt.Errorf("failed to create object endpoint client: %w", err)
	}

	return newClient(cfg, common, object), nil
}

func newClient(cfg domain.SourceConfig, common, object Caller) *Client {
	return &Client{cfg: cfg, common: common, object: object}
}

// Authenticate resolves the user id used by every later call. Odoo answers
// false for bad credentials, which is reported as ErrAuthenticationFailed.
func (c *Client) Authenticate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var reply interface{}
	args := []interface{}{c.cfg.Database, c.cfg.Username, c.cfg.Secret(), map[string]interface{}{}}
	if err := c.common.Call("authenticate", args, &reply); err != nil {
		return fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}

	uid, ok := domain.Bare(reply).Int()
	if !ok || uid == 0 {
		return ErrAuthenticationFailed
	}
	c.uid = uid

	zerolog.Ctx(ctx).Debug().
		Int64("uid", uid).
		Str("source", c.cfg.String()).
		Msg("authenticated against erp")
	return nil
}

// SearchRead runs search_read on model with the given domain filter and
// field projection.
func (c *Client) SearchRead(
	ctx context.Context,
	model string,
	filter []interface{},
	fields []string,
) ([]domain.OperationRecord, error) {
	return c.execute(ctx, model, "search_read", []interface{}{filter}, fields)
}

// Read fetches the given ids of model in a single call.
func (c *Client) Read(ctx context.Context, model string, ids []int64, fields []string) ([]domain.OperationRecord, error) {
	return c.execute(ctx, model, "read", []interface{}{ids}, fields)
}

func (c *Client) Close() error {
	var errs []error
	for _, caller := range []Caller{c.common, c.object} {
		if closer, ok := caller.(interface{ Close() error }); ok {
			errs = append(errs, closer.Close())
		}
	}
	return errors.Join(errs...)
}

func (c *Client) execute(
	ctx context.Context,
	model, method string,
	args []interface{},
	fields []string,
) ([]domain.OperationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.uid == 0 {
		return nil, fmt.Errorf("%s.%s called before authenticate", model, method)
	}

	var reply []interface{}
	call := []interface{}{
		c.cfg.Database,
		c.uid,
		c.cfg.Secret(),
		model,
		method,
		args,
		map[string]interface{}{"fields": fields},
	}
	if err := c.object.Call("execute_kw", call, &reply); err != nil {
		return nil, fmt.Errorf("%s.%s failed: %w", model, method, err)
	}

	records := make([]domain.OperationRecord, 0, len(reply))
	for i, item := range reply {
		raw, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s.%s: unexpected record %d of type %T", model, method, i, item)
		}
		records = append(records, domain.NewOperationRecord(raw))
	}

	zerolog.Ctx(ctx).Debug().
		Str("model", model).
		Str("method", method).
		Int("records", len(records)).
		Msg("erp call completed")
	return records, nil
}
