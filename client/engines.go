package client

import (
	"context"
	"net/http"

	"github.com/DrewBradfordXYZ/watsonxdata-go/core"
)

// ExternalEngine is an engine registered with, but not provisioned by, the
// instance: Db2, Netezza or another external query engine.
type ExternalEngine struct {
	Actions           []string               `json:"actions,omitempty"`
	BuildVersion      *string                `json:"build_version,omitempty"`
	CreatedBy         *string                `json:"created_by,omitempty"`
	CreatedOn         *int64                 `json:"created_on,omitempty"`
	Description       *string                `json:"description,omitempty"`
	EngineDetails     *ExternalEngineDetails `json:"engine_details,omitempty"`
	EngineDisplayName *string                `json:"engine_display_name,omitempty"`
	EngineID          *string                `json:"engine_id,omitempty"`
	HostName          *string                `json:"host_name,omitempty"`
	Origin            *string                `json:"origin,omitempty"`
	Port              *int64                 `json:"port,omitempty"`
	Status            *string                `json:"status,omitempty"`
	Tags              []string               `json:"tags,omitempty"`
	Type              *string                `json:"type,omitempty"`
}

// ExternalEngineDetails holds the connection settings of an external engine.
type ExternalEngineDetails struct {
	ConnectionString *string `json:"connection_string,omitempty"`
	EngineType       *string `json:"engine_type,omitempty"`
	MetastoreHost    *string `json:"metastore_host,omitempty"`
}

// OtherEngineCollection lists external engines.
type OtherEngineCollection struct {
	OtherEngines []ExternalEngine `json:"other_engines"`
}

// Db2EngineCollection lists Db2 engines.
type Db2EngineCollection struct {
	Db2Engines []ExternalEngine `json:"db2_engines"`
}

// NetezzaEngineCollection lists Netezza engines.
type NetezzaEngineCollection struct {
	NetezzaEngines []ExternalEngine `json:"netezza_engines"`
}

// ListExternalEnginesOptions are the options for ListOtherEngines,
// ListDb2Engines and ListNetezzaEngines.
type ListExternalEnginesOptions struct {
	AuthInstanceID *string `json:"-"`
}

// ListOtherEngines lists external engines.
func (c *Client) ListOtherEngines(ctx context.Context, opts *ListExternalEnginesOptions) (*OtherEngineCollection, error) {
	if err := core.ValidateStruct(opts, "ListExternalEnginesOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodGet, "/other_engines").
		authInstance(opts.AuthInstanceID)
	return call[OtherEngineCollection](ctx, c, req)
}

// CreateOtherEngineOptions are the options for CreateOtherEngine.
type CreateOtherEngineOptions struct {
	EngineDetails     *ExternalEngineDetails `json:"engine_details" validate:"required"`
	EngineDisplayName string                 `json:"engine_display_name" validate:"required"`
	Description       *string                `json:"description,omitempty"`
	Origin            *string                `json:"origin,omitempty"`
	Tags              []string               `json:"tags,omitempty"`

	AuthInstanceID *string `json:"-"`
}

// CreateOtherEngine registers an external engine.
func (c *Client) CreateOtherEngine(ctx context.Context, opts *CreateOtherEngineOptions) (*ExternalEngine, error) {
	if err := core.ValidateStruct(opts, "CreateOtherEngineOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodPost, "/other_engines").
		jsonBody(opts).
		authInstance(opts.AuthInstanceID)
	return call[ExternalEngine](ctx, c, req)
}

// EngineIDOptions identify a single engine. They are used by calls that
// need nothing else.
type EngineIDOptions struct {
	EngineID string `json:"-" path:"engine_id" validate:"required"`

	AuthInstanceID *string `json:"-"`
}

// DeleteOtherEngine unregisters an external engine.
func (c *Client) DeleteOtherEngine(ctx context.Context, opts *EngineIDOptions) error {
	return c.deleteEngine(ctx, "/other_engines/{engine_id}", opts)
}

// ListDb2Engines lists Db2 engines.
func (c *Client) ListDb2Engines(ctx context.Context, opts *ListExternalEnginesOptions) (*Db2EngineCollection, error) {
	if err := core.ValidateStruct(opts, "ListExternalEnginesOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodGet, "/db2_engines").
		authInstance(opts.AuthInstanceID)
	return call[Db2EngineCollection](ctx, c, req)
}

// CreateExternalEngineOptions are the options for CreateDb2Engine and
// CreateNetezzaEngine.
type CreateExternalEngineOptions struct {
	Origin            string                 `json:"origin" validate:"required"`
	Description       *string                `json:"description,omitempty"`
	EngineDetails     *ExternalEngineDetails `json:"engine_details,omitempty"`
	EngineDisplayName *string                `json:"engine_display_name,omitempty"`
	Tags              []string               `json:"tags,omitempty"`

	AuthInstanceID *string `json:"-"`
}

// CreateDb2Engine registers a Db2 engine.
func (c *Client) CreateDb2Engine(ctx context.Context, opts *CreateExternalEngineOptions) (*ExternalEngine, error) {
	return c.createExternalEngine(ctx, "/db2_engines", opts)
}

// DeleteDb2Engine unregisters a Db2 engine.
func (c *Client) DeleteDb2Engine(ctx context.Context, opts *EngineIDOptions) error {
	return c.deleteEngine(ctx, "/db2_engines/{engine_id}", opts)
}

// UpdateExternalEngineOptions are the options for UpdateDb2Engine and
// UpdateNetezzaEngine. Nil fields are left unchanged.
type UpdateExternalEngineOptions struct {
	EngineID string `json:"-" path:"engine_id" validate:"required"`

	Description       *string  `json:"description,omitempty"`
	EngineDisplayName *string  `json:"engine_display_name,omitempty"`
	Tags              []string `json:"tags,omitempty"`

	AuthInstanceID *string `json:"-"`
}

// UpdateDb2Engine patches a Db2 engine.
func (c *Client) UpdateDb2Engine(ctx context.Context, opts *UpdateExternalEngineOptions) (*ExternalEngine, error) {
	return c.updateExternalEngine(ctx, "/db2_engines/{engine_id}", opts)
}

// ListNetezzaEngines lists Netezza engines.
func (c *Client) ListNetezzaEngines(ctx context.Context, opts *ListExternalEnginesOptions) (*NetezzaEngineCollection, error) {
	if err := core.ValidateStruct(opts, "ListExternalEnginesOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodGet, "/netezza_engines").
		authInstance(opts.AuthInstanceID)
	return call[NetezzaEngineCollection](ctx, c, req)
}

// CreateNetezzaEngine registers a Netezza engine.
func (c *Client) CreateNetezzaEngine(ctx context.Context, opts *CreateExternalEngineOptions) (*ExternalEngine, error) {
	return c.createExternalEngine(ctx, "/netezza_engines", opts)
}

// DeleteNetezzaEngine unregisters a Netezza engine.
func (c *Client) DeleteNetezzaEngine(ctx context.Context, opts *EngineIDOptions) error {
	return c.deleteEngine(ctx, "/netezza_engines/{engine_id}", opts)
}

// UpdateNetezzaEngine patches a Netezza engine.
func (c *Client) UpdateNetezzaEngine(ctx context.Context, opts *UpdateExternalEngineOptions) (*ExternalEngine, error) {
	return c.updateExternalEngine(ctx, "/netezza_engines/{engine_id}", opts)
}

func (c *Client) createExternalEngine(ctx context.Context, path string, opts *CreateExternalEngineOptions) (*ExternalEngine, error) {
	if err := core.ValidateStruct(opts, "CreateExternalEngineOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodPost, path).
		jsonBody(opts).
		authInstance(opts.AuthInstanceID)
	return call[ExternalEngine](ctx, c, req)
}

func (c *Client) updateExternalEngine(ctx context.Context, path string, opts *UpdateExternalEngineOptions) (*ExternalEngine, error) {
	if err := core.ValidateStruct(opts, "UpdateExternalEngineOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodPatch, path).
		pathParam("engine_id", opts.EngineID).
		mergePatchBody(opts).
		authInstance(opts.AuthInstanceID)
	return call[ExternalEngine](ctx, c, req)
}

// deleteEngine serves every engine family's DELETE /<family>/{engine_id}.
func (c *Client) deleteEngine(ctx context.Context, path string, opts *EngineIDOptions) error {
	if err := core.ValidateStruct(opts, "EngineIDOptions"); err != nil {
		return err
	}
	req := newRequest(http.MethodDelete, path).
		pathParam("engine_id", opts.EngineID).
		authInstance(opts.AuthInstanceID)
	return c.invoke(ctx, req, nil)
}

// engineAction serves the POST /<family>/{engine_id}/<action> calls (pause,
// resume, restart) that take no body.
func (c *Client) engineAction(ctx context.Context, path string, opts *EngineIDOptions) (*SuccessResponse, error) {
	if err := core.ValidateStruct(opts, "EngineIDOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodPost, path).
		pathParam("engine_id", opts.EngineID).
		authInstance(opts.AuthInstanceID)
	return call[SuccessResponse](ctx, c, req)
}

// ExecuteQueryCreatedBody is returned by CreateExecuteQuery.
type ExecuteQueryCreatedBody struct {
	Response *QueryResult `json:"response,omitempty"`
}

// QueryResult holds the rows of an executed statement, each row as strings.
type QueryResult struct {
	Result [][]string `json:"result"`
}

// CreateExecuteQueryOptions are the options for CreateExecuteQuery.
type CreateExecuteQueryOptions struct {
	EngineID    string  `json:"-" path:"engine_id" validate:"required"`
	SQLString   string  `json:"sql_string" validate:"required"`
	CatalogName *string `json:"catalog_name,omitempty"`
	SchemaName  *string `json:"schema_name,omitempty"`

	AuthInstanceID *string `json:"-"`
}

// CreateExecuteQuery runs a SQL statement on an engine and returns its rows.
func (c *Client) CreateExecuteQuery(ctx context.Context, opts *CreateExecuteQueryOptions) (*ExecuteQueryCreatedBody, error) {
	if err := core.ValidateStruct(opts, "CreateExecuteQueryOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodPost, "/queries/execute/{engine_id}").
		pathParam("engine_id", opts.EngineID).
		jsonBody(opts).
		authInstance(opts.AuthInstanceID)
	return call[ExecuteQueryCreatedBody](ctx, c, req)
}
