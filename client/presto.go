package client

import (
	"context"
	"net/http"

	"github.com/DrewBradfordXYZ/watsonxdata-go/core"
)

const (
	prestoEngines      = "/presto_engines"
	prestissimoEngines = "/prestissimo_engines"
)

// PrestoEngine is a Presto or Prestissimo engine provisioned by the instance.
type PrestoEngine struct {
	Actions            []string             `json:"actions,omitempty"`
	AssociatedCatalogs []string             `json:"associated_catalogs,omitempty"`
	BuildVersion       *string              `json:"build_version,omitempty"`
	Coordinator        *NodeDescription     `json:"coordinator,omitempty"`
	CreatedBy          *string              `json:"created_by,omitempty"`
	CreatedOn          *int64               `json:"created_on,omitempty"`
	Description        *string              `json:"description,omitempty"`
	EngineDetails      *PrestoEngineDetails `json:"engine_details,omitempty"`
	EngineDisplayName  *string              `json:"engine_display_name,omitempty"`
	EngineID           *string              `json:"engine_id,omitempty"`
	ExternalHostName   *string              `json:"external_host_name,omitempty"`
	GroupID            *string              `json:"group_id,omitempty"`
	HostName           *string              `json:"host_name,omitempty"`
	Origin             *string              `json:"origin,omitempty"`
	Port               *int64               `json:"port,omitempty"`
	Region             *string              `json:"region,omitempty"`
	SizeConfig         *string              `json:"size_config,omitempty"`
	Status             *string              `json:"status,omitempty"`
	StatusCode         *int64               `json:"status_code,omitempty"`
	Tags               []string             `json:"tags,omitempty"`
	Type               *string              `json:"type,omitempty"`
	Version            *string              `json:"version,omitempty"`
	Worker             *NodeDescription     `json:"worker,omitempty"`
}

// PrestissimoEngine has the same shape as PrestoEngine.
type PrestissimoEngine = PrestoEngine

// NodeDescription sizes the coordinator or worker nodes of an engine.
type NodeDescription struct {
	NodeType *string `json:"node_type,omitempty"`
	Quantity *int64  `json:"quantity,omitempty"`
}

// PrestoEngineDetails holds provisioning settings for a new engine.
type PrestoEngineDetails struct {
	APIKey           *string          `json:"api_key,omitempty"`
	ConnectionString *string          `json:"connection_string,omitempty"`
	Coordinator      *NodeDescription `json:"coordinator,omitempty"`
	InstanceID       *string          `json:"instance_id,omitempty"`
	ManagedBy        *string          `json:"managed_by,omitempty"`
	SizeConfig       *string          `json:"size_config,omitempty"`
	Worker           *NodeDescription `json:"worker,omitempty"`
}

// PrestoEngineCollection lists Presto engines.
type PrestoEngineCollection struct {
	PrestoEngines []PrestoEngine `json:"presto_engines"`
}

// ExplainStatementResult is the plan returned by an explain call.
type ExplainStatementResult struct {
	Result *string `json:"result,omitempty"`
}

// ResultPrestoEngineExplainStatement is returned by RunExplainStatement.
type ResultPrestoEngineExplainStatement = ExplainStatementResult

// ResultRunPrestoEngineExplainAnalyzeStatement is returned by RunExplainAnalyzeStatement.
type ResultRunPrestoEngineExplainAnalyzeStatement = ExplainStatementResult

// ListEnginesOptions are the options for the engine list calls.
type ListEnginesOptions struct {
	AuthInstanceID *string `json:"-"`
}

// CreatePrestoEngineOptions are the options for CreatePrestoEngine and
// CreatePrestissimoEngine.
type CreatePrestoEngineOptions struct {
	Origin             string               `json:"origin" validate:"required"`
	AssociatedCatalogs []string             `json:"associated_catalogs,omitempty"`
	Description        *string              `json:"description,omitempty"`
	EngineDetails      *PrestoEngineDetails `json:"engine_details,omitempty"`
	EngineDisplayName  *string              `json:"engine_display_name,omitempty"`
	Region             *string              `json:"region,omitempty"`
	Tags               []string             `json:"tags,omitempty"`
	Version            *string              `json:"version,omitempty"`

	AuthInstanceID *string `json:"-"`
}

// UpdateEngineOptions are the options for UpdateEngine and
// UpdatePrestissimoEngine. Nil fields are left unchanged.
type UpdateEngineOptions struct {
	EngineID string `json:"-" path:"engine_id" validate:"required"`

	Description            *string             `json:"description,omitempty"`
	EngineDisplayName      *string             `json:"engine_display_name,omitempty"`
	EngineProperties       map[string]any      `json:"engine_properties,omitempty"`
	EngineRestart          *string             `json:"engine_restart,omitempty"`
	RemoveEngineProperties map[string][]string `json:"remove_engine_properties,omitempty"`
	Tags                   []string            `json:"tags,omitempty"`

	AuthInstanceID *string `json:"-"`
}

// CreateEngineCatalogsOptions are the options for attaching catalogs to an engine.
type CreateEngineCatalogsOptions struct {
	EngineID string `json:"-" path:"engine_id" validate:"required"`
	// CatalogName is a comma separated list of catalog names.
	CatalogName string `json:"catalog_name" validate:"required"`

	AuthInstanceID *string `json:"-"`
}

// DeleteEngineCatalogsOptions are the options for detaching catalogs from an engine.
type DeleteEngineCatalogsOptions struct {
	EngineID string `json:"-" path:"engine_id" validate:"required"`
	// CatalogNames is a comma separated list of catalog names.
	CatalogNames string `json:"-" url:"catalog_names" validate:"required"`

	AuthInstanceID *string `json:"-"`
}

// GetEngineCatalogOptions are the options for reading one engine catalog.
type GetEngineCatalogOptions struct {
	EngineID  string `json:"-" path:"engine_id" validate:"required"`
	CatalogID string `json:"-" path:"catalog_id" validate:"required"`

	AuthInstanceID *string `json:"-"`
}

// ScaleEngineOptions are the options for CreateEngineScale and
// CreatePrestissimoEngineScale.
type ScaleEngineOptions struct {
	EngineID    string           `json:"-" path:"engine_id" validate:"required"`
	Coordinator *NodeDescription `json:"coordinator,omitempty"`
	Worker      *NodeDescription `json:"worker,omitempty"`

	AuthInstanceID *string `json:"-"`
}

// RunExplainStatementOptions are the options for RunExplainStatement.
type RunExplainStatementOptions struct {
	EngineID  string  `json:"-" path:"engine_id" validate:"required"`
	Statement string  `json:"statement" validate:"required"`
	Format    *string `json:"format,omitempty"`
	Type      *string `json:"type,omitempty"`

	AuthInstanceID *string `json:"-"`
}

// RunExplainAnalyzeStatementOptions are the options for RunExplainAnalyzeStatement.
type RunExplainAnalyzeStatementOptions struct {
	EngineID  string `json:"-" path:"engine_id" validate:"required"`
	Statement string `json:"statement" validate:"required"`
	Verbose   *bool  `json:"verbose,omitempty"`

	AuthInstanceID *string `json:"-"`
}

// ListPrestoEngines lists Presto engines.
func (c *Client) ListPrestoEngines(ctx context.Context, opts *ListEnginesOptions) (*PrestoEngineCollection, error) {
	if err := core.ValidateStruct(opts, "ListEnginesOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodGet, prestoEngines).
		authInstance(opts.AuthInstanceID)
	return call[PrestoEngineCollection](ctx, c, req)
}

// CreatePrestoEngine provisions a Presto engine.
func (c *Client) CreatePrestoEngine(ctx context.Context, opts *CreatePrestoEngineOptions) (*PrestoEngine, error) {
	return c.createPrestoFamilyEngine(ctx, prestoEngines, opts)
}

// GetPrestoEngine returns one Presto engine.
func (c *Client) GetPrestoEngine(ctx context.Context, opts *EngineIDOptions) (*PrestoEngine, error) {
	return c.getPrestoFamilyEngine(ctx, prestoEngines, opts)
}

// DeleteEngine deletes a Presto engine.
func (c *Client) DeleteEngine(ctx context.Context, opts *EngineIDOptions) error {
	return c.deleteEngine(ctx, prestoEngines+"/{engine_id}", opts)
}

// UpdateEngine patches a Presto engine.
func (c *Client) UpdateEngine(ctx context.Context, opts *UpdateEngineOptions) (*PrestoEngine, error) {
	return c.updatePrestoFamilyEngine(ctx, prestoEngines, opts)
}

// ListPrestoEngineCatalogs lists the catalogs attached to a Presto engine.
func (c *Client) ListPrestoEngineCatalogs(ctx context.Context, opts *EngineIDOptions) (*CatalogCollection, error) {
	return c.listEngineCatalogs(ctx, prestoEngines, opts)
}

// CreatePrestoEngineCatalogs attaches catalogs to a Presto engine.
func (c *Client) CreatePrestoEngineCatalogs(ctx context.Context, opts *CreateEngineCatalogsOptions) (*Catalog, error) {
	return c.createEngineCatalogs(ctx, prestoEngines, opts)
}

// DeletePrestoEngineCatalogs detaches catalogs from a Presto engine.
func (c *Client) DeletePrestoEngineCatalogs(ctx context.Context, opts *DeleteEngineCatalogsOptions) error {
	return c.deleteEngineCatalogs(ctx, prestoEngines, opts)
}

// GetPrestoEngineCatalog returns one catalog attached to a Presto engine.
func (c *Client) GetPrestoEngineCatalog(ctx context.Context, opts *GetEngineCatalogOptions) (*Catalog, error) {
	return c.getEngineCatalog(ctx, prestoEngines, opts)
}

// CreateEnginePause pauses a Presto engine.
func (c *Client) CreateEnginePause(ctx context.Context, opts *EngineIDOptions) (*SuccessResponse, error) {
	return c.engineAction(ctx, prestoEngines+"/{engine_id}/pause", opts)
}

// CreateEngineResume resumes a paused Presto engine.
func (c *Client) CreateEngineResume(ctx context.Context, opts *EngineIDOptions) (*SuccessResponse, error) {
	return c.engineAction(ctx, prestoEngines+"/{engine_id}/resume", opts)
}

// CreateEngineRestart restarts a Presto engine.
func (c *Client) CreateEngineRestart(ctx context.Context, opts *EngineIDOptions) (*SuccessResponse, error) {
	return c.engineAction(ctx, prestoEngines+"/{engine_id}/restart", opts)
}

// CreateEngineScale resizes a Presto engine.
func (c *Client) CreateEngineScale(ctx context.Context, opts *ScaleEngineOptions) (*SuccessResponse, error) {
	return c.scalePrestoFamilyEngine(ctx, prestoEngines, opts)
}

// RunExplainStatement returns the query plan of a statement.
func (c *Client) RunExplainStatement(ctx context.Context, opts *RunExplainStatementOptions) (*ResultPrestoEngineExplainStatement, error) {
	return c.runExplain(ctx, prestoEngines, opts)
}

// RunExplainAnalyzeStatement runs a statement and returns its annotated plan.
func (c *Client) RunExplainAnalyzeStatement(ctx context.Context, opts *RunExplainAnalyzeStatementOptions) (*ResultRunPrestoEngineExplainAnalyzeStatement, error) {
	return c.runExplainAnalyze(ctx, prestoEngines, opts)
}

func (c *Client) createPrestoFamilyEngine(ctx context.Context, family string, opts *CreatePrestoEngineOptions) (*PrestoEngine, error) {
	if err := core.ValidateStruct(opts, "CreatePrestoEngineOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodPost, family).
		jsonBody(opts).
		authInstance(opts.AuthInstanceID)
	return call[PrestoEngine](ctx, c, req)
}

func (c *Client) getPrestoFamilyEngine(ctx context.Context, family string, opts *EngineIDOptions) (*PrestoEngine, error) {
	if err := core.ValidateStruct(opts, "EngineIDOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodGet, family+"/{engine_id}").
		pathParam("engine_id", opts.EngineID).
		authInstance(opts.AuthInstanceID)
	return call[PrestoEngine](ctx, c, req)
}

func (c *Client) updatePrestoFamilyEngine(ctx context.Context, family string, opts *UpdateEngineOptions) (*PrestoEngine, error) {
	if err := core.ValidateStruct(opts, "UpdateEngineOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodPatch, family+"/{engine_id}").
		pathParam("engine_id", opts.EngineID).
		mergePatchBody(opts).
		authInstance(opts.AuthInstanceID)
	return call[PrestoEngine](ctx, c, req)
}

func (c *Client) scalePrestoFamilyEngine(ctx context.Context, family string, opts *ScaleEngineOptions) (*SuccessResponse, error) {
	if err := core.ValidateStruct(opts, "ScaleEngineOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodPost, family+"/{engine_id}/scale").
		pathParam("engine_id", opts.EngineID).
		jsonBody(opts).
		authInstance(opts.AuthInstanceID)
	return call[SuccessResponse](ctx, c, req)
}

func (c *Client) listEngineCatalogs(ctx context.Context, family string, opts *EngineIDOptions) (*CatalogCollection, error) {
	if err := core.ValidateStruct(opts, "EngineIDOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodGet, family+"/{engine_id}/catalogs").
		pathParam("engine_id", opts.EngineID).
		authInstance(opts.AuthInstanceID)
	return call[CatalogCollection](ctx, c, req)
}

func (c *Client) createEngineCatalogs(ctx context.Context, family string, opts *CreateEngineCatalogsOptions) (*Catalog, error) {
	if err := core.ValidateStruct(opts, "CreateEngineCatalogsOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodPost, family+"/{engine_id}/catalogs").
		pathParam("engine_id", opts.EngineID).
		jsonBody(opts).
		authInstance(opts.AuthInstanceID)
	return call[Catalog](ctx, c, req)
}

func (c *Client) deleteEngineCatalogs(ctx context.Context, family string, opts *DeleteEngineCatalogsOptions) error {
	if err := core.ValidateStruct(opts, "DeleteEngineCatalogsOptions"); err != nil {
		return err
	}
	req := newRequest(http.MethodDelete, family+"/{engine_id}/catalogs").
		pathParam("engine_id", opts.EngineID).
		queryParam("catalog_names", opts.CatalogNames).
		authInstance(opts.AuthInstanceID)
	return c.invoke(ctx, req, nil)
}

func (c *Client) getEngineCatalog(ctx context.Context, family string, opts *GetEngineCatalogOptions) (*Catalog, error) {
	if err := core.ValidateStruct(opts, "GetEngineCatalogOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodGet, family+"/{engine_id}/catalogs/{catalog_id}").
		pathParam("engine_id", opts.EngineID).
		pathParam("catalog_id", opts.CatalogID).
		authInstance(opts.AuthInstanceID)
	return call[Catalog](ctx, c, req)
}

func (c *Client) runExplain(ctx context.Context, family string, opts *RunExplainStatementOptions) (*ExplainStatementResult, error) {
	if err := core.ValidateStruct(opts, "RunExplainStatementOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodPost, family+"/{engine_id}/query_explain").
		pathParam("engine_id", opts.EngineID).
		jsonBody(opts).
		authInstance(opts.AuthInstanceID)
	return call[ExplainStatementResult](ctx, c, req)
}

func (c *Client) runExplainAnalyze(ctx context.Context, family string, opts *RunExplainAnalyzeStatementOptions) (*ExplainStatementResult, error) {
	if err := core.ValidateStruct(opts, "RunExplainAnalyzeStatementOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodPost, family+"/{engine_id}/query_explain_analyze").
		pathParam("engine_id", opts.EngineID).
		jsonBody(opts).
		authInstance(opts.AuthInstanceID)
	return call[ExplainStatementResult](ctx, c, req)
}
