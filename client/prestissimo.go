package client

import (
	"context"
	"net/http"

	"github.com/DrewBradfordXYZ/watsonxdata-go/core"
)

// PrestissimoEngineCollection lists Prestissimo engines.
type PrestissimoEngineCollection struct {
	PrestissimoEngines []PrestissimoEngine `json:"prestissimo_engines"`
}

// ListPrestissimoEngines lists Prestissimo engines.
func (c *Client) ListPrestissimoEngines(ctx context.Context, opts *ListEnginesOptions) (*PrestissimoEngineCollection, error) {
	if err := core.ValidateStruct(opts, "ListEnginesOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodGet, prestissimoEngines).
		authInstance(opts.AuthInstanceID)
	return call[PrestissimoEngineCollection](ctx, c, req)
}

// CreatePrestissimoEngine provisions a Prestissimo engine.
func (c *Client) CreatePrestissimoEngine(ctx context.Context, opts *CreatePrestoEngineOptions) (*PrestissimoEngine, error) {
	return c.createPrestoFamilyEngine(ctx, prestissimoEngines, opts)
}

// GetPrestissimoEngine returns one Prestissimo engine.
func (c *Client) GetPrestissimoEngine(ctx context.Context, opts *EngineIDOptions) (*PrestissimoEngine, error) {
	return c.getPrestoFamilyEngine(ctx, prestissimoEngines, opts)
}

// DeletePrestissimoEngine deletes a Prestissimo engine.
func (c *Client) DeletePrestissimoEngine(ctx context.Context, opts *EngineIDOptions) error {
	return c.deleteEngine(ctx, prestissimoEngines+"/{engine_id}", opts)
}

// UpdatePrestissimoEngine patches a Prestissimo engine.
func (c *Client) UpdatePrestissimoEngine(ctx context.Context, opts *UpdateEngineOptions) (*PrestissimoEngine, error) {
	return c.updatePrestoFamilyEngine(ctx, prestissimoEngines, opts)
}

// ListPrestissimoEngineCatalogs lists the catalogs attached to a Prestissimo engine.
func (c *Client) ListPrestissimoEngineCatalogs(ctx context.Context, opts *EngineIDOptions) (*CatalogCollection, error) {
	return c.listEngineCatalogs(ctx, prestissimoEngines, opts)
}

// CreatePrestissimoEngineCatalogs attaches catalogs to a Prestissimo engine.
func (c *Client) CreatePrestissimoEngineCatalogs(ctx context.Context, opts *CreateEngineCatalogsOptions) (*Catalog, error) {
	return c.createEngineCatalogs(ctx, prestissimoEngines, opts)
}

// DeletePrestissimoEngineCatalogs detaches catalogs from a Prestissimo engine.
func (c *Client) DeletePrestissimoEngineCatalogs(ctx context.Context, opts *DeleteEngineCatalogsOptions) error {
	return c.deleteEngineCatalogs(ctx, prestissimoEngines, opts)
}

// GetPrestissimoEngineCatalog returns one catalog attached to a Prestissimo engine.
func (c *Client) GetPrestissimoEngineCatalog(ctx context.Context, opts *GetEngineCatalogOptions) (*Catalog, error) {
	return c.getEngineCatalog(ctx, prestissimoEngines, opts)
}

// CreatePrestissimoEnginePause pauses a Prestissimo engine.
func (c *Client) CreatePrestissimoEnginePause(ctx context.Context, opts *EngineIDOptions) (*SuccessResponse, error) {
	return c.engineAction(ctx, prestissimoEngines+"/{engine_id}/pause", opts)
}

// CreatePrestissimoEngineResume resumes a paused Prestissimo engine.
func (c *Client) CreatePrestissimoEngineResume(ctx context.Context, opts *EngineIDOptions) (*SuccessResponse, error) {
	return c.engineAction(ctx, prestissimoEngines+"/{engine_id}/resume", opts)
}

// CreatePrestissimoEngineRestart restarts a Prestissimo engine.
func (c *Client) CreatePrestissimoEngineRestart(ctx context.Context, opts *EngineIDOptions) (*SuccessResponse, error) {
	return c.engineAction(ctx, prestissimoEngines+"/{engine_id}/restart", opts)
}

// CreatePrestissimoEngineScale resizes a Prestissimo engine.
func (c *Client) CreatePrestissimoEngineScale(ctx context.Context, opts *ScaleEngineOptions) (*SuccessResponse, error) {
	return c.scalePrestoFamilyEngine(ctx, prestissimoEngines, opts)
}

// RunPrestissimoExplainStatement returns the query plan of a statement.
func (c *Client) RunPrestissimoExplainStatement(ctx context.Context, opts *RunExplainStatementOptions) (*ExplainStatementResult, error) {
	return c.runExplain(ctx, prestissimoEngines, opts)
}

// RunPrestissimoExplainAnalyzeStatement runs a statement and returns its annotated plan.
func (c *Client) RunPrestissimoExplainAnalyzeStatement(ctx context.Context, opts *RunExplainAnalyzeStatementOptions) (*ExplainStatementResult, error) {
	return c.runExplainAnalyze(ctx, prestissimoEngines, opts)
}
