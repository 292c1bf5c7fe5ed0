package client

import (
	"context"
	"net/http"

	"github.com/DrewBradfordXYZ/watsonxdata-go/core"
)

const sparkEngines = "/spark_engines"

// SparkEngine is a native or external Spark engine.
type SparkEngine struct {
	Actions           []string            `json:"actions,omitempty"`
	BuildVersion      *string             `json:"build_version,omitempty"`
	CreatedBy         *string             `json:"created_by,omitempty"`
	CreatedOn         *int64              `json:"created_on,omitempty"`
	Description       *string             `json:"description,omitempty"`
	EngineDetails     *SparkEngineDetails `json:"engine_details,omitempty"`
	EngineDisplayName *string             `json:"engine_display_name,omitempty"`
	EngineID          *string             `json:"engine_id,omitempty"`
	Origin            *string             `json:"origin,omitempty"`
	Status            *string             `json:"status,omitempty"`
	Tags              []string            `json:"tags,omitempty"`
	Type              *string             `json:"type,omitempty"`
}

// SparkEngineDetails holds Spark engine settings. The credential fields are
// only sent when creating an engine.
type SparkEngineDetails struct {
	APIKey               *string           `json:"api_key,omitempty"`
	ConnectionString     *string           `json:"connection_string,omitempty"`
	DefaultConfig        map[string]string `json:"default_config,omitempty"`
	DefaultVersion       *string           `json:"default_version,omitempty"`
	EngineHomeBucketName *string           `json:"engine_home_bucket_name,omitempty"`
	EngineHomePath       *string           `json:"engine_home_path,omitempty"`
	EngineHomeVolumeName *string           `json:"engine_home_volume_name,omitempty"`
	InstanceID           *string           `json:"instance_id,omitempty"`
	ManagedBy            *string           `json:"managed_by,omitempty"`
	ScaleConfig          *SparkScaleConfig `json:"scale_config,omitempty"`
}

// SparkScaleConfig sizes a Spark engine.
type SparkScaleConfig struct {
	AutoScaleEnabled     *bool   `json:"auto_scale_enabled,omitempty"`
	CurrentNumberOfNodes *int64  `json:"current_number_of_nodes,omitempty"`
	MaximumNumberOfNodes *int64  `json:"maximum_number_of_nodes,omitempty"`
	MinimumNumberOfNodes *int64  `json:"minimum_number_of_nodes,omitempty"`
	NodeType             *string `json:"node_type,omitempty"`
	NumberOfNodes        *int64  `json:"number_of_nodes,omitempty"`
}

// SparkEngineCollection lists Spark engines.
type SparkEngineCollection struct {
	SparkEngines []SparkEngine `json:"spark_engines"`
}

// SparkApplicationDetails describes a submitted Spark application.
type SparkApplicationDetails struct {
	Application *string           `json:"application,omitempty"`
	Arguments   []string          `json:"arguments,omitempty"`
	Class       *string           `json:"class,omitempty"`
	Conf        map[string]string `json:"conf,omitempty"`
	Env         map[string]string `json:"env,omitempty"`
	Name        *string           `json:"name,omitempty"`
}

// SparkEngineApplicationStatus is the state of a Spark application.
type SparkEngineApplicationStatus struct {
	ApplicationDetails   *SparkApplicationDetails `json:"application_details,omitempty"`
	ApplicationID        *string                  `json:"application_id,omitempty"`
	AutoTerminationTime  *string                  `json:"auto_termination_time,omitempty"`
	CreationTime         *string                  `json:"creation_time,omitempty"`
	DeployMode           *string                  `json:"deploy_mode,omitempty"`
	EndTime              *string                  `json:"end_time,omitempty"`
	FailedTime           *string                  `json:"failed_time,omitempty"`
	FinishTime           *string                  `json:"finish_time,omitempty"`
	ID                   *string                  `json:"id,omitempty"`
	ReturnCode           *string                  `json:"return_code,omitempty"`
	SparkApplicationID   *string                  `json:"spark_application_id,omitempty"`
	SparkApplicationName *string                  `json:"spark_application_name,omitempty"`
	StartTime            *string                  `json:"start_time,omitempty"`
	State                *string                  `json:"state,omitempty"`
	SubmissionTime       *string                  `json:"submission_time,omitempty"`
	TemplateID           *string                  `json:"template_id,omitempty"`
}

// SparkEngineApplicationStatusCollection lists Spark applications.
type SparkEngineApplicationStatusCollection struct {
	Applications []SparkEngineApplicationStatus `json:"applications"`
}

// SparkHistoryServer is the state of a Spark engine's history server.
type SparkHistoryServer struct {
	AutoTerminationTime *string `json:"auto_termination_time,omitempty"`
	Cores               *string `json:"cores,omitempty"`
	Memory              *string `json:"memory,omitempty"`
	StartTime           *string `json:"start_time,omitempty"`
	State               *string `json:"state,omitempty"`
}

// DisplayNameInfo is a selectable value with a display label.
type DisplayNameInfo struct {
	DisplayName *string `json:"display_name,omitempty"`
	Value       *string `json:"value,omitempty"`
}

// SparkVersionCollection lists the Spark versions engines may run.
type SparkVersionCollection struct {
	Response      *SuccessResponse  `json:"response,omitempty"`
	SparkVersions []DisplayNameInfo `json:"spark_versions"`
}

// ListSparkEngines lists Spark engines.
func (c *Client) ListSparkEngines(ctx context.Context, opts *ListEnginesOptions) (*SparkEngineCollection, error) {
	if err := core.ValidateStruct(opts, "ListEnginesOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodGet, sparkEngines).
		authInstance(opts.AuthInstanceID)
	return call[SparkEngineCollection](ctx, c, req)
}

// CreateSparkEngineOptions are the options for CreateSparkEngine.
type CreateSparkEngineOptions struct {
	Origin             string              `json:"origin" validate:"required"`
	AssociatedCatalogs []string            `json:"associated_catalogs,omitempty"`
	Description        *string             `json:"description,omitempty"`
	EngineDetails      *SparkEngineDetails `json:"engine_details,omitempty"`
	EngineDisplayName  *string             `json:"engine_display_name,omitempty"`
	Status             *string             `json:"status,omitempty"`
	Tags               []string            `json:"tags,omitempty"`

	AuthInstanceID *string `json:"-"`
}

// CreateSparkEngine provisions or registers a Spark engine.
func (c *Client) CreateSparkEngine(ctx context.Context, opts *CreateSparkEngineOptions) (*SparkEngine, error) {
	if err := core.ValidateStruct(opts, "CreateSparkEngineOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodPost, sparkEngines).
		jsonBody(opts).
		authInstance(opts.AuthInstanceID)
	return call[SparkEngine](ctx, c, req)
}

// GetSparkEngine returns one Spark engine.
func (c *Client) GetSparkEngine(ctx context.Context, opts *EngineIDOptions) (*SparkEngine, error) {
	if err := core.ValidateStruct(opts, "EngineIDOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodGet, sparkEngines+"/{engine_id}").
		pathParam("engine_id", opts.EngineID).
		authInstance(opts.AuthInstanceID)
	return call[SparkEngine](ctx, c, req)
}

// DeleteSparkEngine deletes a Spark engine.
func (c *Client) DeleteSparkEngine(ctx context.Context, opts *EngineIDOptions) error {
	return c.deleteEngine(ctx, sparkEngines+"/{engine_id}", opts)
}

// UpdateSparkEngineOptions are the options for UpdateSparkEngine. Nil fields
// are left unchanged.
type UpdateSparkEngineOptions struct {
	EngineID string `json:"-" path:"engine_id" validate:"required"`

	Description       *string             `json:"description,omitempty"`
	EngineDetails     *SparkEngineDetails `json:"engine_details,omitempty"`
	EngineDisplayName *string             `json:"engine_display_name,omitempty"`
	Tags              []string            `json:"tags,omitempty"`

	AuthInstanceID *string `json:"-"`
}

// UpdateSparkEngine patches a Spark engine.
func (c *Client) UpdateSparkEngine(ctx context.Context, opts *UpdateSparkEngineOptions) (*SparkEngine, error) {
	if err := core.ValidateStruct(opts, "UpdateSparkEngineOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodPatch, sparkEngines+"/{engine_id}").
		pathParam("engine_id", opts.EngineID).
		mergePatchBody(opts).
		authInstance(opts.AuthInstanceID)
	return call[SparkEngine](ctx, c, req)
}

// ListSparkEngineApplications lists applications submitted to a Spark engine.
func (c *Client) ListSparkEngineApplications(ctx context.Context, opts *EngineIDOptions) (*SparkEngineApplicationStatusCollection, error) {
	if err := core.ValidateStruct(opts, "EngineIDOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodGet, sparkEngines+"/{engine_id}/applications").
		pathParam("engine_id", opts.EngineID).
		authInstance(opts.AuthInstanceID)
	return call[SparkEngineApplicationStatusCollection](ctx, c, req)
}

// CreateSparkEngineApplicationOptions are the options for CreateSparkEngineApplication.
type CreateSparkEngineApplicationOptions struct {
	EngineID           string                   `json:"-" path:"engine_id" validate:"required"`
	ApplicationDetails *SparkApplicationDetails `json:"application_details" validate:"required"`
	JobEndpoint        *string                  `json:"job_endpoint,omitempty"`
	ServiceInstanceID  *string                  `json:"service_instance_id,omitempty"`
	Type               *string                  `json:"type,omitempty"`

	AuthInstanceID *string `json:"-"`
}

// CreateSparkEngineApplication submits an application to a Spark engine.
func (c *Client) CreateSparkEngineApplication(ctx context.Context, opts *CreateSparkEngineApplicationOptions) (*SparkEngineApplicationStatus, error) {
	if err := core.ValidateStruct(opts, "CreateSparkEngineApplicationOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodPost, sparkEngines+"/{engine_id}/applications").
		pathParam("engine_id", opts.EngineID).
		jsonBody(opts).
		authInstance(opts.AuthInstanceID)
	return call[SparkEngineApplicationStatus](ctx, c, req)
}

// DeleteSparkEngineApplicationsOptions are the options for DeleteSparkEngineApplications.
type DeleteSparkEngineApplicationsOptions struct {
	EngineID      string   `json:"-" path:"engine_id" validate:"required"`
	ApplicationID string   `json:"-" url:"application_id" validate:"required"`
	State         []string `json:"-" url:"state"`

	AuthInstanceID *string `json:"-"`
}

// DeleteSparkEngineApplications stops a Spark application.
func (c *Client) DeleteSparkEngineApplications(ctx context.Context, opts *DeleteSparkEngineApplicationsOptions) error {
	if err := core.ValidateStruct(opts, "DeleteSparkEngineApplicationsOptions"); err != nil {
		return err
	}
	req := newRequest(http.MethodDelete, sparkEngines+"/{engine_id}/applications").
		pathParam("engine_id", opts.EngineID).
		queryParam("application_id", opts.ApplicationID).
		queryParam("state", opts.State).
		authInstance(opts.AuthInstanceID)
	return c.invoke(ctx, req, nil)
}

// GetSparkEngineApplicationStatusOptions are the options for GetSparkEngineApplicationStatus.
type GetSparkEngineApplicationStatusOptions struct {
	EngineID      string `json:"-" path:"engine_id" validate:"required"`
	ApplicationID string `json:"-" path:"application_id" validate:"required"`

	AuthInstanceID *string `json:"-"`
}

// GetSparkEngineApplicationStatus returns the state of one Spark application.
func (c *Client) GetSparkEngineApplicationStatus(ctx context.Context, opts *GetSparkEngineApplicationStatusOptions) (*SparkEngineApplicationStatus, error) {
	if err := core.ValidateStruct(opts, "GetSparkEngineApplicationStatusOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodGet, sparkEngines+"/{engine_id}/applications/{application_id}").
		pathParam("engine_id", opts.EngineID).
		pathParam("application_id", opts.ApplicationID).
		authInstance(opts.AuthInstanceID)
	return call[SparkEngineApplicationStatus](ctx, c, req)
}

// ListSparkEngineCatalogs lists the catalogs attached to a Spark engine.
func (c *Client) ListSparkEngineCatalogs(ctx context.Context, opts *EngineIDOptions) (*CatalogCollection, error) {
	return c.listEngineCatalogs(ctx, sparkEngines, opts)
}

// CreateSparkEngineCatalogs attaches catalogs to a Spark engine.
func (c *Client) CreateSparkEngineCatalogs(ctx context.Context, opts *CreateEngineCatalogsOptions) (*Catalog, error) {
	return c.createEngineCatalogs(ctx, sparkEngines, opts)
}

// DeleteSparkEngineCatalogs detaches catalogs from a Spark engine.
func (c *Client) DeleteSparkEngineCatalogs(ctx context.Context, opts *DeleteEngineCatalogsOptions) error {
	return c.deleteEngineCatalogs(ctx, sparkEngines, opts)
}

// GetSparkEngineCatalog returns one catalog attached to a Spark engine.
func (c *Client) GetSparkEngineCatalog(ctx context.Context, opts *GetEngineCatalogOptions) (*Catalog, error) {
	return c.getEngineCatalog(ctx, sparkEngines, opts)
}

// GetSparkEngineHistoryServer returns the state of the history server.
func (c *Client) GetSparkEngineHistoryServer(ctx context.Context, opts *EngineIDOptions) (*SparkHistoryServer, error) {
	if err := core.ValidateStruct(opts, "EngineIDOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodGet, sparkEngines+"/{engine_id}/history_server").
		pathParam("engine_id", opts.EngineID).
		authInstance(opts.AuthInstanceID)
	return call[SparkHistoryServer](ctx, c, req)
}

// StartSparkEngineHistoryServerOptions are the options for StartSparkEngineHistoryServer.
type StartSparkEngineHistoryServerOptions struct {
	EngineID string  `json:"-" path:"engine_id" validate:"required"`
	Cores    *string `json:"cores,omitempty"`
	Memory   *string `json:"memory,omitempty"`

	AuthInstanceID *string `json:"-"`
}

// StartSparkEngineHistoryServer starts the history server.
func (c *Client) StartSparkEngineHistoryServer(ctx context.Context, opts *StartSparkEngineHistoryServerOptions) (*SparkHistoryServer, error) {
	if err := core.ValidateStruct(opts, "StartSparkEngineHistoryServerOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodPost, sparkEngines+"/{engine_id}/history_server").
		pathParam("engine_id", opts.EngineID).
		jsonBody(opts).
		authInstance(opts.AuthInstanceID)
	return call[SparkHistoryServer](ctx, c, req)
}

// DeleteSparkEngineHistoryServer stops the history server.
func (c *Client) DeleteSparkEngineHistoryServer(ctx context.Context, opts *EngineIDOptions) error {
	return c.deleteEngine(ctx, sparkEngines+"/{engine_id}/history_server", opts)
}

// CreateSparkEnginePause pauses a Spark engine.
func (c *Client) CreateSparkEnginePause(ctx context.Context, opts *EngineIDOptions) (*SuccessResponse, error) {
	return c.engineAction(ctx, sparkEngines+"/{engine_id}/pause", opts)
}

// CreateSparkEngineResume resumes a paused Spark engine.
func (c *Client) CreateSparkEngineResume(ctx context.Context, opts *EngineIDOptions) (*SuccessResponse, error) {
	return c.engineAction(ctx, sparkEngines+"/{engine_id}/resume", opts)
}

// CreateSparkEngineScaleOptions are the options for CreateSparkEngineScale.
type CreateSparkEngineScaleOptions struct {
	EngineID      string `json:"-" path:"engine_id" validate:"required"`
	NumberOfNodes *int64 `json:"number_of_nodes,omitempty"`

	AuthInstanceID *string `json:"-"`
}

// CreateSparkEngineScale resizes a Spark engine.
func (c *Client) CreateSparkEngineScale(ctx context.Context, opts *CreateSparkEngineScaleOptions) (*SuccessResponse, error) {
	if err := core.ValidateStruct(opts, "CreateSparkEngineScaleOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodPost, sparkEngines+"/{engine_id}/scale").
		pathParam("engine_id", opts.EngineID).
		jsonBody(opts).
		authInstance(opts.AuthInstanceID)
	return call[SuccessResponse](ctx, c, req)
}

// ListSparkVersionsOptions are the options for ListSparkVersions.
type ListSparkVersionsOptions struct {
	AuthInstanceID *string `json:"-"`
}

// ListSparkVersions lists the Spark versions engines may run.
func (c *Client) ListSparkVersions(ctx context.Context, opts *ListSparkVersionsOptions) (*SparkVersionCollection, error) {
	if err := core.ValidateStruct(opts, "ListSparkVersionsOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodGet, "/spark_versions").
		authInstance(opts.AuthInstanceID)
	return call[SparkVersionCollection](ctx, c, req)
}
