package client

import (
	"context"
	"net/http"

	"github.com/DrewBradfordXYZ/watsonxdata-go/core"
)

// Catalog is a metadata catalog.
type Catalog struct {
	Actions             []string `json:"actions,omitempty"`
	AssociatedBuckets   []string `json:"associated_buckets,omitempty"`
	AssociatedDatabases []string `json:"associated_databases,omitempty"`
	AssociatedEngines   []string `json:"associated_engines,omitempty"`
	CatalogName         *string  `json:"catalog_name,omitempty"`
	CatalogType         *string  `json:"catalog_type,omitempty"`
	CreatedBy           *string  `json:"created_by,omitempty"`
	CreatedOn           *string  `json:"created_on,omitempty"`
	Description         *string  `json:"description,omitempty"`
	Hostname            *string  `json:"hostname,omitempty"`
	LastSyncAt          *string  `json:"last_sync_at,omitempty"`
	ManagedBy           *string  `json:"managed_by,omitempty"`
	Metastore           *string  `json:"metastore,omitempty"`
	Port                *string  `json:"port,omitempty"`
	Status              *string  `json:"status,omitempty"`
	SyncDescription     *string  `json:"sync_description,omitempty"`
	SyncException       []string `json:"sync_exception,omitempty"`
	SyncStatus          *string  `json:"sync_status,omitempty"`
	Tags                []string `json:"tags,omitempty"`
	ThriftURI           *string  `json:"thrift_uri,omitempty"`
}

// CatalogCollection lists catalogs.
type CatalogCollection struct {
	Catalogs []Catalog `json:"catalogs"`
}

// SchemaCollection lists schema names.
type SchemaCollection struct {
	Schemas []string `json:"schemas"`
}

// Table is a table with its columns.
type Table struct {
	Columns   []Column `json:"columns,omitempty"`
	TableName *string  `json:"table_name,omitempty"`
}

// TableCollection lists tables.
type TableCollection struct {
	Tables []Table `json:"tables"`
}

// Column is a table column.
type Column struct {
	ColumnName *string `json:"column_name,omitempty"`
	Comment    *string `json:"comment,omitempty"`
	Extra      *string `json:"extra,omitempty"`
	Length     *string `json:"length,omitempty"`
	Precision  *string `json:"precision,omitempty"`
	Scale      *string `json:"scale,omitempty"`
	Type       *string `json:"type,omitempty"`
}

// ColumnCollection lists columns.
type ColumnCollection struct {
	Columns []Column `json:"columns"`
}

// TableSnapshot is one Iceberg snapshot of a table.
type TableSnapshot struct {
	CommittedAt *string           `json:"committed_at,omitempty"`
	Operation   *string           `json:"operation,omitempty"`
	SnapshotID  *string           `json:"snapshot_id,omitempty"`
	Summary     map[string]string `json:"summary,omitempty"`
}

// TableSnapshotCollection lists table snapshots.
type TableSnapshotCollection struct {
	Snapshots []TableSnapshot `json:"snapshots"`
}

// ListCatalogsOptions are the options for ListCatalogs.
type ListCatalogsOptions struct {
	AuthInstanceID *string `json:"-"`
}

// ListCatalogs lists catalogs.
func (c *Client) ListCatalogs(ctx context.Context, opts *ListCatalogsOptions) (*CatalogCollection, error) {
	if err := core.ValidateStruct(opts, "ListCatalogsOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodGet, "/catalogs").
		authInstance(opts.AuthInstanceID)
	return call[CatalogCollection](ctx, c, req)
}

// GetCatalogOptions are the options for GetCatalog.
type GetCatalogOptions struct {
	CatalogID string `json:"-" path:"catalog_id" validate:"required"`

	AuthInstanceID *string `json:"-"`
}

// GetCatalog returns one catalog.
func (c *Client) GetCatalog(ctx context.Context, opts *GetCatalogOptions) (*Catalog, error) {
	if err := core.ValidateStruct(opts, "GetCatalogOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodGet, "/catalogs/{catalog_id}").
		pathParam("catalog_id", opts.CatalogID).
		authInstance(opts.AuthInstanceID)
	return call[Catalog](ctx, c, req)
}

// ListSchemasOptions are the options for ListSchemas.
type ListSchemasOptions struct {
	CatalogID string `json:"-" path:"catalog_id" validate:"required"`
	EngineID  string `json:"-" url:"engine_id" validate:"required"`

	AuthInstanceID *string `json:"-"`
}

// ListSchemas lists the schemas of a catalog as seen by an engine.
func (c *Client) ListSchemas(ctx context.Context, opts *ListSchemasOptions) (*SchemaCollection, error) {
	if err := core.ValidateStruct(opts, "ListSchemasOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodGet, "/catalogs/{catalog_id}/schemas").
		pathParam("catalog_id", opts.CatalogID).
		queryParam("engine_id", opts.EngineID).
		authInstance(opts.AuthInstanceID)
	return call[SchemaCollection](ctx, c, req)
}

// CreateSchemaOptions are the options for CreateSchema.
type CreateSchemaOptions struct {
	CatalogID  string  `json:"-" path:"catalog_id" validate:"required"`
	EngineID   string  `json:"-" url:"engine_id" validate:"required"`
	CustomPath string  `json:"custom_path" validate:"required"`
	SchemaName string  `json:"schema_name" validate:"required"`
	BucketName *string `json:"bucket_name,omitempty"`

	AuthInstanceID *string `json:"-"`
}

// CreateSchema creates a schema in a catalog.
func (c *Client) CreateSchema(ctx context.Context, opts *CreateSchemaOptions) (*SuccessResponse, error) {
	if err := core.ValidateStruct(opts, "CreateSchemaOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodPost, "/catalogs/{catalog_id}/schemas").
		pathParam("catalog_id", opts.CatalogID).
		queryParam("engine_id", opts.EngineID).
		jsonBody(opts).
		authInstance(opts.AuthInstanceID)
	return call[SuccessResponse](ctx, c, req)
}

// DeleteSchemaOptions are the options for DeleteSchema.
type DeleteSchemaOptions struct {
	CatalogID string `json:"-" path:"catalog_id" validate:"required"`
	SchemaID  string `json:"-" path:"schema_id" validate:"required"`
	EngineID  string `json:"-" url:"engine_id" validate:"required"`

	AuthInstanceID *string `json:"-"`
}

// DeleteSchema drops a schema.
func (c *Client) DeleteSchema(ctx context.Context, opts *DeleteSchemaOptions) error {
	if err := core.ValidateStruct(opts, "DeleteSchemaOptions"); err != nil {
		return err
	}
	req := newRequest(http.MethodDelete, "/catalogs/{catalog_id}/schemas/{schema_id}").
		pathParam("catalog_id", opts.CatalogID).
		pathParam("schema_id", opts.SchemaID).
		queryParam("engine_id", opts.EngineID).
		authInstance(opts.AuthInstanceID)
	return c.invoke(ctx, req, nil)
}

// ListTablesOptions are the options for ListTables.
type ListTablesOptions struct {
	CatalogID string `json:"-" path:"catalog_id" validate:"required"`
	SchemaID  string `json:"-" path:"schema_id" validate:"required"`
	EngineID  string `json:"-" url:"engine_id" validate:"required"`

	AuthInstanceID *string `json:"-"`
}

// ListTables lists the tables of a schema.
func (c *Client) ListTables(ctx context.Context, opts *ListTablesOptions) (*TableCollection, error) {
	if err := core.ValidateStruct(opts, "ListTablesOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodGet, "/catalogs/{catalog_id}/schemas/{schema_id}/tables").
		pathParam("catalog_id", opts.CatalogID).
		pathParam("schema_id", opts.SchemaID).
		queryParam("engine_id", opts.EngineID).
		authInstance(opts.AuthInstanceID)
	return call[TableCollection](ctx, c, req)
}

// TableOptions identify a single table.
type TableOptions struct {
	CatalogID string `json:"-" path:"catalog_id" validate:"required"`
	SchemaID  string `json:"-" path:"schema_id" validate:"required"`
	TableID   string `json:"-" path:"table_id" validate:"required"`
	EngineID  string `json:"-" url:"engine_id" validate:"required"`

	AuthInstanceID *string `json:"-"`
}

func (o *TableOptions) request(method, suffix string) *request {
	return newRequest(method, "/catalogs/{catalog_id}/schemas/{schema_id}/tables/{table_id}"+suffix).
		pathParam("catalog_id", o.CatalogID).
		pathParam("schema_id", o.SchemaID).
		pathParam("table_id", o.TableID).
		queryParam("engine_id", o.EngineID).
		authInstance(o.AuthInstanceID)
}

// GetTable returns one table with its columns.
func (c *Client) GetTable(ctx context.Context, opts *TableOptions) (*Table, error) {
	if err := core.ValidateStruct(opts, "TableOptions"); err != nil {
		return nil, err
	}
	return call[Table](ctx, c, opts.request(http.MethodGet, ""))
}

// DeleteTableOptions are the options for DeleteTable.
type DeleteTableOptions struct {
	TableOptions
	// Type is the table type, e.g. "iceberg" or "hive".
	Type *string `json:"-" url:"type"`
}

// DeleteTable drops a table.
func (c *Client) DeleteTable(ctx context.Context, opts *DeleteTableOptions) error {
	if err := core.ValidateStruct(opts, "DeleteTableOptions"); err != nil {
		return err
	}
	req := opts.request(http.MethodDelete, "").
		queryParam("type", opts.Type)
	return c.invoke(ctx, req, nil)
}

// UpdateTableOptions are the options for UpdateTable.
type UpdateTableOptions struct {
	TableOptions
	TableName *string `json:"table_name,omitempty"`
}

// UpdateTable renames a table.
func (c *Client) UpdateTable(ctx context.Context, opts *UpdateTableOptions) (*Table, error) {
	if err := core.ValidateStruct(opts, "UpdateTableOptions"); err != nil {
		return nil, err
	}
	req := opts.request(http.MethodPatch, "").
		mergePatchBody(opts)
	return call[Table](ctx, c, req)
}

// ListColumns lists the columns of a table.
func (c *Client) ListColumns(ctx context.Context, opts *TableOptions) (*ColumnCollection, error) {
	if err := core.ValidateStruct(opts, "TableOptions"); err != nil {
		return nil, err
	}
	return call[ColumnCollection](ctx, c, opts.request(http.MethodGet, "/columns"))
}

// CreateColumnsOptions are the options for CreateColumns.
type CreateColumnsOptions struct {
	TableOptions
	Columns []Column `json:"columns,omitempty"`
}

// CreateColumns adds columns to a table.
func (c *Client) CreateColumns(ctx context.Context, opts *CreateColumnsOptions) (*ColumnCollection, error) {
	if err := core.ValidateStruct(opts, "CreateColumnsOptions"); err != nil {
		return nil, err
	}
	req := opts.request(http.MethodPost, "/columns").
		jsonBody(opts)
	return call[ColumnCollection](ctx, c, req)
}

// ColumnOptions identify a single column.
type ColumnOptions struct {
	TableOptions
	ColumnID string `json:"-" path:"column_id" validate:"required"`
}

// DeleteColumn drops a column.
func (c *Client) DeleteColumn(ctx context.Context, opts *ColumnOptions) error {
	if err := core.ValidateStruct(opts, "ColumnOptions"); err != nil {
		return err
	}
	req := opts.request(http.MethodDelete, "/columns/{column_id}").
		pathParam("column_id", opts.ColumnID)
	return c.invoke(ctx, req, nil)
}

// UpdateColumnOptions are the options for UpdateColumn.
type UpdateColumnOptions struct {
	ColumnOptions
	ColumnName *string `json:"column_name,omitempty"`
}

// UpdateColumn renames a column.
func (c *Client) UpdateColumn(ctx context.Context, opts *UpdateColumnOptions) (*Column, error) {
	if err := core.ValidateStruct(opts, "UpdateColumnOptions"); err != nil {
		return nil, err
	}
	req := opts.request(http.MethodPatch, "/columns/{column_id}").
		pathParam("column_id", opts.ColumnID).
		mergePatchBody(opts)
	return call[Column](ctx, c, req)
}

// ListTableSnapshots lists the snapshots of an Iceberg table.
func (c *Client) ListTableSnapshots(ctx context.Context, opts *TableOptions) (*TableSnapshotCollection, error) {
	if err := core.ValidateStruct(opts, "TableOptions"); err != nil {
		return nil, err
	}
	return call[TableSnapshotCollection](ctx, c, opts.request(http.MethodGet, "/snapshots"))
}

// RollbackTableOptions are the options for RollbackTable.
type RollbackTableOptions struct {
	TableOptions
	SnapshotID *string `json:"snapshot_id,omitempty"`
}

// RollbackTable rolls an Iceberg table back to a snapshot.
func (c *Client) RollbackTable(ctx context.Context, opts *RollbackTableOptions) (*SuccessResponse, error) {
	if err := core.ValidateStruct(opts, "RollbackTableOptions"); err != nil {
		return nil, err
	}
	req := opts.request(http.MethodPost, "/rollback").
		jsonBody(opts)
	return call[SuccessResponse](ctx, c, req)
}

// UpdateSyncCatalogOptions are the options for UpdateSyncCatalog.
type UpdateSyncCatalogOptions struct {
	CatalogID        string `json:"-" path:"catalog_id" validate:"required"`
	AutoAddNewTables *bool  `json:"auto_add_new_tables,omitempty"`
	SyncIcebergMD    *bool  `json:"sync_iceberg_md,omitempty"`

	AuthInstanceID *string `json:"-"`
}

// UpdateSyncCatalog synchronizes external Iceberg metadata into a catalog.
func (c *Client) UpdateSyncCatalog(ctx context.Context, opts *UpdateSyncCatalogOptions) (*SuccessResponse, error) {
	if err := core.ValidateStruct(opts, "UpdateSyncCatalogOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodPatch, "/catalogs/{catalog_id}/sync").
		pathParam("catalog_id", opts.CatalogID).
		mergePatchBody(opts).
		authInstance(opts.AuthInstanceID)
	return call[SuccessResponse](ctx, c, req)
}
