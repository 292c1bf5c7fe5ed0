package client

import (
	"context"
	"net/http"

	"github.com/DrewBradfordXYZ/watsonxdata-go/core"
)

// DatabaseRegistration is an external database registered with the instance.
type DatabaseRegistration struct {
	Actions             []string           `json:"actions,omitempty"`
	AssociatedCatalog   *DatabaseCatalog   `json:"associated_catalog,omitempty"`
	CreatedBy           *string            `json:"created_by,omitempty"`
	CreatedOn           *string            `json:"created_on,omitempty"`
	DatabaseDetails     *DatabaseDetails   `json:"database_details,omitempty"`
	DatabaseDisplayName *string            `json:"database_display_name,omitempty"`
	DatabaseID          *string            `json:"database_id,omitempty"`
	DatabaseProperties  []DatabaseProperty `json:"database_properties,omitempty"`
	DatabaseType        *string            `json:"database_type,omitempty"`
	Description         *string            `json:"description,omitempty"`
	Tags                []string           `json:"tags,omitempty"`
}

// DatabaseCatalog is the catalog a database is exposed through.
type DatabaseCatalog struct {
	CatalogName string   `json:"catalog_name" validate:"required"`
	CatalogTags []string `json:"catalog_tags,omitempty"`
	CatalogType string   `json:"catalog_type" validate:"required"`
}

// DatabaseDetails holds database connection settings.
type DatabaseDetails struct {
	Certificate               *string `json:"certificate,omitempty"`
	CertificateExtension      *string `json:"certificate_extension,omitempty"`
	DatabaseName              *string `json:"database_name,omitempty"`
	Hostname                  *string `json:"hostname,omitempty"`
	HostnameInCertificate     *string `json:"hostname_in_certificate,omitempty"`
	Hosts                     *string `json:"hosts,omitempty"`
	Password                  *string `json:"password,omitempty"`
	Port                      *int64  `json:"port,omitempty"`
	SASL                      *bool   `json:"sasl,omitempty"`
	SSL                       *bool   `json:"ssl,omitempty"`
	Tables                    *string `json:"tables,omitempty"`
	Username                  *string `json:"username,omitempty"`
	ValidateServerCertificate *bool   `json:"validate_server_certificate,omitempty"`
}

// DatabaseProperty is a free-form connector property.
type DatabaseProperty struct {
	Encrypt bool   `json:"encrypt"`
	Key     string `json:"key"`
	Value   string `json:"value"`
}

// DatabaseRegistrationCollection lists registered databases.
type DatabaseRegistrationCollection struct {
	DatabaseRegistrations []DatabaseRegistration `json:"database_registrations"`
}

// TestDatabaseConnectionResponse reports the outcome of a connection test.
type TestDatabaseConnectionResponse struct {
	ConnectionResponse *ConnectionResponse `json:"connection_response,omitempty"`
}

// ConnectionResponse is the status part of a connection test.
type ConnectionResponse struct {
	State        *bool   `json:"state,omitempty"`
	StateMessage *string `json:"state_message,omitempty"`
}

// ListDatabaseRegistrationsOptions are the options for ListDatabaseRegistrations.
type ListDatabaseRegistrationsOptions struct {
	AuthInstanceID *string `json:"-"`
}

// ListDatabaseRegistrations lists registered databases.
func (c *Client) ListDatabaseRegistrations(ctx context.Context, opts *ListDatabaseRegistrationsOptions) (*DatabaseRegistrationCollection, error) {
	if err := core.ValidateStruct(opts, "ListDatabaseRegistrationsOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodGet, "/database_registrations").
		authInstance(opts.AuthInstanceID)
	return call[DatabaseRegistrationCollection](ctx, c, req)
}

// CreateDatabaseRegistrationOptions are the options for CreateDatabaseRegistration.
type CreateDatabaseRegistrationOptions struct {
	DatabaseDisplayName string             `json:"database_display_name" validate:"required"`
	DatabaseType        string             `json:"database_type" validate:"required"`
	AssociatedCatalog   *DatabaseCatalog   `json:"associated_catalog" validate:"required"`
	CreatedOn           *string            `json:"created_on,omitempty"`
	DatabaseDetails     *DatabaseDetails   `json:"database_details,omitempty"`
	DatabaseProperties  []DatabaseProperty `json:"database_properties,omitempty"`
	Description         *string            `json:"description,omitempty"`
	Tags                []string           `json:"tags,omitempty"`

	AuthInstanceID *string `json:"-"`
}

// CreateDatabaseRegistration registers a database.
func (c *Client) CreateDatabaseRegistration(ctx context.Context, opts *CreateDatabaseRegistrationOptions) (*DatabaseRegistration, error) {
	if err := core.ValidateStruct(opts, "CreateDatabaseRegistrationOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodPost, "/database_registrations").
		jsonBody(opts).
		authInstance(opts.AuthInstanceID)
	return call[DatabaseRegistration](ctx, c, req)
}

// GetDatabaseOptions are the options for GetDatabase.
type GetDatabaseOptions struct {
	DatabaseID string `json:"-" path:"database_id" validate:"required"`

	AuthInstanceID *string `json:"-"`
}

// GetDatabase returns one registered database.
func (c *Client) GetDatabase(ctx context.Context, opts *GetDatabaseOptions) (*DatabaseRegistration, error) {
	if err := core.ValidateStruct(opts, "GetDatabaseOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodGet, "/database_registrations/{database_id}").
		pathParam("database_id", opts.DatabaseID).
		authInstance(opts.AuthInstanceID)
	return call[DatabaseRegistration](ctx, c, req)
}

// DeleteDatabaseCatalogOptions are the options for DeleteDatabaseCatalog.
type DeleteDatabaseCatalogOptions struct {
	DatabaseID string `json:"-" path:"database_id" validate:"required"`

	AuthInstanceID *string `json:"-"`
}

// DeleteDatabaseCatalog unregisters a database and drops its catalog.
func (c *Client) DeleteDatabaseCatalog(ctx context.Context, opts *DeleteDatabaseCatalogOptions) error {
	if err := core.ValidateStruct(opts, "DeleteDatabaseCatalogOptions"); err != nil {
		return err
	}
	req := newRequest(http.MethodDelete, "/database_registrations/{database_id}").
		pathParam("database_id", opts.DatabaseID).
		authInstance(opts.AuthInstanceID)
	return c.invoke(ctx, req, nil)
}

// UpdateDatabaseOptions are the options for UpdateDatabase. Nil fields are
// left unchanged.
type UpdateDatabaseOptions struct {
	DatabaseID string `json:"-" path:"database_id" validate:"required"`

	DatabaseDetails     *DatabaseDetails `json:"database_details,omitempty"`
	DatabaseDisplayName *string          `json:"database_display_name,omitempty"`
	Description         *string          `json:"description,omitempty"`
	Tags                []string         `json:"tags,omitempty"`

	AuthInstanceID *string `json:"-"`
}

// UpdateDatabase patches a registered database.
func (c *Client) UpdateDatabase(ctx context.Context, opts *UpdateDatabaseOptions) (*DatabaseRegistration, error) {
	if err := core.ValidateStruct(opts, "UpdateDatabaseOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodPatch, "/database_registrations/{database_id}").
		pathParam("database_id", opts.DatabaseID).
		mergePatchBody(opts).
		authInstance(opts.AuthInstanceID)
	return call[DatabaseRegistration](ctx, c, req)
}

// ValidateDatabaseConnectionOptions are the options for ValidateDatabaseConnection.
type ValidateDatabaseConnectionOptions struct {
	DatabaseDetails *DatabaseDetails `json:"database_details" validate:"required"`
	DatabaseType    string           `json:"database_type" validate:"required"`
	Certificate     *string          `json:"certificate,omitempty"`

	AuthInstanceID *string `json:"-"`
}

// ValidateDatabaseConnection checks that a database is reachable.
func (c *Client) ValidateDatabaseConnection(ctx context.Context, opts *ValidateDatabaseConnectionOptions) (*TestDatabaseConnectionResponse, error) {
	if err := core.ValidateStruct(opts, "ValidateDatabaseConnectionOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodPost, "/test_database_connection").
		jsonBody(opts).
		authInstance(opts.AuthInstanceID)
	return call[TestDatabaseConnectionResponse](ctx, c, req)
}
