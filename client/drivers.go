package client

import (
	"context"
	"io"
	"net/http"

	"github.com/DrewBradfordXYZ/watsonxdata-go/core"
)

// DriverRegistration is a JDBC driver uploaded to the instance.
type DriverRegistration struct {
	ConnectionType *string  `json:"connection_type,omitempty"`
	DriverID       *string  `json:"driver_id,omitempty"`
	DriverName     *string  `json:"driver_name,omitempty"`
	Engines        []string `json:"associated_engines,omitempty"`
	ModifiedAt     *string  `json:"modified_at,omitempty"`
	ModifiedBy     *string  `json:"modified_by,omitempty"`
	Status         *string  `json:"status,omitempty"`
	Version        *string  `json:"version,omitempty"`
}

// DriverRegistrationCollection lists registered drivers.
type DriverRegistrationCollection struct {
	DriverRegistrations []DriverRegistration `json:"driver_registrations"`
}

// DriverRegistrationEngine lists the engines a driver is attached to.
type DriverRegistrationEngine struct {
	Engines []string `json:"engines"`
}

// CreateDriverRegistrationOptions are the options for CreateDriverRegistration.
type CreateDriverRegistrationOptions struct {
	Driver            io.Reader `form:"driver" validate:"required"`
	DriverContentType string
	DriverName        string  `form:"driver_name" validate:"required"`
	ConnectionType    string  `form:"connection_type" validate:"required"`
	Version           *string `form:"version"`

	AuthInstanceID *string
}

// CreateDriverRegistration uploads a driver jar.
func (c *Client) CreateDriverRegistration(ctx context.Context, opts *CreateDriverRegistrationOptions) (*DriverRegistration, error) {
	if err := core.ValidateStruct(opts, "CreateDriverRegistrationOptions"); err != nil {
		return nil, err
	}
	parts := []formPart{
		{name: "driver", filename: opts.DriverName, contentType: opts.DriverContentType, reader: opts.Driver},
		{name: "driver_name", value: opts.DriverName},
		{name: "connection_type", value: opts.ConnectionType},
	}
	if opts.Version != nil {
		parts = append(parts, formPart{name: "version", value: *opts.Version})
	}
	req := newRequest(http.MethodPost, "/driver_registrations").
		multipartBody(parts...).
		authInstance(opts.AuthInstanceID)
	return call[DriverRegistration](ctx, c, req)
}

// ListDriverRegistrationOptions are the options for ListDriverRegistration.
type ListDriverRegistrationOptions struct {
	AuthInstanceID *string `json:"-"`
}

// ListDriverRegistration lists registered drivers.
func (c *Client) ListDriverRegistration(ctx context.Context, opts *ListDriverRegistrationOptions) (*DriverRegistrationCollection, error) {
	if err := core.ValidateStruct(opts, "ListDriverRegistrationOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodGet, "/driver_registrations").
		authInstance(opts.AuthInstanceID)
	return call[DriverRegistrationCollection](ctx, c, req)
}

// DeleteDriverRegistrationOptions are the options for DeleteDriverRegistration.
type DeleteDriverRegistrationOptions struct {
	DriverID string `json:"-" path:"driver_id" validate:"required"`

	AuthInstanceID *string `json:"-"`
}

// DeleteDriverRegistration removes a driver.
func (c *Client) DeleteDriverRegistration(ctx context.Context, opts *DeleteDriverRegistrationOptions) error {
	if err := core.ValidateStruct(opts, "DeleteDriverRegistrationOptions"); err != nil {
		return err
	}
	req := newRequest(http.MethodDelete, "/driver_registrations/{driver_id}").
		pathParam("driver_id", opts.DriverID).
		authInstance(opts.AuthInstanceID)
	return c.invoke(ctx, req, nil)
}

// DeleteDriverEnginesOptions are the options for DeleteDriverEngines.
type DeleteDriverEnginesOptions struct {
	DriverID  string `json:"-" path:"driver_id" validate:"required"`
	EngineIDs string `json:"-" url:"engine_ids" validate:"required"`

	AuthInstanceID *string `json:"-"`
}

// DeleteDriverEngines detaches a driver from engines. EngineIDs is a comma
// separated list.
func (c *Client) DeleteDriverEngines(ctx context.Context, opts *DeleteDriverEnginesOptions) error {
	if err := core.ValidateStruct(opts, "DeleteDriverEnginesOptions"); err != nil {
		return err
	}
	req := newRequest(http.MethodDelete, "/driver_registrations/{driver_id}/engines").
		pathParam("driver_id", opts.DriverID).
		queryParam("engine_ids", opts.EngineIDs).
		authInstance(opts.AuthInstanceID)
	return c.invoke(ctx, req, nil)
}

// UpdateDriverEnginesOptions are the options for UpdateDriverEngines.
type UpdateDriverEnginesOptions struct {
	DriverID string   `json:"-" path:"driver_id" validate:"required"`
	Engines  []string `json:"engines,omitempty"`

	AuthInstanceID *string `json:"-"`
}

// UpdateDriverEngines attaches a driver to engines.
func (c *Client) UpdateDriverEngines(ctx context.Context, opts *UpdateDriverEnginesOptions) (*DriverRegistrationEngine, error) {
	if err := core.ValidateStruct(opts, "UpdateDriverEnginesOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodPatch, "/driver_registrations/{driver_id}/engines").
		pathParam("driver_id", opts.DriverID).
		mergePatchBody(opts).
		authInstance(opts.AuthInstanceID)
	return call[DriverRegistrationEngine](ctx, c, req)
}
