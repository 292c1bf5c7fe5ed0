package client

import (
	"context"
	"net/http"

	"github.com/DrewBradfordXYZ/watsonxdata-go/core"
)

const milvusServices = "/milvus_services"

// MilvusService is a Milvus vector database service.
type MilvusService struct {
	Actions            []string `json:"actions,omitempty"`
	BucketName         *string  `json:"bucket_name,omitempty"`
	CreatedBy          *string  `json:"created_by,omitempty"`
	CreatedOn          *int64   `json:"created_on,omitempty"`
	Description        *string  `json:"description,omitempty"`
	GRPCHost           *string  `json:"grpc_host,omitempty"`
	GRPCPort           *int64   `json:"grpc_port,omitempty"`
	HostName           *string  `json:"host_name,omitempty"`
	HTTPSHost          *string  `json:"https_host,omitempty"`
	HTTPSPort          *int64   `json:"https_port,omitempty"`
	Origin             *string  `json:"origin,omitempty"`
	RootPath           *string  `json:"root_path,omitempty"`
	ServiceDisplayName *string  `json:"service_display_name,omitempty"`
	ServiceID          *string  `json:"service_id,omitempty"`
	Status             *string  `json:"status,omitempty"`
	StatusCode         *int64   `json:"status_code,omitempty"`
	Tags               []string `json:"tags,omitempty"`
	TshirtSize         *string  `json:"tshirt_size,omitempty"`
	Type               *string  `json:"type,omitempty"`
}

// MilvusServiceCollection lists Milvus services.
type MilvusServiceCollection struct {
	MilvusServices []MilvusService `json:"milvus_services"`
}

// MilvusServiceDatabases lists the databases of a Milvus service.
type MilvusServiceDatabases struct {
	Databases []string `json:"databases"`
}

// MilvusDatabaseCollections lists the collections of a Milvus database.
type MilvusDatabaseCollections struct {
	Collections []MilvusCollection `json:"collections"`
}

// MilvusCollection is one Milvus collection.
type MilvusCollection struct {
	CollectionID     *int64   `json:"collection_id,omitempty"`
	CollectionName   *string  `json:"collection_name,omitempty"`
	PhysicalChannels []string `json:"physical_channels,omitempty"`
	VirtualChannels  []string `json:"virtual_channels,omitempty"`
}

// ListMilvusServicesOptions are the options for ListMilvusServices.
type ListMilvusServicesOptions struct {
	AuthInstanceID *string `json:"-"`
}

// ListMilvusServices lists Milvus services.
func (c *Client) ListMilvusServices(ctx context.Context, opts *ListMilvusServicesOptions) (*MilvusServiceCollection, error) {
	if err := core.ValidateStruct(opts, "ListMilvusServicesOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodGet, milvusServices).
		authInstance(opts.AuthInstanceID)
	return call[MilvusServiceCollection](ctx, c, req)
}

// CreateMilvusServiceOptions are the options for CreateMilvusService.
type CreateMilvusServiceOptions struct {
	Origin             string   `json:"origin" validate:"required"`
	Type               string   `json:"type" validate:"required"`
	BucketName         *string  `json:"bucket_name,omitempty"`
	Description        *string  `json:"description,omitempty"`
	RootPath           *string  `json:"root_path,omitempty"`
	ServiceDisplayName *string  `json:"service_display_name,omitempty"`
	Tags               []string `json:"tags,omitempty"`
	TshirtSize         *string  `json:"tshirt_size,omitempty"`

	AuthInstanceID *string `json:"-"`
}

// CreateMilvusService provisions a Milvus service.
func (c *Client) CreateMilvusService(ctx context.Context, opts *CreateMilvusServiceOptions) (*MilvusService, error) {
	if err := core.ValidateStruct(opts, "CreateMilvusServiceOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodPost, milvusServices).
		jsonBody(opts).
		authInstance(opts.AuthInstanceID)
	return call[MilvusService](ctx, c, req)
}

// MilvusServiceIDOptions identify a single Milvus service.
type MilvusServiceIDOptions struct {
	ServiceID string `json:"-" path:"service_id" validate:"required"`

	AuthInstanceID *string `json:"-"`
}

// GetMilvusService returns one Milvus service.
func (c *Client) GetMilvusService(ctx context.Context, opts *MilvusServiceIDOptions) (*MilvusService, error) {
	if err := core.ValidateStruct(opts, "MilvusServiceIDOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodGet, milvusServices+"/{service_id}").
		pathParam("service_id", opts.ServiceID).
		authInstance(opts.AuthInstanceID)
	return call[MilvusService](ctx, c, req)
}

// DeleteMilvusService deletes a Milvus service.
func (c *Client) DeleteMilvusService(ctx context.Context, opts *MilvusServiceIDOptions) error {
	if err := core.ValidateStruct(opts, "MilvusServiceIDOptions"); err != nil {
		return err
	}
	req := newRequest(http.MethodDelete, milvusServices+"/{service_id}").
		pathParam("service_id", opts.ServiceID).
		authInstance(opts.AuthInstanceID)
	return c.invoke(ctx, req, nil)
}

// UpdateMilvusServiceOptions are the options for UpdateMilvusService. Nil
// fields are left unchanged.
type UpdateMilvusServiceOptions struct {
	ServiceID string `json:"-" path:"service_id" validate:"required"`

	Description        *string  `json:"description,omitempty"`
	ServiceDisplayName *string  `json:"service_display_name,omitempty"`
	Tags               []string `json:"tags,omitempty"`

	AuthInstanceID *string `json:"-"`
}

// UpdateMilvusService patches a Milvus service.
func (c *Client) UpdateMilvusService(ctx context.Context, opts *UpdateMilvusServiceOptions) (*MilvusService, error) {
	if err := core.ValidateStruct(opts, "UpdateMilvusServiceOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodPatch, milvusServices+"/{service_id}").
		pathParam("service_id", opts.ServiceID).
		mergePatchBody(opts).
		authInstance(opts.AuthInstanceID)
	return call[MilvusService](ctx, c, req)
}

// ListMilvusServiceDatabases lists the databases of a Milvus service.
func (c *Client) ListMilvusServiceDatabases(ctx context.Context, opts *MilvusServiceIDOptions) (*MilvusServiceDatabases, error) {
	if err := core.ValidateStruct(opts, "MilvusServiceIDOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodGet, milvusServices+"/{service_id}/databases").
		pathParam("service_id", opts.ServiceID).
		authInstance(opts.AuthInstanceID)
	return call[MilvusServiceDatabases](ctx, c, req)
}

// ListMilvusDatabaseCollectionsOptions are the options for ListMilvusDatabaseCollections.
type ListMilvusDatabaseCollectionsOptions struct {
	ServiceID  string `json:"-" path:"service_id" validate:"required"`
	DatabaseID string `json:"-" path:"database_id" validate:"required"`

	AuthInstanceID *string `json:"-"`
}

// ListMilvusDatabaseCollections lists the collections of a Milvus database.
func (c *Client) ListMilvusDatabaseCollections(ctx context.Context, opts *ListMilvusDatabaseCollectionsOptions) (*MilvusDatabaseCollections, error) {
	if err := core.ValidateStruct(opts, "ListMilvusDatabaseCollectionsOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodGet, milvusServices+"/{service_id}/databases/{database_id}/collections").
		pathParam("service_id", opts.ServiceID).
		pathParam("database_id", opts.DatabaseID).
		authInstance(opts.AuthInstanceID)
	return call[MilvusDatabaseCollections](ctx, c, req)
}

// CreateMilvusServicePause pauses a Milvus service.
func (c *Client) CreateMilvusServicePause(ctx context.Context, opts *MilvusServiceIDOptions) (*SuccessResponse, error) {
	return c.milvusAction(ctx, "pause", opts)
}

// CreateMilvusServiceResume resumes a paused Milvus service.
func (c *Client) CreateMilvusServiceResume(ctx context.Context, opts *MilvusServiceIDOptions) (*SuccessResponse, error) {
	return c.milvusAction(ctx, "resume", opts)
}

// CreateMilvusServiceScaleOptions are the options for CreateMilvusServiceScale.
type CreateMilvusServiceScaleOptions struct {
	ServiceID  string  `json:"-" path:"service_id" validate:"required"`
	TshirtSize *string `json:"tshirt_size,omitempty"`

	AuthInstanceID *string `json:"-"`
}

// CreateMilvusServiceScale resizes a Milvus service.
func (c *Client) CreateMilvusServiceScale(ctx context.Context, opts *CreateMilvusServiceScaleOptions) (*SuccessResponse, error) {
	if err := core.ValidateStruct(opts, "CreateMilvusServiceScaleOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodPost, milvusServices+"/{service_id}/scale").
		pathParam("service_id", opts.ServiceID).
		jsonBody(opts).
		authInstance(opts.AuthInstanceID)
	return call[SuccessResponse](ctx, c, req)
}

func (c *Client) milvusAction(ctx context.Context, action string, opts *MilvusServiceIDOptions) (*SuccessResponse, error) {
	if err := core.ValidateStruct(opts, "MilvusServiceIDOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodPost, milvusServices+"/{service_id}/"+action).
		pathParam("service_id", opts.ServiceID).
		authInstance(opts.AuthInstanceID)
	return call[SuccessResponse](ctx, c, req)
}
