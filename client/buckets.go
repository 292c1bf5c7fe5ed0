package client

import (
	"context"
	"net/http"

	"github.com/DrewBradfordXYZ/watsonxdata-go/core"
)

// BucketRegistration is an object storage bucket registered with the instance.
type BucketRegistration struct {
	Actions           []string       `json:"actions,omitempty"`
	AssociatedCatalog *BucketCatalog `json:"associated_catalog,omitempty"`
	BucketDetails     *BucketDetails `json:"bucket_details,omitempty"`
	BucketDisplayName *string        `json:"bucket_display_name,omitempty"`
	BucketID          *string        `json:"bucket_id,omitempty"`
	BucketType        *string        `json:"bucket_type,omitempty"`
	CreatedBy         *string        `json:"created_by,omitempty"`
	CreatedOn         *string        `json:"created_on,omitempty"`
	Description       *string        `json:"description,omitempty"`
	ManagedBy         *string        `json:"managed_by,omitempty"`
	Region            *string        `json:"region,omitempty"`
	State             *string        `json:"state,omitempty"`
	Tags              []string       `json:"tags,omitempty"`
}

// BucketCatalog is the catalog a bucket backs.
type BucketCatalog struct {
	CatalogName string   `json:"catalog_name" validate:"required"`
	CatalogTags []string `json:"catalog_tags,omitempty"`
	CatalogType string   `json:"catalog_type" validate:"required"`
}

// BucketDetails holds bucket connection settings.
type BucketDetails struct {
	AccessKey  *string `json:"access_key,omitempty"`
	BucketName *string `json:"bucket_name,omitempty"`
	Endpoint   *string `json:"endpoint,omitempty"`
	KeyFile    *string `json:"key_file,omitempty"`
	Provider   *string `json:"provider,omitempty"`
	Region     *string `json:"region,omitempty"`
	SecretKey  *string `json:"secret_key,omitempty"`
}

// BucketRegistrationCollection lists registered buckets.
type BucketRegistrationCollection struct {
	BucketRegistrations []BucketRegistration `json:"bucket_registrations"`
}

// BucketRegistrationObjectCollection lists object names in a bucket.
type BucketRegistrationObjectCollection struct {
	Objects []string `json:"objects"`
}

// SuccessResponse is the body of action endpoints (activate, pause, resume...).
type SuccessResponse struct {
	Message     *string `json:"message,omitempty"`
	MessageCode *string `json:"message_code,omitempty"`
}

// CreateActivateBucketCreatedBody is returned by CreateActivateBucket.
type CreateActivateBucketCreatedBody struct {
	Response *SuccessResponse `json:"response,omitempty"`
}

// BucketStatus reports the outcome of a connection test.
type BucketStatus struct {
	BucketExists *bool   `json:"bucket_exists,omitempty"`
	State        *bool   `json:"state,omitempty"`
	StateMessage *string `json:"state_message,omitempty"`
}

// TestBucketConnectionOKBody is returned by TestBucketConnection.
type TestBucketConnectionOKBody struct {
	BucketStatus *BucketStatus `json:"bucket_status,omitempty"`
}

// ListBucketRegistrationsOptions are the options for ListBucketRegistrations.
type ListBucketRegistrationsOptions struct {
	AuthInstanceID *string `json:"-"`
}

// ListBucketRegistrations lists registered buckets.
func (c *Client) ListBucketRegistrations(ctx context.Context, opts *ListBucketRegistrationsOptions) (*BucketRegistrationCollection, error) {
	if err := core.ValidateStruct(opts, "ListBucketRegistrationsOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodGet, "/bucket_registrations").
		authInstance(opts.AuthInstanceID)
	return call[BucketRegistrationCollection](ctx, c, req)
}

// CreateBucketRegistrationOptions are the options for CreateBucketRegistration.
type CreateBucketRegistrationOptions struct {
	BucketDetails     *BucketDetails `json:"bucket_details,omitempty"`
	BucketType        string         `json:"bucket_type" validate:"required"`
	Description       *string        `json:"description,omitempty"`
	ManagedBy         string         `json:"managed_by" validate:"required"`
	AssociatedCatalog *BucketCatalog `json:"associated_catalog" validate:"required"`
	BucketDisplayName *string        `json:"bucket_display_name,omitempty"`
	Region            *string        `json:"region,omitempty"`
	Tags              []string       `json:"tags,omitempty"`

	AuthInstanceID *string `json:"-"`
}

// CreateBucketRegistration registers a bucket.
func (c *Client) CreateBucketRegistration(ctx context.Context, opts *CreateBucketRegistrationOptions) (*BucketRegistration, error) {
	if err := core.ValidateStruct(opts, "CreateBucketRegistrationOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodPost, "/bucket_registrations").
		jsonBody(opts).
		authInstance(opts.AuthInstanceID)
	return call[BucketRegistration](ctx, c, req)
}

// GetBucketRegistrationOptions are the options for GetBucketRegistration.
type GetBucketRegistrationOptions struct {
	BucketID string `json:"-" path:"bucket_id" validate:"required"`

	AuthInstanceID *string `json:"-"`
}

// GetBucketRegistration returns one registered bucket.
func (c *Client) GetBucketRegistration(ctx context.Context, opts *GetBucketRegistrationOptions) (*BucketRegistration, error) {
	if err := core.ValidateStruct(opts, "GetBucketRegistrationOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodGet, "/bucket_registrations/{bucket_id}").
		pathParam("bucket_id", opts.BucketID).
		authInstance(opts.AuthInstanceID)
	return call[BucketRegistration](ctx, c, req)
}

// DeleteBucketRegistrationOptions are the options for DeleteBucketRegistration.
type DeleteBucketRegistrationOptions struct {
	BucketID string `json:"-" path:"bucket_id" validate:"required"`

	AuthInstanceID *string `json:"-"`
}

// DeleteBucketRegistration unregisters a bucket.
func (c *Client) DeleteBucketRegistration(ctx context.Context, opts *DeleteBucketRegistrationOptions) error {
	if err := core.ValidateStruct(opts, "DeleteBucketRegistrationOptions"); err != nil {
		return err
	}
	req := newRequest(http.MethodDelete, "/bucket_registrations/{bucket_id}").
		pathParam("bucket_id", opts.BucketID).
		authInstance(opts.AuthInstanceID)
	return c.invoke(ctx, req, nil)
}

// UpdateBucketRegistrationOptions are the options for UpdateBucketRegistration.
// Nil fields are left unchanged.
type UpdateBucketRegistrationOptions struct {
	BucketID string `json:"-" path:"bucket_id" validate:"required"`

	BucketDetails     *BucketDetails `json:"bucket_details,omitempty"`
	BucketDisplayName *string        `json:"bucket_display_name,omitempty"`
	Description       *string        `json:"description,omitempty"`
	Tags              []string       `json:"tags,omitempty"`

	AuthInstanceID *string `json:"-"`
}

// UpdateBucketRegistration patches a registered bucket.
func (c *Client) UpdateBucketRegistration(ctx context.Context, opts *UpdateBucketRegistrationOptions) (*BucketRegistration, error) {
	if err := core.ValidateStruct(opts, "UpdateBucketRegistrationOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodPatch, "/bucket_registrations/{bucket_id}").
		pathParam("bucket_id", opts.BucketID).
		mergePatchBody(opts).
		authInstance(opts.AuthInstanceID)
	return call[BucketRegistration](ctx, c, req)
}

// CreateActivateBucketOptions are the options for CreateActivateBucket.
type CreateActivateBucketOptions struct {
	BucketID string `json:"-" path:"bucket_id" validate:"required"`

	AuthInstanceID *string `json:"-"`
}

// CreateActivateBucket activates a bucket.
func (c *Client) CreateActivateBucket(ctx context.Context, opts *CreateActivateBucketOptions) (*CreateActivateBucketCreatedBody, error) {
	if err := core.ValidateStruct(opts, "CreateActivateBucketOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodPost, "/bucket_registrations/{bucket_id}/activate").
		pathParam("bucket_id", opts.BucketID).
		authInstance(opts.AuthInstanceID)
	return call[CreateActivateBucketCreatedBody](ctx, c, req)
}

// DeleteDeactivateBucketOptions are the options for DeleteDeactivateBucket.
type DeleteDeactivateBucketOptions struct {
	BucketID string `json:"-" path:"bucket_id" validate:"required"`

	AuthInstanceID *string `json:"-"`
}

// DeleteDeactivateBucket deactivates a bucket.
func (c *Client) DeleteDeactivateBucket(ctx context.Context, opts *DeleteDeactivateBucketOptions) error {
	if err := core.ValidateStruct(opts, "DeleteDeactivateBucketOptions"); err != nil {
		return err
	}
	req := newRequest(http.MethodDelete, "/bucket_registrations/{bucket_id}/deactivate").
		pathParam("bucket_id", opts.BucketID).
		authInstance(opts.AuthInstanceID)
	return c.invoke(ctx, req, nil)
}

// ListBucketObjectsOptions are the options for ListBucketObjects.
type ListBucketObjectsOptions struct {
	BucketID string `json:"-" path:"bucket_id" validate:"required"`
	// Path restricts the listing to a prefix.
	Path *string `json:"-" url:"path"`

	AuthInstanceID *string `json:"-"`
}

// ListBucketObjects lists objects in a registered bucket.
func (c *Client) ListBucketObjects(ctx context.Context, opts *ListBucketObjectsOptions) (*BucketRegistrationObjectCollection, error) {
	if err := core.ValidateStruct(opts, "ListBucketObjectsOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodGet, "/bucket_registrations/{bucket_id}/objects").
		pathParam("bucket_id", opts.BucketID).
		queryParam("path", opts.Path).
		authInstance(opts.AuthInstanceID)
	return call[BucketRegistrationObjectCollection](ctx, c, req)
}

// TestBucketConnectionOptions are the options for TestBucketConnection.
type TestBucketConnectionOptions struct {
	AccessKey      string          `json:"access_key" validate:"required"`
	BucketName     string          `json:"bucket_name" validate:"required"`
	BucketType     string          `json:"bucket_type" validate:"required"`
	Endpoint       *string         `json:"endpoint,omitempty"`
	Region         *string         `json:"region,omitempty"`
	SecretKey      string          `json:"secret_key" validate:"required"`
	StorageDetails *StorageDetails `json:"storage_details,omitempty"`

	AuthInstanceID *string `json:"-"`
}

// StorageDetails holds ADLS and GCS connection settings.
type StorageDetails struct {
	AccessKey          *string `json:"access_key,omitempty"`
	ApplicationID      *string `json:"application_id,omitempty"`
	AuthMode           *string `json:"auth_mode,omitempty"`
	ContainerName      *string `json:"container_name,omitempty"`
	Credentials        *string `json:"credentials,omitempty"`
	DirectoryID        *string `json:"directory_id,omitempty"`
	Endpoint           *string `json:"endpoint,omitempty"`
	SasToken           *string `json:"sas_token,omitempty"`
	SecretKey          *string `json:"secret_key,omitempty"`
	StorageAccountName *string `json:"storage_account_name,omitempty"`
}

// TestBucketConnection checks that a bucket is reachable with the given keys.
func (c *Client) TestBucketConnection(ctx context.Context, opts *TestBucketConnectionOptions) (*TestBucketConnectionOKBody, error) {
	if err := core.ValidateStruct(opts, "TestBucketConnectionOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodPost, "/test_bucket_connection").
		jsonBody(opts).
		authInstance(opts.AuthInstanceID)
	return call[TestBucketConnectionOKBody](ctx, c, req)
}
