package client

import (
	"context"
	"net/http"

	"github.com/DrewBradfordXYZ/watsonxdata-go/core"
)

// Endpoint is one externally reachable service endpoint of an instance.
type Endpoint struct {
	ExternalHost *string `json:"external_host,omitempty"`
	ServiceType  *string `json:"service_type,omitempty"`
}

// EndpointCollection lists the endpoints of an instance.
type EndpointCollection struct {
	Endpoints []Endpoint `json:"endpoints"`
}

// GetEndpointsOptions are the options for GetEndpoints.
type GetEndpointsOptions struct {
	AuthInstanceID *string `json:"-"`
}

// GetEndpoints returns the service endpoints of the instance.
func (c *Client) GetEndpoints(ctx context.Context, opts *GetEndpointsOptions) (*EndpointCollection, error) {
	if err := core.ValidateStruct(opts, "GetEndpointsOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodGet, "/endpoints").
		authInstance(opts.AuthInstanceID)
	return call[EndpointCollection](ctx, c, req)
}

// Integration connects the instance to an external governance or
// data-access service.
type Integration struct {
	AccessToken               *string  `json:"access_token,omitempty"`
	APIKey                    *string  `json:"apikey,omitempty"`
	BucketCatalogs            []string `json:"bucket_catalogs,omitempty"`
	ConfigProperties          *string  `json:"config_properties,omitempty"`
	EnableDataPolicyWithinWxd *bool    `json:"enable_data_policy_within_wxd,omitempty"`
	GovernanceProperties      *string  `json:"governance_properties,omitempty"`
	IKCUserAccountID          *string  `json:"ikc_user_account_id,omitempty"`
	IntegrationID             *string  `json:"integration_id,omitempty"`
	MantaURL                  *string  `json:"manta_url,omitempty"`
	ModifiedAt                *int64   `json:"modified_at,omitempty"`
	ModifiedBy                *string  `json:"modified_by,omitempty"`
	Password                  *string  `json:"password,omitempty"`
	Resource                  *string  `json:"resource,omitempty"`
	ServiceType               *string  `json:"service_type,omitempty"`
	State                     *string  `json:"state,omitempty"`
	StorageCatalogs           []string `json:"storage_catalogs,omitempty"`
	URL                       *string  `json:"url,omitempty"`
	Username                  *string  `json:"username,omitempty"`
	CrossAccountIntegration   *bool    `json:"cross_account_integration,omitempty"`
}

// IntegrationCollection lists integrations.
type IntegrationCollection struct {
	Integrations []Integration `json:"integrations"`
}

// ListAllIntegrationsOptions are the options for ListAllIntegrations.
type ListAllIntegrationsOptions struct {
	// ServiceType filters by integration kind, e.g. "ikc" or "ranger".
	ServiceType []string `json:"-" url:"service_type"`
	State       []string `json:"-" url:"state"`

	AuthInstanceID *string `json:"-"`
}

// ListAllIntegrations lists the integrations of the instance.
func (c *Client) ListAllIntegrations(ctx context.Context, opts *ListAllIntegrationsOptions) (*IntegrationCollection, error) {
	if err := core.ValidateStruct(opts, "ListAllIntegrationsOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodGet, "/integrations").
		queryParam("service_type", opts.ServiceType).
		queryParam("state", opts.State).
		authInstance(opts.AuthInstanceID)
	return call[IntegrationCollection](ctx, c, req)
}

// CreateIntegrationOptions are the options for CreateIntegration.
type CreateIntegrationOptions struct {
	ServiceType               string   `json:"service_type" validate:"required"`
	APIKey                    *string  `json:"apikey,omitempty"`
	AccessToken               *string  `json:"access_token,omitempty"`
	BucketCatalogs            []string `json:"bucket_catalogs,omitempty"`
	ConfigProperties          *string  `json:"config_properties,omitempty"`
	EnableDataPolicyWithinWxd *bool    `json:"enable_data_policy_within_wxd,omitempty"`
	GovernanceProperties      *string  `json:"governance_properties,omitempty"`
	IKCUserAccountID          *string  `json:"ikc_user_account_id,omitempty"`
	MantaURL                  *string  `json:"manta_url,omitempty"`
	Password                  *string  `json:"password,omitempty"`
	Resource                  *string  `json:"resource,omitempty"`
	StorageCatalogs           []string `json:"storage_catalogs,omitempty"`
	URL                       *string  `json:"url,omitempty"`
	Username                  *string  `json:"username,omitempty"`

	AuthInstanceID *string `json:"-"`
}

// CreateIntegration registers an integration.
func (c *Client) CreateIntegration(ctx context.Context, opts *CreateIntegrationOptions) (*Integration, error) {
	if err := core.ValidateStruct(opts, "CreateIntegrationOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodPost, "/integrations").
		jsonBody(opts).
		authInstance(opts.AuthInstanceID)
	return call[Integration](ctx, c, req)
}

// IntegrationIDOptions identify a single integration.
type IntegrationIDOptions struct {
	IntegrationID string `json:"-" path:"integration_id" validate:"required"`

	AuthInstanceID *string `json:"-"`
}

// GetIntegrations returns one integration.
func (c *Client) GetIntegrations(ctx context.Context, opts *IntegrationIDOptions) (*Integration, error) {
	if err := core.ValidateStruct(opts, "IntegrationIDOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodGet, "/integrations/{integration_id}").
		pathParam("integration_id", opts.IntegrationID).
		authInstance(opts.AuthInstanceID)
	return call[Integration](ctx, c, req)
}

// DeleteIntegration removes an integration.
func (c *Client) DeleteIntegration(ctx context.Context, opts *IntegrationIDOptions) error {
	if err := core.ValidateStruct(opts, "IntegrationIDOptions"); err != nil {
		return err
	}
	req := newRequest(http.MethodDelete, "/integrations/{integration_id}").
		pathParam("integration_id", opts.IntegrationID).
		authInstance(opts.AuthInstanceID)
	return c.invoke(ctx, req, nil)
}

// UpdateIntegrationOptions are the options for UpdateIntegration. Nil fields
// are left unchanged.
type UpdateIntegrationOptions struct {
	IntegrationID string `json:"-" path:"integration_id" validate:"required"`

	AccessToken               *string  `json:"access_token,omitempty"`
	APIKey                    *string  `json:"apikey,omitempty"`
	BucketCatalogs            []string `json:"bucket_catalogs,omitempty"`
	ConfigProperties          *string  `json:"config_properties,omitempty"`
	EnableDataPolicyWithinWxd *bool    `json:"enable_data_policy_within_wxd,omitempty"`
	IKCUserAccountID          *string  `json:"ikc_user_account_id,omitempty"`
	Password                  *string  `json:"password,omitempty"`
	Resource                  *string  `json:"resource,omitempty"`
	State                     *string  `json:"state,omitempty"`
	StorageCatalogs           []string `json:"storage_catalogs,omitempty"`
	URL                       *string  `json:"url,omitempty"`
	Username                  *string  `json:"username,omitempty"`

	AuthInstanceID *string `json:"-"`
}

// UpdateIntegration patches an integration.
func (c *Client) UpdateIntegration(ctx context.Context, opts *UpdateIntegrationOptions) (*Integration, error) {
	if err := core.ValidateStruct(opts, "UpdateIntegrationOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodPatch, "/integrations/{integration_id}").
		pathParam("integration_id", opts.IntegrationID).
		mergePatchBody(opts).
		authInstance(opts.AuthInstanceID)
	return call[Integration](ctx, c, req)
}
