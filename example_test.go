package watsonxdata_test

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	watsonxdata "github.com/DrewBradfordXYZ/watsonxdata-go"
	"github.com/DrewBradfordXYZ/watsonxdata-go/auth"
	"github.com/DrewBradfordXYZ/watsonxdata-go/client"
)

// Create a client that authenticates with an IBM Cloud API key.
func ExampleNew() {
	wxd, err := watsonxdata.New(watsonxdata.DefaultServiceURL,
		watsonxdata.WithIAMAPIKey("your-ibm-cloud-api-key"),
		watsonxdata.WithAuthInstanceID("crn:v1:bluemix:public:lakehouse:us-south:a/xxxx:yyyy::"),
	)
	if err != nil {
		log.Fatal(err)
	}
	_ = wxd
}

// Configure a client with multiple options for production use.
func ExampleNew_withOptions() {
	logger, _ := zap.NewProduction()

	wxd, err := watsonxdata.New("https://us-south.lakehouse.cloud.ibm.com/lakehouse/api/v2",
		watsonxdata.WithIAMAPIKey("your-ibm-cloud-api-key"),

		// Retry configuration
		watsonxdata.WithMaxRetries(5),
		watsonxdata.WithRetryDelay(time.Second),
		watsonxdata.WithMaxRetryDelay(30*time.Second),

		// Timeout per operation, retries included
		watsonxdata.WithTimeout(60*time.Second),

		// Client-side rate limiting
		watsonxdata.WithRateLimit(5, 10),

		// Send logs to the application's logger
		watsonxdata.WithLogger(logger),
	)
	if err != nil {
		log.Fatal(err)
	}
	_ = wxd
}

// Read credentials from WATSONX_DATA_* environment variables or an
// ibm-credentials.env file.
func ExampleWithAuthenticatorFromEnvironment() {
	wxd, err := watsonxdata.New("",
		watsonxdata.WithAuthenticatorFromEnvironment(watsonxdata.DefaultServiceName),
	)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(wxd.ServiceURL())
}

// Authenticate against Cloud Pak for Data.
func ExampleWithCP4DAuth() {
	wxd, err := watsonxdata.New("https://cpd.example.com/lakehouse/api/v2",
		watsonxdata.WithCP4DAuth("https://cpd.example.com/icp4d-api", "admin",
			auth.WithCP4DAPIKey("cpd-api-key"),
		),
		watsonxdata.WithAuthInstanceID("1735495130873407"),
	)
	if err != nil {
		log.Fatal(err)
	}
	_ = wxd
}

// Run a SQL statement on a Presto engine.
func ExampleClient_CreateExecuteQuery() {
	wxd, _ := watsonxdata.New(watsonxdata.DefaultServiceURL,
		watsonxdata.WithBearerToken("token"),
	)

	ctx := context.Background()
	result, err := wxd.CreateExecuteQuery(ctx, &watsonxdata.CreateExecuteQueryOptions{
		EngineID:    "presto01",
		SQLString:   "select count(*) from iceberg_data.sales.orders",
		CatalogName: watsonxdata.StringPtr("iceberg_data"),
	})
	if err != nil {
		log.Fatal(err)
	}

	if result.Response != nil {
		for _, row := range result.Response.Result {
			fmt.Println(row)
		}
	}
}

// Page through ingestion jobs one page at a time.
func ExampleClient_NewIngestionJobsPager() {
	wxd, _ := watsonxdata.New(watsonxdata.DefaultServiceURL,
		watsonxdata.WithBearerToken("token"),
	)

	pager, err := wxd.NewIngestionJobsPager(&watsonxdata.ListIngestionJobsOptions{
		JobsPerPage: watsonxdata.Int64Ptr(50),
	})
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	for pager.HasNext() {
		jobs, err := pager.GetNext(ctx)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Fetched %d jobs\n", len(jobs))
	}
}

// Iterate over every ingestion job, fetching pages lazily.
func ExampleIngestionJobsPager_Iterator() {
	wxd, _ := watsonxdata.New(watsonxdata.DefaultServiceURL,
		watsonxdata.WithBearerToken("token"),
	)

	pager, _ := wxd.NewIngestionJobsPager(nil)
	for job, err := range pager.Iterator(context.Background()) {
		if err != nil {
			log.Fatal(err)
		}
		if job.JobID != nil {
			fmt.Println(*job.JobID)
		}
	}
}

// Handle different error types from API responses.
func ExampleClient_GetBucketRegistration_errorHandling() {
	wxd, _ := watsonxdata.New(watsonxdata.DefaultServiceURL,
		watsonxdata.WithBearerToken("token"),
	)

	ctx := context.Background()
	bucket, err := wxd.GetBucketRegistration(ctx, &client.GetBucketRegistrationOptions{BucketID: "missing"})
	if err != nil {
		var rateLimitErr *watsonxdata.RateLimitError
		var notFoundErr *watsonxdata.NotFoundError
		var validationErr *watsonxdata.ValidationError
		var authErr *watsonxdata.AuthenticationError

		switch {
		case errors.As(err, &rateLimitErr):
			fmt.Printf("Rate limited. Retry after %d seconds\n", rateLimitErr.RetryAfter)
		case errors.As(err, &notFoundErr):
			fmt.Printf("Bucket not found (trace %s)\n", notFoundErr.Trace)
		case errors.As(err, &validationErr):
			fmt.Printf("Validation error: %s\n", validationErr.Message)
		case errors.As(err, &authErr):
			fmt.Println("Authentication failed - check your API key")
		default:
			fmt.Printf("Error: %v\n", err)
		}
		return
	}

	fmt.Printf("Bucket: %s\n", *bucket.BucketDisplayName)
}

// Required options are checked before any request is sent.
func ExampleParamError() {
	wxd, _ := watsonxdata.New(watsonxdata.DefaultServiceURL,
		watsonxdata.WithBearerToken("token"),
	)

	_, err := wxd.GetCatalog(context.Background(), &client.GetCatalogOptions{})

	var paramErr *watsonxdata.ParamError
	if errors.As(err, &paramErr) {
		fmt.Println(paramErr)
	}
	// Output: invalid parameter catalog_id: is required
}

// Use the pointer helpers for optional fields.
func ExampleStringPtr() {
	opts := client.ListBucketObjectsOptions{
		BucketID: "iceberg-bucket",
		Path:     watsonxdata.StringPtr("warehouse/"),
	}
	fmt.Println(*opts.Path)
	// Output: warehouse/
}
