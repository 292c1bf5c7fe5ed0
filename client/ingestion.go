package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/DrewBradfordXYZ/watsonxdata-go/core"
)

// IngestionJob is a data ingestion job.
type IngestionJob struct {
	CreateTime        *string                    `json:"create_time,omitempty"`
	CSVProperty       *IngestionJobCSVProperty   `json:"csv_property,omitempty"`
	Details           *string                    `json:"details,omitempty"`
	EndTimestamp      *string                    `json:"end_timestamp,omitempty"`
	EngineID          *string                    `json:"engine_id,omitempty"`
	EngineName        *string                    `json:"engine_name,omitempty"`
	ExecuteConfig     *IngestionJobExecuteConfig `json:"execute_config,omitempty"`
	InstanceID        *string                    `json:"instance_id,omitempty"`
	JobID             *string                    `json:"job_id,omitempty"`
	PartitionBy       *string                    `json:"partition_by,omitempty"`
	Schema            *string                    `json:"schema,omitempty"`
	SourceDataFiles   *string                    `json:"source_data_files,omitempty"`
	SourceFileType    *string                    `json:"source_file_type,omitempty"`
	StartTimestamp    *string                    `json:"start_timestamp,omitempty"`
	Status            *string                    `json:"status,omitempty"`
	TargetTable       *string                    `json:"target_table,omitempty"`
	Username          *string                    `json:"username,omitempty"`
	ValidateCSVHeader *bool                      `json:"validate_csv_header,omitempty"`
}

// IngestionJobCSVProperty describes how CSV source files are read.
type IngestionJobCSVProperty struct {
	Encoding        *string `json:"encoding,omitempty"`
	EscapeCharacter *string `json:"escape_character,omitempty"`
	FieldDelimiter  *string `json:"field_delimiter,omitempty"`
	Header          *bool   `json:"header,omitempty"`
	LineDelimiter   *string `json:"line_delimiter,omitempty"`
}

// IngestionJobExecuteConfig sizes the Spark job that runs an ingestion.
type IngestionJobExecuteConfig struct {
	DriverCores    *int64  `json:"driver_cores,omitempty"`
	DriverMemory   *string `json:"driver_memory,omitempty"`
	ExecutorCores  *int64  `json:"executor_cores,omitempty"`
	ExecutorMemory *string `json:"executor_memory,omitempty"`
	NumExecutors   *int64  `json:"num_executors,omitempty"`
}

// IngestionJobCollection is one page of ingestion jobs.
type IngestionJobCollection struct {
	IngestionJobs []IngestionJob              `json:"ingestion_jobs"`
	First         *IngestionJobCollectionPage `json:"first,omitempty"`
	Next          *IngestionJobCollectionPage `json:"next,omitempty"`
}

// IngestionJobCollectionPage links to a page of a collection.
type IngestionJobCollectionPage struct {
	Href *string `json:"href,omitempty"`
}

// PreviewIngestionFile is the parsed head of an ingestion source file.
type PreviewIngestionFile struct {
	ColumnNames []string   `json:"column_names,omitempty"`
	ColumnTypes []string   `json:"column_types,omitempty"`
	FileName    *string    `json:"file_name,omitempty"`
	FilePath    *string    `json:"file_path,omitempty"`
	FileType    *string    `json:"file_type,omitempty"`
	Rows        [][]string `json:"rows,omitempty"`
}

// ListIngestionJobsOptions are the options for ListIngestionJobs.
type ListIngestionJobsOptions struct {
	// Start is the page token from a previous response's next.href.
	Start       *string `json:"-" url:"start"`
	JobsPerPage *int64  `json:"-" url:"jobs_per_page"`

	AuthInstanceID *string `json:"-"`
}

// ListIngestionJobs lists one page of ingestion jobs. Use
// NewIngestionJobsPager to walk every page.
func (c *Client) ListIngestionJobs(ctx context.Context, opts *ListIngestionJobsOptions) (*IngestionJobCollection, error) {
	if err := core.ValidateStruct(opts, "ListIngestionJobsOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodGet, "/ingestion_jobs").
		queryParam("start", opts.Start).
		queryParam("jobs_per_page", opts.JobsPerPage).
		authInstance(opts.AuthInstanceID)
	return call[IngestionJobCollection](ctx, c, req)
}

// CreateIngestionJobsOptions are the options for CreateIngestionJobs.
type CreateIngestionJobsOptions struct {
	TargetTable string `json:"target_table" validate:"required"`
	// JobID defaults to "ingestion-<uuid>" when empty.
	JobID             string                     `json:"job_id"`
	SourceDataFiles   string                     `json:"source_data_files" validate:"required"`
	EngineID          string                     `json:"engine_id" validate:"required"`
	CSVProperty       *IngestionJobCSVProperty   `json:"csv_property,omitempty"`
	EngineName        *string                    `json:"engine_name,omitempty"`
	ExecuteConfig     *IngestionJobExecuteConfig `json:"execute_config,omitempty"`
	PartitionBy       *string                    `json:"partition_by,omitempty"`
	Schema            *string                    `json:"schema,omitempty"`
	SourceFileType    *string                    `json:"source_file_type,omitempty"`
	ValidateCSVHeader *bool                      `json:"validate_csv_header,omitempty"`

	AuthInstanceID *string `json:"-"`
}

// CreateIngestionJobs submits an ingestion job for files already in storage.
func (c *Client) CreateIngestionJobs(ctx context.Context, opts *CreateIngestionJobsOptions) (*IngestionJob, error) {
	if err := core.ValidateStruct(opts, "CreateIngestionJobsOptions"); err != nil {
		return nil, err
	}
	body := *opts
	if body.JobID == "" {
		body.JobID = newIngestionJobID()
	}
	req := newRequest(http.MethodPost, "/ingestion_jobs").
		jsonBody(&body).
		authInstance(opts.AuthInstanceID)
	return call[IngestionJob](ctx, c, req)
}

// CreateIngestionJobsLocalFilesOptions are the options for
// CreateIngestionJobsLocalFiles.
type CreateIngestionJobsLocalFilesOptions struct {
	SourceDataFile            io.Reader `validate:"required"`
	SourceDataFileName        string
	SourceDataFileContentType string

	TargetTable       string `form:"target_table" validate:"required"`
	JobID             string `form:"job_id"`
	EngineID          string `form:"engine_id" validate:"required"`
	CSVProperty       *IngestionJobCSVProperty
	EngineName        *string
	ExecuteConfig     *IngestionJobExecuteConfig
	PartitionBy       *string
	Schema            *string
	SourceFileType    *string
	ValidateCSVHeader *bool

	AuthInstanceID *string
}

// CreateIngestionJobsLocalFiles uploads a local file and ingests it.
func (c *Client) CreateIngestionJobsLocalFiles(ctx context.Context, opts *CreateIngestionJobsLocalFilesOptions) (*IngestionJob, error) {
	if err := core.ValidateStruct(opts, "CreateIngestionJobsLocalFilesOptions"); err != nil {
		return nil, err
	}
	jobID := opts.JobID
	if jobID == "" {
		jobID = newIngestionJobID()
	}

	parts := []formPart{
		{
			name:        "source_data_file",
			filename:    opts.SourceDataFileName,
			contentType: opts.SourceDataFileContentType,
			reader:      opts.SourceDataFile,
		},
		{name: "target_table", value: opts.TargetTable},
		{name: "job_id", value: jobID},
		{name: "engine_id", value: opts.EngineID},
	}
	for _, obj := range []struct {
		name  string
		value any
	}{
		{"csv_property", opts.CSVProperty},
		{"execute_config", opts.ExecuteConfig},
	} {
		if isUnset(obj.value) {
			continue
		}
		data, err := json.Marshal(obj.value)
		if err != nil {
			return nil, fmt.Errorf("marshaling %s: %w", obj.name, err)
		}
		parts = append(parts, formPart{name: obj.name, value: string(data)})
	}
	for _, f := range []struct {
		name  string
		value *string
	}{
		{"engine_name", opts.EngineName},
		{"partition_by", opts.PartitionBy},
		{"schema", opts.Schema},
		{"source_file_type", opts.SourceFileType},
	} {
		if f.value != nil {
			parts = append(parts, formPart{name: f.name, value: *f.value})
		}
	}
	if opts.ValidateCSVHeader != nil {
		parts = append(parts, formPart{name: "validate_csv_header", value: strconv.FormatBool(*opts.ValidateCSVHeader)})
	}

	req := newRequest(http.MethodPost, "/ingestion_jobs_local_files").
		multipartBody(parts...).
		authInstance(opts.AuthInstanceID)
	return call[IngestionJob](ctx, c, req)
}

// GetIngestionJobOptions are the options for GetIngestionJob.
type GetIngestionJobOptions struct {
	JobID string `json:"-" path:"job_id" validate:"required"`

	AuthInstanceID *string `json:"-"`
}

// GetIngestionJob returns one ingestion job.
func (c *Client) GetIngestionJob(ctx context.Context, opts *GetIngestionJobOptions) (*IngestionJob, error) {
	if err := core.ValidateStruct(opts, "GetIngestionJobOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodGet, "/ingestion_jobs/{job_id}").
		pathParam("job_id", opts.JobID).
		authInstance(opts.AuthInstanceID)
	return call[IngestionJob](ctx, c, req)
}

// DeleteIngestionJobsOptions are the options for DeleteIngestionJobs.
type DeleteIngestionJobsOptions struct {
	JobID string `json:"-" path:"job_id" validate:"required"`

	AuthInstanceID *string `json:"-"`
}

// DeleteIngestionJobs cancels and deletes an ingestion job.
func (c *Client) DeleteIngestionJobs(ctx context.Context, opts *DeleteIngestionJobsOptions) error {
	if err := core.ValidateStruct(opts, "DeleteIngestionJobsOptions"); err != nil {
		return err
	}
	req := newRequest(http.MethodDelete, "/ingestion_jobs/{job_id}").
		pathParam("job_id", opts.JobID).
		authInstance(opts.AuthInstanceID)
	return c.invoke(ctx, req, nil)
}

// CreatePreviewIngestionFileOptions are the options for CreatePreviewIngestionFile.
type CreatePreviewIngestionFileOptions struct {
	SourceDataFiles string                   `json:"source_data_files" validate:"required"`
	EngineID        string                   `json:"engine_id" validate:"required"`
	CSVProperty     *IngestionJobCSVProperty `json:"csv_property,omitempty"`
	SourceFileType  *string                  `json:"source_file_type,omitempty"`

	AuthInstanceID *string `json:"-"`
}

// CreatePreviewIngestionFile previews the first rows of a source file.
func (c *Client) CreatePreviewIngestionFile(ctx context.Context, opts *CreatePreviewIngestionFileOptions) (*PreviewIngestionFile, error) {
	if err := core.ValidateStruct(opts, "CreatePreviewIngestionFileOptions"); err != nil {
		return nil, err
	}
	req := newRequest(http.MethodPost, "/preview_ingestion_file").
		jsonBody(opts).
		authInstance(opts.AuthInstanceID)
	return call[PreviewIngestionFile](ctx, c, req)
}

func newIngestionJobID() string {
	return "ingestion-" + uuid.NewString()
}
