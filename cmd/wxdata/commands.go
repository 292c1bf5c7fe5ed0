package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/DrewBradfordXYZ/watsonxdata-go/client"
)

// run wraps a command body that needs an API client.
func (a *app) run(fn func(ctx context.Context, c *client.Client, args []string) (listing, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c, err := a.newClient()
		if err != nil {
			return err
		}
		l, err := fn(cmd.Context(), c, args)
		if err != nil {
			return err
		}
		return a.print(l)
	}
}

func (a *app) bucketsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buckets",
		Short: "Registered object storage buckets",
	}
	columns := []string{"bucket_id", "bucket_display_name", "bucket_type", "state", "catalog"}
	row := func(b client.BucketRegistration) table.Row {
		catalog := ""
		if b.AssociatedCatalog != nil {
			catalog = b.AssociatedCatalog.CatalogName
		}
		return table.Row{str(b.BucketID), str(b.BucketDisplayName), str(b.BucketType), str(b.State), catalog}
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered buckets",
		Args:  cobra.NoArgs,
		RunE: a.run(func(ctx context.Context, c *client.Client, _ []string) (listing, error) {
			resp, err := c.ListBucketRegistrations(ctx, &client.ListBucketRegistrationsOptions{})
			if err != nil {
				return listing{}, fmt.Errorf("failed to list buckets: %w", err)
			}
			l := listing{columns: columns, raw: resp.BucketRegistrations}
			for _, b := range resp.BucketRegistrations {
				l.rows = append(l.rows, row(b))
			}
			return l, nil
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "get BUCKET_ID",
		Short: "Show one registered bucket",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(ctx context.Context, c *client.Client, args []string) (listing, error) {
			b, err := c.GetBucketRegistration(ctx, &client.GetBucketRegistrationOptions{BucketID: args[0]})
			if err != nil {
				return listing{}, fmt.Errorf("failed to get bucket %s: %w", args[0], err)
			}
			return listing{columns: columns, rows: []table.Row{row(*b)}, raw: b}, nil
		}),
	})
	return cmd
}

func (a *app) databasesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "databases",
		Short: "Registered databases",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered databases",
		Args:  cobra.NoArgs,
		RunE: a.run(func(ctx context.Context, c *client.Client, _ []string) (listing, error) {
			resp, err := c.ListDatabaseRegistrations(ctx, &client.ListDatabaseRegistrationsOptions{})
			if err != nil {
				return listing{}, fmt.Errorf("failed to list databases: %w", err)
			}
			l := listing{
				columns: []string{"database_id", "database_display_name", "database_type", "hostname"},
				raw:     resp.DatabaseRegistrations,
			}
			for _, d := range resp.DatabaseRegistrations {
				host := ""
				if d.DatabaseDetails != nil {
					host = str(d.DatabaseDetails.Hostname)
				}
				l.rows = append(l.rows, table.Row{str(d.DatabaseID), str(d.DatabaseDisplayName), str(d.DatabaseType), host})
			}
			return l, nil
		}),
	})
	return cmd
}

var engineTypes = []string{"presto", "prestissimo", "spark", "milvus", "db2", "netezza", "other"}

func (a *app) enginesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "engines",
		Short: "Query engines and services",
	}
	list := &cobra.Command{
		Use:   "list",
		Short: "List engines of one type",
		Args:  cobra.NoArgs,
		RunE: a.run(func(ctx context.Context, c *client.Client, _ []string) (listing, error) {
			return listEngines(ctx, c, a.v.GetString("type"))
		}),
	}
	list.Flags().String("type", "presto", "Engine type: "+strings.Join(engineTypes, ", "))
	cmd.AddCommand(list)
	return cmd
}

func listEngines(ctx context.Context, c *client.Client, engineType string) (listing, error) {
	l := listing{columns: []string{"engine_id", "engine_display_name", "type", "status", "origin"}}
	add := func(id, name, typ, status, origin *string) {
		l.rows = append(l.rows, table.Row{str(id), str(name), str(typ), str(status), str(origin)})
	}
	addPresto := func(engines []client.PrestoEngine) {
		for _, e := range engines {
			add(e.EngineID, e.EngineDisplayName, e.Type, e.Status, e.Origin)
		}
		l.raw = engines
	}
	addExternal := func(engines []client.ExternalEngine) {
		for _, e := range engines {
			add(e.EngineID, e.EngineDisplayName, e.Type, e.Status, e.Origin)
		}
		l.raw = engines
	}

	switch engineType {
	case "presto":
		resp, err := c.ListPrestoEngines(ctx, &client.ListEnginesOptions{})
		if err != nil {
			return l, fmt.Errorf("failed to list presto engines: %w", err)
		}
		addPresto(resp.PrestoEngines)
	case "prestissimo":
		resp, err := c.ListPrestissimoEngines(ctx, &client.ListEnginesOptions{})
		if err != nil {
			return l, fmt.Errorf("failed to list prestissimo engines: %w", err)
		}
		addPresto(resp.PrestissimoEngines)
	case "spark":
		resp, err := c.ListSparkEngines(ctx, &client.ListEnginesOptions{})
		if err != nil {
			return l, fmt.Errorf("failed to list spark engines: %w", err)
		}
		for _, e := range resp.SparkEngines {
			add(e.EngineID, e.EngineDisplayName, e.Type, e.Status, e.Origin)
		}
		l.raw = resp.SparkEngines
	case "milvus":
		resp, err := c.ListMilvusServices(ctx, &client.ListMilvusServicesOptions{})
		if err != nil {
			return l, fmt.Errorf("failed to list milvus services: %w", err)
		}
		for _, s := range resp.MilvusServices {
			add(s.ServiceID, s.ServiceDisplayName, s.Type, s.Status, s.Origin)
		}
		l.raw = resp.MilvusServices
	case "db2":
		resp, err := c.ListDb2Engines(ctx, &client.ListExternalEnginesOptions{})
		if err != nil {
			return l, fmt.Errorf("failed to list db2 engines: %w", err)
		}
		addExternal(resp.Db2Engines)
	case "netezza":
		resp, err := c.ListNetezzaEngines(ctx, &client.ListExternalEnginesOptions{})
		if err != nil {
			return l, fmt.Errorf("failed to list netezza engines: %w", err)
		}
		addExternal(resp.NetezzaEngines)
	case "other":
		resp, err := c.ListOtherEngines(ctx, &client.ListExternalEnginesOptions{})
		if err != nil {
			return l, fmt.Errorf("failed to list other engines: %w", err)
		}
		addExternal(resp.OtherEngines)
	default:
		return l, fmt.Errorf("unknown engine type %q, want one of %s", engineType, strings.Join(engineTypes, ", "))
	}
	return l, nil
}

func (a *app) catalogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalogs",
		Short: "Catalogs",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List catalogs",
		Args:  cobra.NoArgs,
		RunE: a.run(func(ctx context.Context, c *client.Client, _ []string) (listing, error) {
			resp, err := c.ListCatalogs(ctx, &client.ListCatalogsOptions{})
			if err != nil {
				return listing{}, fmt.Errorf("failed to list catalogs: %w", err)
			}
			l := listing{
				columns: []string{"catalog_name", "catalog_type", "status", "sync_status", "associated_engines"},
				raw:     resp.Catalogs,
			}
			for _, cat := range resp.Catalogs {
				l.rows = append(l.rows, table.Row{
					str(cat.CatalogName), str(cat.CatalogType), str(cat.Status), str(cat.SyncStatus),
					strings.Join(cat.AssociatedEngines, ","),
				})
			}
			return l, nil
		}),
	})
	return cmd
}

func (a *app) schemasCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schemas",
		Short: "Schemas of a catalog",
	}
	list := &cobra.Command{
		Use:   "list CATALOG",
		Short: "List the schemas of a catalog",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(ctx context.Context, c *client.Client, args []string) (listing, error) {
			resp, err := c.ListSchemas(ctx, &client.ListSchemasOptions{CatalogID: args[0], EngineID: a.v.GetString("engine")})
			if err != nil {
				return listing{}, fmt.Errorf("failed to list schemas of %s: %w", args[0], err)
			}
			l := listing{columns: []string{"schema"}, raw: resp.Schemas}
			for _, s := range resp.Schemas {
				l.rows = append(l.rows, table.Row{s})
			}
			return l, nil
		}),
	}
	list.Flags().String("engine", "", "The engine used to read the catalog")
	cmd.AddCommand(list)
	return cmd
}

func (a *app) tablesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Tables of a schema",
	}
	list := &cobra.Command{
		Use:   "list CATALOG SCHEMA",
		Short: "List the tables of a schema",
		Args:  cobra.ExactArgs(2),
		RunE: a.run(func(ctx context.Context, c *client.Client, args []string) (listing, error) {
			resp, err := c.ListTables(ctx, &client.ListTablesOptions{
				CatalogID: args[0],
				SchemaID:  args[1],
				EngineID:  a.v.GetString("engine"),
			})
			if err != nil {
				return listing{}, fmt.Errorf("failed to list tables of %s.%s: %w", args[0], args[1], err)
			}
			l := listing{columns: []string{"table_name", "columns"}, raw: resp.Tables}
			for _, t := range resp.Tables {
				l.rows = append(l.rows, table.Row{str(t.TableName), len(t.Columns)})
			}
			return l, nil
		}),
	}
	list.Flags().String("engine", "", "The engine used to read the catalog")
	cmd.AddCommand(list)
	return cmd
}

func (a *app) ingestionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingestion",
		Short: "Ingestion jobs",
	}
	columns := []string{"job_id", "status", "source_data_files", "target_table", "engine_id", "start_timestamp"}
	row := func(j client.IngestionJob) table.Row {
		return table.Row{str(j.JobID), str(j.Status), str(j.SourceDataFiles), str(j.TargetTable), str(j.EngineID), str(j.StartTimestamp)}
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List all ingestion jobs",
		Args:  cobra.NoArgs,
		RunE: a.run(func(ctx context.Context, c *client.Client, _ []string) (listing, error) {
			opts := &client.ListIngestionJobsOptions{}
			if n := a.v.GetInt64("page-size"); n > 0 {
				opts.JobsPerPage = &n
			}
			pager, err := c.NewIngestionJobsPager(opts)
			if err != nil {
				return listing{}, err
			}

			l := listing{columns: columns}
			jobs := []client.IngestionJob{}
			for job, err := range pager.Iterator(ctx) {
				if err != nil {
					return listing{}, fmt.Errorf("failed to list ingestion jobs: %w", err)
				}
				jobs = append(jobs, job)
				l.rows = append(l.rows, row(job))
			}
			l.raw = jobs
			return l, nil
		}),
	}
	list.Flags().Int64("page-size", 0, "Jobs fetched per request (server default when 0)")

	cmd.AddCommand(list, &cobra.Command{
		Use:   "get JOB_ID",
		Short: "Show one ingestion job",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(ctx context.Context, c *client.Client, args []string) (listing, error) {
			job, err := c.GetIngestionJob(ctx, &client.GetIngestionJobOptions{JobID: args[0]})
			if err != nil {
				return listing{}, fmt.Errorf("failed to get ingestion job %s: %w", args[0], err)
			}
			return listing{columns: columns, rows: []table.Row{row(*job)}, raw: job}, nil
		}),
	})
	return cmd
}

func (a *app) queryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query SQL",
		Short: "Run a SQL statement on an engine",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(ctx context.Context, c *client.Client, args []string) (listing, error) {
			opts := &client.CreateExecuteQueryOptions{
				EngineID:  a.v.GetString("engine"),
				SQLString: args[0],
			}
			if v := a.v.GetString("catalog"); v != "" {
				opts.CatalogName = &v
			}
			if v := a.v.GetString("schema"); v != "" {
				opts.SchemaName = &v
			}

			resp, err := c.CreateExecuteQuery(ctx, opts)
			if err != nil {
				return listing{}, fmt.Errorf("query failed: %w", err)
			}

			var rows [][]string
			if resp.Response != nil {
				rows = resp.Response.Result
			}
			l := listing{raw: rows}
			width := 0
			for _, r := range rows {
				width = max(width, len(r))
			}
			for i := range width {
				l.columns = append(l.columns, fmt.Sprintf("column_%d", i+1))
			}
			for _, r := range rows {
				tr := make(table.Row, width)
				for i, v := range r {
					tr[i] = v
				}
				l.rows = append(l.rows, tr)
			}
			return l, nil
		}),
	}
	cmd.Flags().String("engine", "", "The engine that runs the statement")
	cmd.Flags().String("catalog", "", "Default catalog for unqualified names")
	cmd.Flags().String("schema", "", "Default schema for unqualified names")
	return cmd
}
