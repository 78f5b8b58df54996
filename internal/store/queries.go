package store

// SQL query constants organized by entity. All SQL lives here;
// PostgresStore methods reference these constants.

// Sales ledger queries.
const (
	queryInsertSalesRecord = `
		INSERT INTO sales_records (
			source, dealer_name,
			make, model, year, variant, variant_family,
			body, transmission, drivetrain, engine,
			sale_date, days_in_stock, sell_price, total_cost, gross_profit,
			created_at
		) VALUES (
			@source, @dealer_name,
			@make, @model, @year, @variant, @variant_family,
			@body, @transmission, @drivetrain, @engine,
			@sale_date, @days_in_stock, @sell_price, @total_cost, @gross_profit,
			now()
		)
		RETURNING id, created_at`

	queryGetSalesRecord = `
		SELECT id, source, dealer_name,
			make, model, year, COALESCE(variant, ''), COALESCE(variant_family, ''),
			COALESCE(body, ''), COALESCE(transmission, ''), COALESCE(drivetrain, ''), COALESCE(engine, ''),
			COALESCE(sale_date, 'epoch'::timestamptz), days_in_stock, sell_price, total_cost, gross_profit,
			created_at
		FROM sales_records
		WHERE id = $1`

	queryCountGrossMismatches = `
		SELECT COUNT(*) FROM sales_records
		WHERE gross_profit <> sell_price - total_cost`
)

// Pricing audit queries.
const (
	queryInsertPriceAudit = `
		INSERT INTO price_audits (
			query, result, verdict, n_comps, created_at
		) VALUES (
			@query, @result, @verdict, @n_comps, now()
		)
		RETURNING id, created_at`

	queryGetPriceAudit = `
		SELECT id, query, result, verdict, n_comps, created_at
		FROM price_audits
		WHERE id = $1`
)

// Aggregate queries.
const querySystemState = `
	SELECT
		(SELECT COUNT(*) FROM sales_records) AS records_total,
		(SELECT COUNT(*) FROM sales_records WHERE total_cost <= 0) AS records_missing_cost,
		(SELECT COUNT(*) FROM sales_records WHERE sale_date IS NULL) AS records_missing_date,
		(SELECT COUNT(*) FROM price_audits) AS audits_total,
		(SELECT COUNT(*) FROM price_audits WHERE verdict = 'ESCALATE') AS escalations_total,
		(SELECT COUNT(*) FROM sales_records WHERE gross_profit <> sell_price - total_cost) AS gross_mismatches`

// Job run queries.
const (
	queryInsertJobRun = `
		INSERT INTO job_runs (job_name, started_at, status)
		VALUES ($1, now(), 'running')
		RETURNING id`

	queryCompleteJobRun = `
		UPDATE job_runs SET
			completed_at = now(),
			status = $2,
			error_text = $3,
			rows_affected = $4
		WHERE id = $1`

	queryListJobRuns = `
		SELECT id, job_name, started_at, completed_at, status,
			COALESCE(error_text, ''), rows_affected
		FROM job_runs
		WHERE ($1 = '' OR job_name = $1)
		ORDER BY started_at DESC
		LIMIT $2`
)
