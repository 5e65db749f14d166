package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-report-engine/internal/domain/report"
	"github.com/cmlabs-hris/payroll-report-engine/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

const reportColumns = `
	id, report_type, title, description, generated_by, status,
	department, start_date, end_date, year, month,
	data, summary, created_at, updated_at`

// Save implements report.ReportRepository.
func (r *reportRepositoryImpl) Save(ctx context.Context, rep report.Report) (report.Report, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to generate report id: %w", err)
	}
	rep.ID = id.String()

	data, summary, err := encodeReportBody(rep)
	if err != nil {
		return report.Report{}, err
	}

	query := `
		INSERT INTO reports (
			id, report_type, title, description, generated_by, status,
			department, start_date, end_date, year, month,
			data, summary, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11,
			$12, $13, NOW(), NOW()
		) RETURNING created_at, updated_at
	`
	err = q.QueryRow(ctx, query,
		rep.ID, rep.Kind, rep.Title, rep.Description, rep.GeneratedBy, rep.Status,
		rep.Params.Department, rep.Params.StartDate, rep.Params.EndDate, rep.Params.Year, rep.Params.Month,
		data, summary,
	).Scan(&rep.CreatedAt, &rep.UpdatedAt)
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to save report: %w", err)
	}

	return rep, nil
}

// Finalize implements report.ReportRepository.
func (r *reportRepositoryImpl) Finalize(ctx context.Context, rep report.Report) (report.Report, error) {
	q := GetQuerier(ctx, r.db)

	data, summary, err := encodeReportBody(rep)
	if err != nil {
		return report.Report{}, err
	}

	query := `
		UPDATE reports
		SET status = $2, description = $3, data = $4, summary = $5, updated_at = NOW()
		WHERE id = $1 AND status = 'generating'
		RETURNING updated_at
	`
	err = q.QueryRow(ctx, query, rep.ID, rep.Status, rep.Description, data, summary).Scan(&rep.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			if _, findErr := r.FindByID(ctx, rep.ID); findErr != nil {
				return report.Report{}, findErr
			}
			return report.Report{}, report.ErrReportAlreadyFinalized
		}
		return report.Report{}, fmt.Errorf("failed to finalize report: %w", err)
	}

	return rep, nil
}

// FindByID implements report.ReportRepository.
func (r *reportRepositoryImpl) FindByID(ctx context.Context, id string) (report.Report, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1`
	rep, err := scanReport(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return report.Report{}, report.ErrReportNotFound
		}
		return report.Report{}, fmt.Errorf("failed to find report: %w", err)
	}
	return rep, nil
}

// FindAll implements report.ReportRepository.
func (r *reportRepositoryImpl) FindAll(ctx context.Context, filter report.ReportFilter) ([]report.Report, int64, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.Kind != nil {
		conditions = append(conditions, fmt.Sprintf("report_type = $%d", argIdx))
		args = append(args, *filter.Kind)
		argIdx++
	}
	if filter.Department != nil {
		conditions = append(conditions, fmt.Sprintf("department = $%d", argIdx))
		args = append(args, *filter.Department)
		argIdx++
	}
	if filter.Year != nil {
		conditions = append(conditions, fmt.Sprintf("year = $%d", argIdx))
		args = append(args, *filter.Year)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM reports WHERE %s", whereClause)
	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM reports
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, reportColumns, whereClause, argIdx, argIdx+1)
	listArgs := append(append([]interface{}{}, args...), filter.Limit, filter.Offset())

	var (
		total   int64
		reports []report.Report
	)
	count := func(ctx context.Context) error {
		if err := GetQuerier(ctx, r.db).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
			return fmt.Errorf("failed to count reports: %w", err)
		}
		return nil
	}
	list := func(ctx context.Context) error {
		rows, err := GetQuerier(ctx, r.db).Query(ctx, listQuery, listArgs...)
		if err != nil {
			return fmt.Errorf("failed to list reports: %w", err)
		}
		defer rows.Close()

		reports = []report.Report{}
		for rows.Next() {
			rep, err := scanReport(rows)
			if err != nil {
				return fmt.Errorf("failed to scan report: %w", err)
			}
			reports = append(reports, rep)
		}
		return rows.Err()
	}

	// A transaction's connection cannot serve two queries at once.
	if inTx(ctx) {
		if err := count(ctx); err != nil {
			return nil, 0, err
		}
		if err := list(ctx); err != nil {
			return nil, 0, err
		}
		return reports, total, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return count(gctx) })
	g.Go(func() error { return list(gctx) })
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

// Delete implements report.ReportRepository.
func (r *reportRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return report.ErrReportNotFound
	}
	return nil
}

// FailStale implements report.ReportRepository.
func (r *reportRepositoryImpl) FailStale(ctx context.Context, olderThan time.Time, reason string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE reports
		SET status = 'failed', description = $2, updated_at = NOW()
		WHERE status = 'generating' AND created_at < $1
	`
	commandTag, err := q.Exec(ctx, query, olderThan, reason)
	if err != nil {
		return 0, fmt.Errorf("failed to fail stale reports: %w", err)
	}
	return commandTag.RowsAffected(), nil
}

func encodeReportBody(rep report.Report) (data []byte, summary []byte, err error) {
	if rep.Data != nil {
		data, err = json.Marshal(rep.Data)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to encode report data: %w", err)
		}
	}
	summary, err = json.Marshal(rep.Summary)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode report summary: %w", err)
	}
	return data, summary, nil
}

func scanReport(row pgx.Row) (report.Report, error) {
	var (
		rep         report.Report
		dataJSON    []byte
		summaryJSON []byte
	)
	if err := row.Scan(
		&rep.ID, &rep.Kind, &rep.Title, &rep.Description, &rep.GeneratedBy, &rep.Status,
		&rep.Params.Department, &rep.Params.StartDate, &rep.Params.EndDate, &rep.Params.Year, &rep.Params.Month,
		&dataJSON, &summaryJSON, &rep.CreatedAt, &rep.UpdatedAt,
	); err != nil {
		return report.Report{}, err
	}

	data, err := report.DecodePayload(rep.Kind, dataJSON)
	if err != nil {
		return report.Report{}, err
	}
	rep.Data = data

	if len(summaryJSON) > 0 {
		if err := json.Unmarshal(summaryJSON, &rep.Summary); err != nil {
			return report.Report{}, fmt.Errorf("decode report summary: %w", err)
		}
	}

	return rep, nil
}
