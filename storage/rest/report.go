package reststore

import (
	"context"
	"net/url"

	"github.com/jogaaurora/aurora/core/report"
	"github.com/jogaaurora/aurora/services/httpapi"
)

type reportRepository struct {
	c Client
}

var _ report.Repository = (*reportRepository)(nil)

func NewReportRepository(c Client) report.Repository {
	return &reportRepository{c: c}
}

func (repo *reportRepository) download(ctx context.Context, path string, r report.Range) (report.Binary, error) {
	q := url.Values{}
	q.Set(startDateParam, r.Start.String())
	q.Set(endDateParam, r.End.String())
	dl, err := repo.c.Download(ctx, path, httpapi.WithQuery(q))
	if err != nil {
		return report.Binary{}, err
	}
	return report.Binary{Data: dl.Data, ContentDisposition: dl.ContentDisposition}, nil
}

func (repo *reportRepository) AttendanceReport(ctx context.Context, r report.Range) (report.Binary, error) {
	return repo.download(ctx, join(attendancePath, r.ClassroomID)+"/"+reportSuffix, r)
}

func (repo *reportRepository) StudentsReport(ctx context.Context, r report.Range) (report.Binary, error) {
	return repo.download(ctx, join(studentsPath, "turma", r.ClassroomID)+"/"+reportSuffix, r)
}
