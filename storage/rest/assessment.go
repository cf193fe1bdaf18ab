package reststore

import (
	"context"

	"github.com/jogaaurora/aurora/core"
	"github.com/jogaaurora/aurora/core/assessment"
)

type studentID struct {
	ID string `json:"id"`
}

type measurementRepository struct {
	c Client
}

var _ assessment.MeasurementRepository = (*measurementRepository)(nil)

func NewMeasurementRepository(c Client) assessment.MeasurementRepository {
	return &measurementRepository{c: c}
}

type newMeasurement struct {
	Student studentID `json:"estudante"`
	assessment.MeasurementForm
}

func (repo *measurementRepository) QueryMeasurements(ctx context.Context, page core.PageRequest) (core.Page[assessment.BodyMeasurement], error) {
	return queryPage[assessment.BodyMeasurement](ctx, repo.c, measurementsPath, page, nil)
}

func (repo *measurementRepository) GetMeasurement(ctx context.Context, id string) (assessment.BodyMeasurement, error) {
	var m assessment.BodyMeasurement
	err := repo.c.Get(ctx, join(measurementsPath, id), &m)
	return m, notFound(err, assessment.ErrNotFound)
}

func (repo *measurementRepository) InsertMeasurement(ctx context.Context, sID string, form assessment.MeasurementForm) (assessment.BodyMeasurement, error) {
	var m assessment.BodyMeasurement
	err := repo.c.Post(ctx, measurementsPath, newMeasurement{Student: studentID{ID: sID}, MeasurementForm: form}, &m)
	return m, err
}

func (repo *measurementRepository) UpdateMeasurement(ctx context.Context, id string, form assessment.MeasurementForm) (assessment.BodyMeasurement, error) {
	var m assessment.BodyMeasurement
	err := repo.c.Put(ctx, join(measurementsPath, id), form, &m)
	return m, notFound(err, assessment.ErrNotFound)
}

func (repo *measurementRepository) DeleteMeasurement(ctx context.Context, id string) error {
	return notFound(repo.c.Delete(ctx, join(measurementsPath, id)), assessment.ErrNotFound)
}

type physicalTestRepository struct {
	c Client
}

var _ assessment.PhysicalTestRepository = (*physicalTestRepository)(nil)

func NewPhysicalTestRepository(c Client) assessment.PhysicalTestRepository {
	return &physicalTestRepository{c: c}
}

type newPhysicalTest struct {
	Student studentID `json:"estudante"`
	assessment.PhysicalTestForm
}

func (repo *physicalTestRepository) QueryPhysicalTests(ctx context.Context, page core.PageRequest) (core.Page[assessment.PhysicalTest], error) {
	return queryPage[assessment.PhysicalTest](ctx, repo.c, testsPath, page, nil)
}

func (repo *physicalTestRepository) GetPhysicalTest(ctx context.Context, id string) (assessment.PhysicalTest, error) {
	var pt assessment.PhysicalTest
	err := repo.c.Get(ctx, join(testsPath, id), &pt)
	return pt, notFound(err, assessment.ErrNotFound)
}

func (repo *physicalTestRepository) InsertPhysicalTest(ctx context.Context, sID string, form assessment.PhysicalTestForm) (assessment.PhysicalTest, error) {
	var pt assessment.PhysicalTest
	err := repo.c.Post(ctx, testsPath, newPhysicalTest{Student: studentID{ID: sID}, PhysicalTestForm: form}, &pt)
	return pt, err
}

func (repo *physicalTestRepository) UpdatePhysicalTest(ctx context.Context, id string, form assessment.PhysicalTestForm) (assessment.PhysicalTest, error) {
	var pt assessment.PhysicalTest
	err := repo.c.Put(ctx, join(testsPath, id), form, &pt)
	return pt, notFound(err, assessment.ErrNotFound)
}

func (repo *physicalTestRepository) DeletePhysicalTest(ctx context.Context, id string) error {
	return notFound(repo.c.Delete(ctx, join(testsPath, id)), assessment.ErrNotFound)
}
