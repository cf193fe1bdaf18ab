package assessment

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/jogaaurora/aurora/core"
)

var ErrNotFound = errors.New("assessment not found")

type (
	MeasurementRepository interface {
		QueryMeasurements(ctx context.Context, page core.PageRequest) (core.Page[BodyMeasurement], error)
		GetMeasurement(ctx context.Context, id string) (BodyMeasurement, error)
		InsertMeasurement(ctx context.Context, studentID string, form MeasurementForm) (BodyMeasurement, error)
		UpdateMeasurement(ctx context.Context, id string, form MeasurementForm) (BodyMeasurement, error)
		DeleteMeasurement(ctx context.Context, id string) error
	}

	PhysicalTestRepository interface {
		QueryPhysicalTests(ctx context.Context, page core.PageRequest) (core.Page[PhysicalTest], error)
		GetPhysicalTest(ctx context.Context, id string) (PhysicalTest, error)
		InsertPhysicalTest(ctx context.Context, studentID string, form PhysicalTestForm) (PhysicalTest, error)
		UpdatePhysicalTest(ctx context.Context, id string, form PhysicalTestForm) (PhysicalTest, error)
		DeletePhysicalTest(ctx context.Context, id string) error
	}
)

type Service struct {
	measurements MeasurementRepository
	tests        PhysicalTestRepository
	validator    *core.Validator
	nowFunc      func() time.Time
}

func NewService(measurements MeasurementRepository, tests PhysicalTestRepository, validator *core.Validator) *Service {
	return &Service{
		measurements: measurements,
		tests:        tests,
		validator:    validator,
		nowFunc:      time.Now,
	}
}

// orToday defaults a missing collection date to today.
func (svc *Service) orToday(d core.Date) core.Date {
	if d.IsZero() {
		return core.DateOf(svc.nowFunc())
	}
	return d
}

// AddMeasurement refuses ineligible students before any network call.
func (svc *Service) AddMeasurement(ctx context.Context, subj Subject, form MeasurementForm) (BodyMeasurement, error) {
	if err := CheckEligibility(subj, KindBodyMeasurement, svc.nowFunc()); err != nil {
		return BodyMeasurement{}, err
	}
	form.CollectedAt = svc.orToday(form.CollectedAt)
	if err := svc.validator.Check(form); err != nil {
		return BodyMeasurement{}, err
	}
	m, err := svc.measurements.InsertMeasurement(ctx, subj.StudentID, form)
	return m, errors.Wrap(err, "inserting body measurement")
}

func (svc *Service) UpdateMeasurement(ctx context.Context, id string, form MeasurementForm) (BodyMeasurement, error) {
	form.CollectedAt = svc.orToday(form.CollectedAt)
	if err := svc.validator.Check(form); err != nil {
		return BodyMeasurement{}, err
	}
	m, err := svc.measurements.UpdateMeasurement(ctx, id, form)
	return m, errors.Wrap(err, "updating body measurement")
}

func (svc *Service) DeleteMeasurement(ctx context.Context, id string) error {
	return errors.Wrap(svc.measurements.DeleteMeasurement(ctx, id), "deleting body measurement")
}

// AddPhysicalTest refuses ineligible students before any network call.
func (svc *Service) AddPhysicalTest(ctx context.Context, subj Subject, form PhysicalTestForm) (PhysicalTest, error) {
	if err := CheckEligibility(subj, KindPhysicalTest, svc.nowFunc()); err != nil {
		return PhysicalTest{}, err
	}
	form.CollectedAt = svc.orToday(form.CollectedAt)
	if err := svc.validator.Check(form); err != nil {
		return PhysicalTest{}, err
	}
	pt, err := svc.tests.InsertPhysicalTest(ctx, subj.StudentID, form)
	return pt, errors.Wrap(err, "inserting physical test")
}

func (svc *Service) UpdatePhysicalTest(ctx context.Context, id string, form PhysicalTestForm) (PhysicalTest, error) {
	form.CollectedAt = svc.orToday(form.CollectedAt)
	if err := svc.validator.Check(form); err != nil {
		return PhysicalTest{}, err
	}
	pt, err := svc.tests.UpdatePhysicalTest(ctx, id, form)
	return pt, errors.Wrap(err, "updating physical test")
}

func (svc *Service) DeletePhysicalTest(ctx context.Context, id string) error {
	return errors.Wrap(svc.tests.DeletePhysicalTest(ctx, id), "deleting physical test")
}
