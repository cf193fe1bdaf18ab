package assessment

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jogaaurora/aurora/core"
)

var today = time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)

func bornYearsAgo(years int) core.Date {
	return core.NewDate(today.Year()-years, today.Month(), today.Day())
}

func TestAge(t *testing.T) {
	tests := []struct {
		name  string
		birth core.Date
		want  int
	}{
		{"birthday today", core.NewDate(2015, time.June, 15), 10},
		{"birthday tomorrow", core.NewDate(2015, time.June, 16), 9},
		{"birthday last month", core.NewDate(2015, time.May, 31), 10},
		{"birthday next month", core.NewDate(2015, time.July, 1), 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Age(tt.birth, today); got != tt.want {
				t.Errorf("Age() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCheckEligibility(t *testing.T) {
	tests := []struct {
		name        string
		age         int
		gender      bool
		wantBlocked bool
		wantTitle   string
	}{
		{name: "youngest allowed", age: 6, gender: true},
		{name: "oldest allowed", age: 17, gender: true},
		{name: "too young", age: 5, gender: true, wantBlocked: true, wantTitle: "Idade fora do permitido"},
		{name: "too old", age: 18, gender: true, wantBlocked: true, wantTitle: "Idade fora do permitido"},
		{name: "gender missing", age: 10, gender: false, wantBlocked: true, wantTitle: "Gênero não informado"},
		{name: "both", age: 3, gender: false, wantBlocked: true, wantTitle: "Dados Incompletos ou Inválidos"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subj := Subject{StudentID: "s1", BirthDate: bornYearsAgo(tt.age), GenderSpecified: tt.gender}
			err := CheckEligibility(subj, KindBodyMeasurement, today)
			if !tt.wantBlocked {
				assert.NoError(t, err)
				return
			}
			var eErr *EligibilityError
			require.True(t, errors.As(err, &eErr))
			assert.Equal(t, tt.wantTitle, eErr.Title)
			assert.Equal(t, tt.age < MinAge || tt.age > MaxAge, eErr.AgeInvalid)
			assert.Equal(t, !tt.gender, eErr.GenderMissing)
			assert.Contains(t, eErr.Description, "medidas corporais")
		})
	}
}

func TestCheckEligibilityNamesBothCauses(t *testing.T) {
	err := CheckEligibility(Subject{BirthDate: bornYearsAgo(20)}, KindPhysicalTest, today)
	msg := core.Notify(err)
	assert.True(t, strings.Contains(msg, "gênero"), msg)
	assert.True(t, strings.Contains(msg, "idade"), msg)
	assert.Contains(t, msg, "testes físicos")
}

type measurementRepoMock struct {
	inserts int
	form    MeasurementForm
}

func (r *measurementRepoMock) QueryMeasurements(context.Context, core.PageRequest) (core.Page[BodyMeasurement], error) {
	return core.Page[BodyMeasurement]{}, nil
}

func (r *measurementRepoMock) GetMeasurement(context.Context, string) (BodyMeasurement, error) {
	return BodyMeasurement{}, ErrNotFound
}

func (r *measurementRepoMock) InsertMeasurement(_ context.Context, studentID string, form MeasurementForm) (BodyMeasurement, error) {
	r.inserts++
	r.form = form
	return BodyMeasurement{ID: "m1", Student: &StudentRef{ID: studentID}, Weight: form.Weight}, nil
}

func (r *measurementRepoMock) UpdateMeasurement(_ context.Context, id string, form MeasurementForm) (BodyMeasurement, error) {
	return BodyMeasurement{ID: id}, nil
}

func (r *measurementRepoMock) DeleteMeasurement(context.Context, string) error { return nil }

type testRepoMock struct {
	inserts int
}

func (r *testRepoMock) QueryPhysicalTests(context.Context, core.PageRequest) (core.Page[PhysicalTest], error) {
	return core.Page[PhysicalTest]{}, nil
}

func (r *testRepoMock) GetPhysicalTest(context.Context, string) (PhysicalTest, error) {
	return PhysicalTest{}, ErrNotFound
}

func (r *testRepoMock) InsertPhysicalTest(context.Context, string, PhysicalTestForm) (PhysicalTest, error) {
	r.inserts++
	return PhysicalTest{ID: "t1"}, nil
}

func (r *testRepoMock) UpdatePhysicalTest(_ context.Context, id string, _ PhysicalTestForm) (PhysicalTest, error) {
	return PhysicalTest{ID: id}, nil
}

func (r *testRepoMock) DeletePhysicalTest(context.Context, string) error { return nil }

func newService() (*Service, *measurementRepoMock, *testRepoMock) {
	m, pt := &measurementRepoMock{}, &testRepoMock{}
	svc := NewService(m, pt, core.NewValidator())
	svc.nowFunc = func() time.Time { return today }
	return svc, m, pt
}

func TestService_AddMeasurement(t *testing.T) {
	ctx := context.Background()
	form := MeasurementForm{Waist: 60, Weight: 35.5, Height: 140}

	svc, repo, _ := newService()
	_, err := svc.AddMeasurement(ctx, Subject{StudentID: "s1", BirthDate: bornYearsAgo(4), GenderSpecified: true}, form)
	var eErr *EligibilityError
	assert.True(t, errors.As(err, &eErr))
	assert.Equal(t, 0, repo.inserts, "ineligible students never reach the network")

	_, err = svc.AddMeasurement(ctx, Subject{StudentID: "s1", BirthDate: bornYearsAgo(10), GenderSpecified: true}, MeasurementForm{})
	var vErr *core.ValidationError
	assert.True(t, errors.As(err, &vErr))
	assert.Equal(t, 0, repo.inserts)

	m, err := svc.AddMeasurement(ctx, Subject{StudentID: "s1", BirthDate: bornYearsAgo(10), GenderSpecified: true}, form)
	require.NoError(t, err)
	assert.Equal(t, "s1", m.Student.ID)
	assert.Equal(t, 1, repo.inserts)
	assert.Equal(t, "2025-06-15", repo.form.CollectedAt.String(), "collection date defaults to today")
}

func TestService_AddPhysicalTest(t *testing.T) {
	ctx := context.Background()
	form := PhysicalTestForm{SixMinutes: 900, Flex: 20, RML: 25, TwentyMeters: 4.2, TwoKgThrow: 280}

	svc, _, repo := newService()
	_, err := svc.AddPhysicalTest(ctx, Subject{StudentID: "s1", BirthDate: bornYearsAgo(12)}, form)
	var eErr *EligibilityError
	require.True(t, errors.As(err, &eErr))
	assert.True(t, eErr.GenderMissing)
	assert.Equal(t, 0, repo.inserts)

	_, err = svc.AddPhysicalTest(ctx, Subject{StudentID: "s1", BirthDate: bornYearsAgo(12), GenderSpecified: true}, form)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.inserts)
}
