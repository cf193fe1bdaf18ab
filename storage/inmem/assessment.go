package inmemdb

import (
	"math"

	"github.com/jogaaurora/aurora/core"
	"github.com/jogaaurora/aurora/core/assessment"
	"github.com/jogaaurora/aurora/core/student"
)

// Reference labels. The bands are coarse approximations used only to populate the development data.
const (
	RefUnderweight = "Baixo peso"
	RefNormal      = "Normal"
	RefOverweight  = "Sobrepeso"
	RefObese       = "Obesidade"

	RefNoRisk   = "Sem risco"
	RefHighRisk = "Risco elevado"

	RefHealthy = "Zona saudável"
	RefRisk    = "Zona de risco"
)

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// BMI computes the body mass index, height in centimeters.
func BMI(weight, height float64) float64 {
	if height <= 0 {
		return 0
	}
	m := height / 100
	return round2(weight / (m * m))
}

func BMIReference(bmi float64) string {
	switch {
	case bmi < 18.5:
		return RefUnderweight
	case bmi < 25:
		return RefNormal
	case bmi < 30:
		return RefOverweight
	default:
		return RefObese
	}
}

func WaistHeightReference(ratio float64) string {
	if ratio < 0.5 {
		return RefNoRisk
	}
	return RefHighRisk
}

func healthyIf(ok bool) string {
	if ok {
		return RefHealthy
	}
	return RefRisk
}

func (db *DB) measurementOf(rec *measurementRecord) assessment.BodyMeasurement {
	f := rec.Form
	m := assessment.BodyMeasurement{
		ID:          rec.ID,
		Student:     db.studentRef(rec.StudentID),
		CollectedAt: f.CollectedAt,
		Waist:       f.Waist,
		Weight:      f.Weight,
		Height:      f.Height,
		BMI:         BMI(f.Weight, f.Height),
	}
	m.BMIReference = BMIReference(m.BMI)
	if f.Height > 0 {
		m.WaistHeightRatio = round2(f.Waist / f.Height)
	}
	m.WaistHeightRatioReference = WaistHeightReference(m.WaistHeightRatio)
	return m
}

func (db *DB) physicalTestOf(rec *physicalTestRecord) assessment.PhysicalTest {
	f := rec.Form
	return assessment.PhysicalTest{
		ID:                    rec.ID,
		Student:               db.studentRef(rec.StudentID),
		CollectedAt:           f.CollectedAt,
		SixMinutes:            f.SixMinutes,
		SixMinutesReference:   healthyIf(f.SixMinutes >= 800),
		Flex:                  f.Flex,
		FlexReference:         healthyIf(f.Flex >= 20),
		RML:                   f.RML,
		RMLReference:          healthyIf(f.RML >= 20),
		TwentyMeters:          f.TwentyMeters,
		TwentyMetersReference: healthyIf(f.TwentyMeters <= 4.5),
		TwoKgThrow:            f.TwoKgThrow,
		TwoKgThrowReference:   healthyIf(f.TwoKgThrow >= 250),
	}
}

func (db *DB) studentRef(id string) *assessment.StudentRef {
	ref := &assessment.StudentRef{ID: id}
	if s, ok := db.students[id]; ok {
		ref.Name = s.Name
	}
	return ref
}

func (db *DB) QueryMeasurements(page core.PageRequest) core.Page[assessment.BodyMeasurement] {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	all := make([]assessment.BodyMeasurement, 0, len(db.measurements))
	for _, rec := range db.measurements {
		all = append(all, db.measurementOf(rec))
	}
	sortStable(all, func(a, b assessment.BodyMeasurement) bool { return b.CollectedAt.Before(a.CollectedAt) })
	return core.NewPage(all, page)
}

func (db *DB) GetMeasurement(id string) (assessment.BodyMeasurement, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	rec, ok := db.measurements[id]
	if !ok {
		return assessment.BodyMeasurement{}, assessment.ErrNotFound
	}
	return db.measurementOf(rec), nil
}

func (db *DB) InsertMeasurement(studentID string, form assessment.MeasurementForm) (assessment.BodyMeasurement, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	if _, ok := db.students[studentID]; !ok {
		return assessment.BodyMeasurement{}, student.ErrNotFound
	}
	form.CollectedAt = db.resolveDate(form.CollectedAt)
	rec := &measurementRecord{ID: newID(), StudentID: studentID, Form: form}
	db.measurements[rec.ID] = rec
	return db.measurementOf(rec), nil
}

func (db *DB) UpdateMeasurement(id string, form assessment.MeasurementForm) (assessment.BodyMeasurement, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	rec, ok := db.measurements[id]
	if !ok {
		return assessment.BodyMeasurement{}, assessment.ErrNotFound
	}
	if form.CollectedAt.IsZero() {
		form.CollectedAt = rec.Form.CollectedAt
	}
	rec.Form = form
	return db.measurementOf(rec), nil
}

func (db *DB) DeleteMeasurement(id string) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	if _, ok := db.measurements[id]; !ok {
		return assessment.ErrNotFound
	}
	delete(db.measurements, id)
	return nil
}

func (db *DB) QueryPhysicalTests(page core.PageRequest) core.Page[assessment.PhysicalTest] {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	all := make([]assessment.PhysicalTest, 0, len(db.tests))
	for _, rec := range db.tests {
		all = append(all, db.physicalTestOf(rec))
	}
	sortStable(all, func(a, b assessment.PhysicalTest) bool { return b.CollectedAt.Before(a.CollectedAt) })
	return core.NewPage(all, page)
}

func (db *DB) GetPhysicalTest(id string) (assessment.PhysicalTest, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	rec, ok := db.tests[id]
	if !ok {
		return assessment.PhysicalTest{}, assessment.ErrNotFound
	}
	return db.physicalTestOf(rec), nil
}

func (db *DB) InsertPhysicalTest(studentID string, form assessment.PhysicalTestForm) (assessment.PhysicalTest, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	if _, ok := db.students[studentID]; !ok {
		return assessment.PhysicalTest{}, student.ErrNotFound
	}
	form.CollectedAt = db.resolveDate(form.CollectedAt)
	rec := &physicalTestRecord{ID: newID(), StudentID: studentID, Form: form}
	db.tests[rec.ID] = rec
	return db.physicalTestOf(rec), nil
}

func (db *DB) UpdatePhysicalTest(id string, form assessment.PhysicalTestForm) (assessment.PhysicalTest, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	rec, ok := db.tests[id]
	if !ok {
		return assessment.PhysicalTest{}, assessment.ErrNotFound
	}
	if form.CollectedAt.IsZero() {
		form.CollectedAt = rec.Form.CollectedAt
	}
	rec.Form = form
	return db.physicalTestOf(rec), nil
}

func (db *DB) DeletePhysicalTest(id string) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	if _, ok := db.tests[id]; !ok {
		return assessment.ErrNotFound
	}
	delete(db.tests, id)
	return nil
}
