package student

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jogaaurora/aurora/core"
	"github.com/jogaaurora/aurora/core/assessment"
)

type queryCall struct {
	page   core.PageRequest
	filter Filter
}

type repoMock struct {
	queries []queryCall
	err     error
	created []Form
}

func (r *repoMock) QueryStudents(_ context.Context, page core.PageRequest, filter Filter) (core.Page[Student], error) {
	r.queries = append(r.queries, queryCall{page, filter})
	if r.err != nil {
		return core.Page[Student]{}, r.err
	}
	all := []Student{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	return core.NewPage(all, page), nil
}

func (r *repoMock) GetStudent(_ context.Context, id string) (Student, error) {
	return Student{ID: id}, nil
}

func (r *repoMock) CreateStudent(_ context.Context, form Form) (Student, error) {
	r.created = append(r.created, form)
	return Student{ID: "new", Name: form.Name}, nil
}

func (r *repoMock) UpdateStudent(_ context.Context, id string, form Form) (Student, error) {
	return Student{ID: id, Name: form.Name}, nil
}

func (r *repoMock) DeleteStudent(context.Context, string) error { return nil }

func TestGenderMapping(t *testing.T) {
	for _, g := range Genders {
		assert.Equal(t, g, ToFrontendGender(ToBackendGender(g)))
	}
	tests := map[string]GenderCode{"m": CodeMale, "Feminino": CodeFemale, "não informado": CodeUnspecified, "N": CodeUnspecified}
	for in, want := range tests {
		got, err := ParseGender(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseGender("X")
	assert.True(t, errors.Is(err, ErrUnknownGender))
}

func TestStudentJSON(t *testing.T) {
	var s Student
	data := `{"id":"1","nome":"Ana","data_nascimento":"2014-03-02","genero":"Feminino","turma":{"id":"t1","nome":"5º Ano"},"medidas_corporais":[],"testes_fisicos":[]}`
	require.NoError(t, json.Unmarshal([]byte(data), &s))
	assert.Equal(t, CodeFemale, s.Gender)
	assert.Equal(t, Female, s.GenderLabel())
	assert.Equal(t, "t1", s.Classroom.ID)
	assert.Equal(t, "2014-03-02", s.BirthDate.String())
}

func TestFilterValues(t *testing.T) {
	f := Filter{
		Name:        " Ana ",
		BornFrom:    core.NewDate(2010, time.January, 1),
		BornTo:      core.NewDate(2015, time.December, 31),
		Gender:      CodeFemale,
		ClassroomID: "t1",
	}
	v := f.Values()
	assert.Equal(t, "Ana", v.Get("nome"))
	assert.Equal(t, "2010-01-01", v.Get("data_nascimento_ini"))
	assert.Equal(t, "2015-12-31", v.Get("data_nascimento_fim"))
	assert.Equal(t, "F", v.Get("genero"))
	assert.Equal(t, "t1", v.Get("turma_id"))

	assert.Empty(t, Filter{}.Values())
	assert.True(t, Filter{}.IsZero())
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	repo := &repoMock{}
	search := NewSearch(NewService(repo, core.NewValidator()), nil)

	st, err := search.Search(ctx, SearchOptions{Filter: Filter{Name: "Ana"}})
	require.NoError(t, err)
	assert.Equal(t, 0, st.Page)
	assert.Equal(t, core.DefaultPageSize, st.Size)
	require.NotNil(t, st.Result)

	st, err = search.Paginate(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Page)
	assert.Equal(t, "Ana", repo.queries[1].filter.Name, "pagination keeps the filter")

	// new filter replaces the old one, page reset
	st, err = search.Search(ctx, SearchOptions{Filter: Filter{Gender: CodeMale}})
	require.NoError(t, err)
	assert.Equal(t, 0, st.Page)
	assert.Equal(t, Filter{Gender: CodeMale}, st.Filter)

	page := 1
	st, err = search.Search(ctx, SearchOptions{Page: &page})
	require.NoError(t, err)
	assert.Equal(t, 1, st.Page)
	assert.Equal(t, Filter{Gender: CodeMale}, st.Filter, "zero filter keeps the current one")

	st, err = search.ChangePageSize(ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Page)
	assert.Equal(t, core.PageRequest{Page: 0, Size: 20}, repo.queries[len(repo.queries)-1].page)

	calls := len(repo.queries)
	search.Clear()
	st = search.State()
	assert.True(t, st.Filter.IsZero())
	assert.Nil(t, st.Result)
	assert.Equal(t, calls, len(repo.queries), "clear does not refetch")
}

func TestSearchReplacesFilter(t *testing.T) {
	ctx := context.Background()
	repo := &repoMock{}
	search := NewSearch(NewService(repo, core.NewValidator()), nil)

	_, err := search.Search(ctx, SearchOptions{Filter: Filter{Name: "Ana", Gender: CodeFemale}})
	require.NoError(t, err)
	st, err := search.Search(ctx, SearchOptions{Filter: Filter{Gender: CodeFemale}})
	require.NoError(t, err)

	require.Len(t, repo.queries, 2)
	assert.Equal(t, Filter{Gender: CodeFemale}, repo.queries[1].filter, "name dropped from the second request")
	assert.Equal(t, Filter{Gender: CodeFemale}, st.Filter)
}

// clampingRepo answers every query with its last page, as the backend does for out of range requests.
type clampingRepo struct {
	repoMock
	lastPage int
	size     int
}

func (r *clampingRepo) QueryStudents(ctx context.Context, page core.PageRequest, filter Filter) (core.Page[Student], error) {
	r.queries = append(r.queries, queryCall{page, filter})
	all := []Student{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	return core.NewPage(all, core.PageRequest{Page: r.lastPage, Size: r.size}), nil
}

func TestSearchFollowsReturnedPage(t *testing.T) {
	ctx := context.Background()
	repo := &clampingRepo{lastPage: 1, size: 2}
	search := NewSearch(NewService(repo, core.NewValidator()), nil)

	st, err := search.Paginate(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, core.PageRequest{Page: 7, Size: core.DefaultPageSize}, repo.queries[0].page)
	assert.Equal(t, 1, st.Page)
	assert.Equal(t, 2, st.Size)
	assert.Equal(t, st, search.State())

	_, err = search.Paginate(ctx, st.Page-1)
	require.NoError(t, err)
	assert.Equal(t, core.PageRequest{Page: 0, Size: 2}, repo.queries[1].page, "next request starts from the returned position")
}

func TestSearchKeepsResultOnError(t *testing.T) {
	ctx := context.Background()
	repo := &repoMock{}
	search := NewSearch(NewService(repo, core.NewValidator()), nil)

	st, err := search.Search(ctx, SearchOptions{})
	require.NoError(t, err)
	prev := st.Result

	repo.err = errors.New("boom")
	st, err = search.Paginate(ctx, 1)
	assert.Error(t, err)
	assert.Equal(t, prev, st.Result)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name       string
		form       Form
		wantFields []string
	}{
		{
			name: "valid",
			form: Form{Name: " Ana Souza ", BirthDate: core.NewDate(2014, 3, 2), Gender: CodeFemale, ClassroomID: "t1"},
		},
		{
			name:       "missing everything",
			form:       Form{},
			wantFields: []string{"nome", "genero", "turma", "data_nascimento"},
		},
		{
			name:       "invalid gender",
			form:       Form{Name: "Ana Souza", BirthDate: core.NewDate(2014, 3, 2), Gender: "X", ClassroomID: "t1"},
			wantFields: []string{"genero"},
		},
		{
			name:       "only birth date missing",
			form:       Form{Name: "Ana Souza", Gender: CodeFemale, ClassroomID: "t1"},
			wantFields: []string{"data_nascimento"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &repoMock{}
			svc := NewService(repo, core.NewValidator())
			_, err := svc.Create(ctx, tt.form)
			if len(tt.wantFields) == 0 {
				require.NoError(t, err)
				assert.Equal(t, "Ana Souza", repo.created[0].Name)
				return
			}
			var vErr *core.ValidationError
			require.True(t, errors.As(err, &vErr), "Create() error = %v", err)
			for _, fld := range tt.wantFields {
				_, ok := vErr.Field(fld)
				assert.True(t, ok, "missing error for %s in %v", fld, vErr.Fields)
			}
			assert.Empty(t, repo.created)
		})
	}
}

func TestCheckEligibility(t *testing.T) {
	today := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	s := Student{ID: "1", BirthDate: core.NewDate(2014, 3, 2), Gender: CodeUnspecified}
	assert.Equal(t, 10, s.Age(today))

	err := CheckEligibility(s, assessment.KindBodyMeasurement, today)
	var eErr *assessment.EligibilityError
	require.True(t, errors.As(err, &eErr))
	assert.True(t, eErr.GenderMissing)
	assert.False(t, eErr.AgeInvalid)

	s.Gender = CodeMale
	assert.NoError(t, CheckEligibility(s, assessment.KindPhysicalTest, today))
}
