package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"hrdash/domain/employee"
	"hrdash/internal"
	"hrdash/internal/analysis"
	"hrdash/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) Load(ctx context.Context, criteria employee.Criteria) ([]employee.Record, error) {
	args := m.Called(ctx, criteria)
	records, _ := args.Get(0).([]employee.Record)
	return records, args.Error(1)
}

var threeEmployees = []employee.Record{
	{Department: "A", Gender: "Male", JobRole: "Analyst", Attrition: true, Age: 30, MonthlyIncome: 4000, JobSatisfaction: 2},
	{Department: "A", Gender: "Female", JobRole: "Analyst", Age: 40, MonthlyIncome: 6000, JobSatisfaction: 4},
	{Department: "B", Gender: "Female", JobRole: "Manager", Age: 50, MonthlyIncome: 9000, JobSatisfaction: 3},
}

func setupRouter(src *mockSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewDashboardHandler(analysis.NewService(src, nil), nil).Register(r.Group("/api"))
	return r
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestDashboardHandler_AttritionByDepartment(t *testing.T) {
	src := new(mockSource)
	src.On("Load", mock.Anything, employee.Criteria{}).Return(threeEmployees, nil)

	rec := get(setupRouter(src), "/api/attrition-by-department")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.JSONEq(t, `{"labels":["A","B"],"total":[2,1],"attrition":[1,0],"rate":[50,0]}`, rec.Body.String())
}

func TestDashboardHandler_BindsQueryCriteria(t *testing.T) {
	src := new(mockSource)
	want := employee.Criteria{Gender: "Female", JobRole: "Sales Executive", Education: "3", Department: "R&D"}
	src.On("Load", mock.Anything, want).Return([]employee.Record{}, nil).Once()

	rec := get(setupRouter(src), "/api/kpis?gender=Female&job_role=Sales+Executive&education=3&department=R%26D")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total":0,"attrition_rate":0,"avg_age":0,"avg_income":0,"avg_satisfaction":0}`, rec.Body.String())
	src.AssertExpectations(t)
}

func TestDashboardHandler_FiltersIgnoreQuery(t *testing.T) {
	src := new(mockSource)
	src.On("Load", mock.Anything, employee.Criteria{}).Return(threeEmployees, nil).Once()

	rec := get(setupRouter(src), "/api/filters?gender=Male")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.JSONEq(t, `["Female","Male"]`, string(body["genders"]))
	assert.JSONEq(t, `["A","B"]`, string(body["departments"]))
	src.AssertExpectations(t)
}

func TestDashboardHandler_ErrorIsPlainText500(t *testing.T) {
	src := new(mockSource)
	src.On("Load", mock.Anything, mock.Anything).
		Return(nil, errors.SourceUnavailable("data.csv", fmt.Errorf("no such file or directory")))

	rec := get(setupRouter(src), "/api/gender-split")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, rec.Body.String(), "no such file or directory")
}

func TestDashboardHandler_EveryViewIsRouted(t *testing.T) {
	src := new(mockSource)
	src.On("Load", mock.Anything, mock.Anything).Return(threeEmployees, nil)
	r := setupRouter(src)

	for _, view := range analysis.NewService(src, nil).Views() {
		rec := get(r, "/api/"+view.Name)
		assert.Equal(t, http.StatusOK, rec.Code, view.Name)
		assert.True(t, json.Valid(rec.Body.Bytes()), view.Name)
	}
	assert.Equal(t, http.StatusNotFound, get(r, "/api/unknown").Code)
}

func TestDashboardHandler_MalformedRowLogsWarning(t *testing.T) {
	src := new(mockSource)
	src.On("Load", mock.Anything, mock.Anything).
		Return(nil, errors.MalformedRow(4, employee.FieldAge, "forty"))

	var logs bytes.Buffer
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewDashboardHandler(analysis.NewService(src, nil), internal.NewLoggerTo(&logs, internal.LogLevelInfo)).Register(r.Group("/api"))

	rec := get(r, "/api/kpis")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `row 4: invalid value "forty" for Age`)
	assert.Contains(t, logs.String(), "WARN")
	assert.Contains(t, logs.String(), "MALFORMED_ROW")
	assert.NotContains(t, logs.String(), "ERRO")
}
