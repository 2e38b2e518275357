package workplans

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"production-schedule/internal/storage"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) WorkPlanRowsByDate(ctx context.Context, date string) ([]*storage.WorkPlanRow, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*storage.WorkPlanRow), args.Error(1)
}

func (m *MockStorage) WorkPlanRowByID(ctx context.Context, id int) (*storage.WorkPlanRow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.WorkPlanRow), args.Error(1)
}

func (m *MockStorage) OperatorRowsByPlanIDs(ctx context.Context, planIDs []int) ([]*storage.OperatorRow, error) {
	args := m.Called(ctx, planIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*storage.OperatorRow), args.Error(1)
}

func (m *MockStorage) ActiveTemplates(ctx context.Context, productCode string) ([]*storage.TemplateRow, error) {
	args := m.Called(ctx, productCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*storage.TemplateRow), args.Error(1)
}

func (m *MockStorage) SearchProducts(ctx context.Context, pattern string) ([]*storage.ProductRow, error) {
	args := m.Called(ctx, pattern)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*storage.ProductRow), args.Error(1)
}

func strPtr(s string) *string { return &s }

func planRow(id int, jobCode string) *storage.WorkPlanRow {
	return &storage.WorkPlanRow{
		ID:             id,
		ProductionDate: "2025-10-06",
		JobCode:        jobCode,
		JobName:        jobCode,
		StartTime:      strPtr("08:00"),
		EndTime:        strPtr("12:00"),
	}
}

func templateRows(code string, durations ...int) []*storage.TemplateRow {
	rows := make([]*storage.TemplateRow, len(durations))
	for i, d := range durations {
		rows[i] = &storage.TemplateRow{
			ProductCode:              code,
			Version:                  2,
			ProcessNumber:            i + 1,
			ProcessDescription:       "ขั้นตอน",
			EstimatedDurationMinutes: d,
			StandardWorkerCount:      2,
			IsActive:                 true,
		}
	}
	return rows
}

func TestWorkPlansByDate_GroupsOperatorsAndAppliesPlaceholders(t *testing.T) {
	mockStorage := new(MockStorage)

	mockStorage.On("WorkPlanRowsByDate", mock.Anything, "2025-10-06").
		Return([]*storage.WorkPlanRow{planRow(1, "J1"), planRow(2, "J2")}, nil)

	// Assignment rows reference only plan 1.
	mockStorage.On("OperatorRowsByPlanIDs", mock.Anything, []int{1, 2}).
		Return([]*storage.OperatorRow{
			{WorkPlanID: 1, IDCode: "toon", Role: "operator", UserName: strPtr("ตูน"), Position: strPtr("หัวหน้า")},
			{WorkPlanID: 1, IDCode: "sorn", Role: "helper"},
		}, nil)

	mockStorage.On("ActiveTemplates", mock.Anything, mock.Anything).Return([]*storage.TemplateRow{}, nil)
	mockStorage.On("SearchProducts", mock.Anything, mock.Anything).Return([]*storage.ProductRow{}, nil)

	service := New(mockStorage, slog.Default())

	plans, err := service.WorkPlansByDate(context.Background(), "2025-10-06")
	assert.NoError(t, err)
	assert.Len(t, plans, 2)

	assert.Len(t, plans[0].Assignees, 2)
	assert.Equal(t, "ตูน", plans[0].Assignees[0].Name)
	// No directory match falls back to the id_code.
	assert.Equal(t, "sorn", plans[0].Assignees[1].Name)

	// Plan 2 gets an empty list, not nil.
	assert.NotNil(t, plans[1].Assignees)
	assert.Empty(t, plans[1].Assignees)

	assert.Equal(t, storage.NoRoomName, plans[0].Location)
	assert.Equal(t, storage.NoStatusName, plans[0].Status)
	assert.Equal(t, storage.NoMachineName, plans[0].MachineName)
}

func TestWorkPlansByDate_EmptyDateIsEmptySliceNotError(t *testing.T) {
	mockStorage := new(MockStorage)
	mockStorage.On("WorkPlanRowsByDate", mock.Anything, "2025-01-01").
		Return([]*storage.WorkPlanRow{}, nil)

	service := New(mockStorage, slog.Default())

	plans, err := service.WorkPlansByDate(context.Background(), "2025-01-01")
	assert.NoError(t, err)
	assert.NotNil(t, plans)
	assert.Empty(t, plans)
}

func TestWorkPlansByDate_QueryFailurePropagates(t *testing.T) {
	mockStorage := new(MockStorage)
	mockStorage.On("WorkPlanRowsByDate", mock.Anything, "2025-10-06").
		Return(nil, errors.New("connection lost"))

	service := New(mockStorage, slog.Default())

	_, err := service.WorkPlansByDate(context.Background(), "2025-10-06")
	assert.Error(t, err)
}

func TestResolveSteps_PercentagesSumToHundred(t *testing.T) {
	mockStorage := new(MockStorage)
	mockStorage.On("ActiveTemplates", mock.Anything, "240031").
		Return(templateRows("240031", 10, 10, 10), nil)

	service := New(mockStorage, slog.Default())

	hasSteps, steps := service.resolveSteps(context.Background(), planRow(1, "240031"))
	assert.True(t, hasSteps)
	assert.Len(t, steps, 3)

	sum := 0.0
	for _, step := range steps {
		sum += step.Percentage
	}
	assert.InDelta(t, 100.0, sum, 0.1)
	assert.Equal(t, 33.33, steps[0].Percentage)
}

func TestResolveSteps_SingleZeroDurationDiscardsWholeSet(t *testing.T) {
	mockStorage := new(MockStorage)
	mockStorage.On("ActiveTemplates", mock.Anything, "240031").
		Return(templateRows("240031", 30, 0, 60), nil)

	service := New(mockStorage, slog.Default())

	hasSteps, steps := service.resolveSteps(context.Background(), planRow(1, "240031"))
	assert.False(t, hasSteps)
	assert.NotNil(t, steps)
	assert.Empty(t, steps)
}

func TestResolveSteps_FallbackViaProductSearch(t *testing.T) {
	mockStorage := new(MockStorage)

	// No direct match for the job code; the catalog search maps it to a
	// product code that does have templates.
	mockStorage.On("ActiveTemplates", mock.Anything, "JOBNAME").
		Return([]*storage.TemplateRow{}, nil)
	mockStorage.On("SearchProducts", mock.Anything, "%JOBNAME%").
		Return([]*storage.ProductRow{
			{ProductCode: "110010", ProductName: "JOBNAME X"},
			{ProductCode: "110011", ProductName: "JOBNAME Y"},
		}, nil)
	mockStorage.On("ActiveTemplates", mock.Anything, "110010").
		Return([]*storage.TemplateRow{}, nil)
	mockStorage.On("ActiveTemplates", mock.Anything, "110011").
		Return(templateRows("110011", 45, 15), nil)

	service := New(mockStorage, slog.Default())

	hasSteps, steps := service.resolveSteps(context.Background(), planRow(1, "JOBNAME"))
	assert.True(t, hasSteps)
	assert.Len(t, steps, 2)
	assert.Equal(t, 75.0, steps[0].Percentage)
	assert.Equal(t, 25.0, steps[1].Percentage)
}

func TestResolveSteps_ThaiKeywordFallback(t *testing.T) {
	mockStorage := new(MockStorage)
	jobCode := "กุ้งทอดมัน (พิเศษ)"

	mockStorage.On("ActiveTemplates", mock.Anything, jobCode).
		Return([]*storage.TemplateRow{}, nil)
	mockStorage.On("SearchProducts", mock.Anything, "%"+jobCode+"%").
		Return([]*storage.ProductRow{}, nil)
	mockStorage.On("SearchProducts", mock.Anything, "%กุ้งทอดมัน%(พิเศษ)%").
		Return([]*storage.ProductRow{}, nil)
	// Word-by-word search after splitting on whitespace and punctuation.
	mockStorage.On("SearchProducts", mock.Anything, "%กุ้งทอดมัน%").
		Return([]*storage.ProductRow{{ProductCode: "240031", ProductName: "กุ้งทอดมัน"}}, nil)
	mockStorage.On("SearchProducts", mock.Anything, "%พิเศษ%").
		Return([]*storage.ProductRow{}, nil)
	mockStorage.On("ActiveTemplates", mock.Anything, "240031").
		Return(templateRows("240031", 60, 30, 30), nil)

	service := New(mockStorage, slog.Default())

	hasSteps, steps := service.resolveSteps(context.Background(), planRow(1, jobCode))
	assert.True(t, hasSteps)
	assert.Len(t, steps, 3)
	assert.Equal(t, 50.0, steps[0].Percentage)
}

func TestResolveSteps_LookupErrorDegradesToNoSteps(t *testing.T) {
	mockStorage := new(MockStorage)
	mockStorage.On("ActiveTemplates", mock.Anything, "240031").
		Return(nil, errors.New("query timeout"))

	service := New(mockStorage, slog.Default())

	hasSteps, steps := service.resolveSteps(context.Background(), planRow(1, "240031"))
	assert.False(t, hasSteps)
	assert.Empty(t, steps)
}
