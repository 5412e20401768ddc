package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripflow/backend/internal/domain"
	"github.com/tripflow/backend/internal/service"
)

func TestProjectMonth_RangeSpanningMonthBoundary(t *testing.T) {
	trips := []domain.Trip{
		{ID: "t1", Name: "New Year", DateRange: "2024/01/30 ~ 2024/02/02"},
	}

	jan := service.ProjectMonth(trips, 2024, time.January)
	require.Len(t, jan, 2)
	assert.Equal(t, domain.PositionStart, jan[30].Position)
	assert.Equal(t, domain.PositionMiddle, jan[31].Position)

	feb := service.ProjectMonth(trips, 2024, time.February)
	require.Len(t, feb, 2)
	assert.Equal(t, domain.PositionMiddle, feb[1].Position)
	assert.Equal(t, domain.PositionEnd, feb[2].Position)
	assert.Equal(t, "t1", feb[2].Trip.ID)
}

func TestProjectMonth_FullRangeInsideMonth(t *testing.T) {
	trips := []domain.Trip{
		{ID: "t1", DateRange: "2024/03/10 ~ 2024/03/12"},
	}

	got := service.ProjectMonth(trips, 2024, time.March)

	require.Len(t, got, 3)
	assert.Equal(t, domain.PositionStart, got[10].Position)
	assert.Equal(t, domain.PositionMiddle, got[11].Position)
	assert.Equal(t, domain.PositionEnd, got[12].Position)
}

func TestProjectMonth_SingleDate(t *testing.T) {
	trips := []domain.Trip{
		{ID: "t1", DateRange: "2024/03/15"},
	}

	got := service.ProjectMonth(trips, 2024, time.March)

	require.Len(t, got, 1)
	assert.Equal(t, domain.PositionSole, got[15].Position)
}

func TestProjectMonth_OneDayRangeIsStart(t *testing.T) {
	// A range whose start equals its end classifies as START, not SOLE;
	// the start check runs before the end check.
	trips := []domain.Trip{
		{ID: "t1", DateRange: "2024/03/15 ~ 2024/03/15"},
	}

	got := service.ProjectMonth(trips, 2024, time.March)

	require.Len(t, got, 1)
	assert.Equal(t, domain.PositionStart, got[15].Position)
}

func TestProjectMonth_MonthDayTokensDefaultToTargetYear(t *testing.T) {
	trips := []domain.Trip{
		{ID: "t1", DateRange: "03/10 ~ 03/11"},
	}

	got := service.ProjectMonth(trips, 2025, time.March)

	require.Len(t, got, 2)
	assert.Equal(t, domain.PositionStart, got[10].Position)
	assert.Equal(t, domain.PositionEnd, got[11].Position)
}

func TestProjectMonth_ReversedRangeStillProjects(t *testing.T) {
	trips := []domain.Trip{
		{ID: "t1", DateRange: "2024/03/12 ~ 2024/03/10"},
	}

	got := service.ProjectMonth(trips, 2024, time.March)

	require.Len(t, got, 3)
	assert.Equal(t, domain.PositionStart, got[10].Position)
	assert.Equal(t, domain.PositionEnd, got[12].Position)
}

func TestProjectMonth_SkipsEmptyAndUnparseableRanges(t *testing.T) {
	trips := []domain.Trip{
		{ID: "t1", DateRange: ""},
		{ID: "t2", DateRange: "sometime in spring"},
	}

	got := service.ProjectMonth(trips, 2024, time.March)

	assert.Empty(t, got)
}

func TestProjectMonth_EarlierTripKeepsOverlappingDays(t *testing.T) {
	trips := []domain.Trip{
		{ID: "first", DateRange: "2024/03/10 ~ 2024/03/12"},
		{ID: "second", DateRange: "2024/03/12 ~ 2024/03/14"},
	}

	got := service.ProjectMonth(trips, 2024, time.March)

	require.Len(t, got, 5)
	assert.Equal(t, "first", got[12].Trip.ID)
	assert.Equal(t, domain.PositionEnd, got[12].Position)
	assert.Equal(t, "second", got[13].Trip.ID)
}

func TestProjectMonth_OtherMonthUnaffected(t *testing.T) {
	trips := []domain.Trip{
		{ID: "t1", DateRange: "2024/03/10 ~ 2024/03/12"},
	}

	got := service.ProjectMonth(trips, 2024, time.April)

	assert.Empty(t, got)
}

func TestCalendarService_Project_UsesStoreTrips(t *testing.T) {
	st, _, _ := newTestStore()
	tripSvc := service.NewTripService(st, fixedNow)
	_, err := tripSvc.Create(context.Background(), domain.Trip{
		Name: "Summer Tour", DateRange: "2024/06/10 ~ 2024/06/11",
	})
	require.NoError(t, err)

	got := service.NewCalendarService(st).Project(2024, time.June)

	require.Len(t, got, 2)
	assert.Equal(t, "Summer Tour", got[10].Trip.Name)
}
