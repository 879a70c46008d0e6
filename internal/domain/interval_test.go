package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2024, 6, 1, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	testCases := []struct {
		name                   string
		dep1, arr1, dep2, arr2 time.Time
		want                   bool
	}{
		{"fully inside", at(10, 0), at(12, 0), at(10, 30), at(11, 30), true},
		{"partial overlap tail", at(10, 0), at(12, 0), at(11, 30), at(13, 30), true},
		{"partial overlap head", at(10, 0), at(12, 0), at(9, 0), at(10, 30), true},
		{"identical windows", at(10, 0), at(12, 0), at(10, 0), at(12, 0), true},
		{"back-to-back turnaround", at(10, 0), at(12, 0), at(12, 0), at(14, 0), false},
		{"back-to-back reversed", at(12, 0), at(14, 0), at(10, 0), at(12, 0), false},
		{"fully before", at(10, 0), at(12, 0), at(13, 0), at(15, 0), false},
		{"fully after", at(13, 0), at(15, 0), at(10, 0), at(12, 0), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.dep1, tc.arr1, tc.dep2, tc.arr2))
			// The predicate is symmetric.
			assert.Equal(t, tc.want, Overlaps(tc.dep2, tc.arr2, tc.dep1, tc.arr1))
		})
	}
}

func TestFlightStatus_AllowsAssignment(t *testing.T) {
	assert.True(t, FlightStatusScheduled.AllowsAssignment())
	assert.True(t, FlightStatusDelayed.AllowsAssignment())
	assert.False(t, FlightStatusDeparted.AllowsAssignment())
	assert.False(t, FlightStatusArrived.AllowsAssignment())
	assert.False(t, FlightStatusCancelled.AllowsAssignment())
}

func TestFlightStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, FlightStatusScheduled.CanTransitionTo(FlightStatusDeparted))
	assert.True(t, FlightStatusScheduled.CanTransitionTo(FlightStatusDelayed))
	assert.True(t, FlightStatusScheduled.CanTransitionTo(FlightStatusCancelled))
	assert.True(t, FlightStatusDelayed.CanTransitionTo(FlightStatusDeparted))
	assert.True(t, FlightStatusDelayed.CanTransitionTo(FlightStatusCancelled))
	assert.True(t, FlightStatusDeparted.CanTransitionTo(FlightStatusArrived))

	assert.False(t, FlightStatusDelayed.CanTransitionTo(FlightStatusScheduled))
	assert.False(t, FlightStatusDeparted.CanTransitionTo(FlightStatusCancelled))
	assert.False(t, FlightStatusArrived.CanTransitionTo(FlightStatusScheduled))
	assert.False(t, FlightStatusCancelled.CanTransitionTo(FlightStatusScheduled))
}

func TestFlightInstance_Window(t *testing.T) {
	f := &FlightInstance{
		ScheduledDeparture: at(10, 0),
		ScheduledArrival:   at(12, 0),
	}

	dep, arr := f.Window()
	assert.Equal(t, at(10, 0), dep)
	assert.Equal(t, at(12, 0), arr)

	actualDep := at(10, 45)
	actualArr := at(12, 40)
	f.ActualDeparture = &actualDep
	f.ActualArrival = &actualArr

	dep, arr = f.Window()
	assert.Equal(t, at(10, 45), dep)
	assert.Equal(t, at(12, 40), arr)
}
