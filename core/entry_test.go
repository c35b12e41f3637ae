package core

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{BasicLevel, "BASIC"},
		{DetailedLevel, "DETAILED"},
		{VerboseLevel, "VERBOSE"},
		{Level(7), "LEVEL(7)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.level.String())
		})
	}
}

func TestLevel_Validate(t *testing.T) {
	for _, l := range []Level{BasicLevel, DetailedLevel, VerboseLevel} {
		assert.NoError(t, l.Validate(), "level %d", l)
	}

	for _, l := range []Level{-1, 3, 5, 100} {
		err := l.Validate()
		require.Error(t, err, "level %d", l)
		assert.True(t, errors.Is(err, ErrLevelOutOfRange))

		var rangeErr *LevelRangeError
		require.True(t, errors.As(err, &rangeErr))
		assert.Equal(t, l, rangeErr.Level)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"basic", BasicLevel, false},
		{"Detailed", DetailedLevel, false},
		{" VERBOSE ", VerboseLevel, false},
		{"0", BasicLevel, false},
		{"2", VerboseLevel, false},
		{"3", BasicLevel, true},
		{"loud", BasicLevel, true},
		{"-1", BasicLevel, true},
		{"4294967296", BasicLevel, true},
		{"4294967297", BasicLevel, true},
		{"-4294967295", BasicLevel, true},
		{"99999999999999999999", BasicLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLevel_WideNumbersAreOutOfRange(t *testing.T) {
	for _, in := range []string{"3", "4294967296", "4294967297", "-4294967295", "99999999999999999999"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseLevel(in)
			assert.ErrorIs(t, err, ErrLevelOutOfRange)
		})
	}
}

func TestEntryPool(t *testing.T) {
	e1 := GetEntry()
	require.NotNil(t, e1)
	assert.False(t, e1.Time.IsZero())

	e1.Message = "test"
	e1.Depth = 3
	PutEntry(e1)

	e2 := GetEntry()
	require.NotNil(t, e2)
	assert.Empty(t, e2.Message)
	assert.Zero(t, e2.Depth)
}

func TestGetCaller(t *testing.T) {
	caller := GetCaller(0)
	require.True(t, caller.Defined)

	assert.NotEmpty(t, caller.File)
	assert.Equal(t, "entry_test.go", caller.ShortFile)
	assert.NotZero(t, caller.Line)
	assert.Contains(t, caller.Function, "TestGetCaller")
}

func TestGoroutineID_DistinctPerGoroutine(t *testing.T) {
	main := GoroutineID()
	assert.Equal(t, main, GoroutineID())

	var other int64
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		other = GoroutineID()
	}()
	wg.Wait()

	assert.NotEqual(t, main, other)
}

func BenchmarkGetEntry(b *testing.B) {
	for i := 0; i < b.N; i++ {
		e := GetEntry()
		PutEntry(e)
	}
}

func BenchmarkGoroutineID(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = GoroutineID()
	}
}
