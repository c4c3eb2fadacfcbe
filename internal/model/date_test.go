package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	task := Task{ID: 1, Name: "Report", DeliveryDate: NewDate(2024, time.January, 1), Responsible: "Alice"}

	body, err := json.Marshal(task)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"Report","deliveryDate":"2024-01-01","responsible":"Alice"}`, string(body))

	var decoded Task
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.True(t, decoded.DeliveryDate.Equal(task.DeliveryDate))
}

func TestDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "iso date", input: `"2024-02-29"`, want: "2024-02-29"},
		{name: "null leaves zero", input: `null`, want: ""},
		{name: "first day of year one", input: `"0001-01-01"`, want: "0001-01-01"},
		{name: "invalid day", input: `"2024-02-30"`, wantErr: true},
		{name: "datetime rejected", input: `"2024-01-01T10:00:00Z"`, wantErr: true},
		{name: "number rejected", input: `20240101`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := d.UnmarshalJSON([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestDate_Scan(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want string
	}{
		{name: "time", src: time.Date(2024, 5, 6, 0, 0, 0, 0, time.FixedZone("X", 3600)), want: "2024-05-06"},
		{name: "text", src: "2024-05-06", want: "2024-05-06"},
		{name: "bytes with time part", src: []byte("2024-05-06 00:00:00"), want: "2024-05-06"},
		{name: "nil", src: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			require.NoError(t, d.Scan(tt.src))
			assert.Equal(t, tt.want, d.String())
		})
	}

	var d Date
	assert.Error(t, d.Scan(42))
}

func TestDate_Value(t *testing.T) {
	v, err := NewDate(2030, time.December, 31).Value()
	require.NoError(t, err)
	assert.Equal(t, "2030-12-31", v)

	v, err = Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = NewDate(1, time.January, 1).Value()
	require.NoError(t, err)
	assert.Equal(t, "0001-01-01", v)
}

func TestDate_EarliestDateIsSet(t *testing.T) {
	d, err := ParseDate("0001-01-01")
	require.NoError(t, err)
	assert.True(t, d.Valid)
	assert.True(t, d.IsZero(), "same instant as time.Time{}")

	body, err := json.Marshal(Task{ID: 1, Name: "a", DeliveryDate: d, Responsible: "b"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"a","deliveryDate":"0001-01-01","responsible":"b"}`, string(body))

	body, err = json.Marshal(Task{ID: 1, Name: "a", Responsible: "b"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"a","deliveryDate":null,"responsible":"b"}`, string(body))
}

func TestTask_Apply(t *testing.T) {
	existing := Task{ID: 7, Name: "Old", DeliveryDate: NewDate(2024, 1, 1), Responsible: "Bob"}
	existing.Apply(Task{ID: 99, Name: "New", DeliveryDate: NewDate(2025, 2, 2), Responsible: "Carol"})

	assert.Equal(t, int64(7), existing.ID)
	assert.Equal(t, "New", existing.Name)
	assert.Equal(t, "2025-02-02", existing.DeliveryDate.String())
	assert.Equal(t, "Carol", existing.Responsible)
}
