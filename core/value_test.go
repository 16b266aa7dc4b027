package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueString(t *testing.T) {
	tests := []struct {
		name string
		val  Value
		want string
	}{
		{"null", NullValue(), "NULL"},
		{"integer", IntegerValue(42), "42"},
		{"negative integer", IntegerValue(-7), "-7"},
		{"string", StringValue("hello"), "hello"},
		{"datetime", DateTimeValue("2022-01-01 00:00:00.000"), "2022-01-01 00:00:00.000"},
		{"empty", EmptyValue(), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.val.String())
		})
	}
}

func TestValueSubtypes(t *testing.T) {
	assert.Equal(t, Null, NullValue().Subtype())
	assert.Equal(t, Integer, IntegerValue(1).Subtype())
	assert.Equal(t, String, StringValue("").Subtype())
	assert.Equal(t, DateTime, DateTimeValue("").Subtype())
	assert.Equal(t, Blob, BlobValue([]byte{1, 2}).Subtype())
	assert.True(t, EmptyValue().IsEmpty())
	assert.False(t, NullValue().IsEmpty())
}

func TestValueEquality(t *testing.T) {
	assert.Equal(t, IntegerValue(5), IntegerValue(5))
	assert.NotEqual(t, IntegerValue(5), IntegerValue(6))
	assert.NotEqual(t, IntegerValue(5), StringValue("5"))
	assert.Equal(t, StringValue("a"), StringValue("a"))
	assert.Equal(t, NullValue(), NullValue())
	assert.NotEqual(t, NullValue(), EmptyValue())
}

func TestValuePayloads(t *testing.T) {
	assert.Equal(t, int64(99), IntegerValue(99).Int())
	assert.Equal(t, "payload", StringValue("payload").Str())
	assert.Equal(t, []byte{0xDE, 0xAD}, BlobValue([]byte{0xDE, 0xAD}).Bytes())
}
