package main

import (
	"github.com/stretchr/testify/assert"
	"math"
	"sheetCalc/contracts"
	"testing"
)

func TestCellBinarySerializer_Marshal(t *testing.T) {
	serializer := &CellBinarySerializer{}
	serialized := serializer.Marshal(&contracts.CellRecord{Label: "A1", Formula: contracts.Formula{"1"}, Value: 1})
	assert.NotNil(t, serialized)
	// label size + label + value + error size + formula
	assert.Len(t, serialized, 2+2+8+2+1)
}

func TestCellBinarySerializer_Unmarshal(t *testing.T) {
	serializer := &CellBinarySerializer{}

	t.Run("valid_data", func(t *testing.T) {
		assertMarshalAndUnmarshal := func(expected *contracts.CellRecord) {
			actual, err := serializer.Unmarshal(serializer.Marshal(expected))

			assert.NoError(t, err)
			assert.Equal(t, expected, actual)
		}

		assertMarshalAndUnmarshal(&contracts.CellRecord{
			Label:   "A1",
			Formula: contracts.Formula{"(", "B2", "+", "3.5", ")", "*", "2"},
			Value:   11,
		})

		assertMarshalAndUnmarshal(&contracts.CellRecord{
			Label:   "AB12",
			Formula: contracts.Formula{},
			Error:   contracts.ErrorEmptyFormula,
		})

		assertMarshalAndUnmarshal(&contracts.CellRecord{
			Label:   "C3",
			Formula: contracts.Formula{"1", "/", "0"},
			Value:   math.Inf(1),
			Error:   contracts.ErrorDivideByZero,
		})
	})

	t.Run("empty_data", func(t *testing.T) {
		record, err := serializer.Unmarshal([]byte{})

		assert.ErrorIs(t, err, SerializerError)
		assert.Nil(t, record)
	})

	t.Run("invalid_data", func(t *testing.T) {
		record, err := serializer.Unmarshal([]byte{' ', 'q', 'r'})

		assert.ErrorIs(t, err, SerializerError)
		assert.Nil(t, record)
	})

	t.Run("truncated_error", func(t *testing.T) {
		serialized := serializer.Marshal(&contracts.CellRecord{Label: "A1", Error: contracts.ErrorDivideByZero})

		record, err := serializer.Unmarshal(serialized[:len(serialized)-2])

		assert.ErrorIs(t, err, SerializerError)
		assert.Nil(t, record)
	})
}
