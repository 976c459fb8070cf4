package main

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sheetCalc/contracts"
)

var SerializerError = errors.New("invalid serialized data")

const TokensDelimiter = byte(0x00)

/**
 * Layout:
 *   uint16 label length | label | uint64 value bits | uint16 error length | error | tokens joined by 0x00
 */
type CellBinarySerializer struct {
}

func NewCellBinarySerializer() *CellBinarySerializer {
	return &CellBinarySerializer{}
}

func (s *CellBinarySerializer) Marshal(record *contracts.CellRecord) []byte {
	labelBytes := []byte(record.Label)
	errorBytes := []byte(record.Error)

	tokens := make([][]byte, 0, len(record.Formula))
	for _, token := range record.Formula {
		tokens = append(tokens, []byte(token))
	}
	formulaBytes := bytes.Join(tokens, []byte{TokensDelimiter})

	serializedData := make([]byte, 0, 12+len(labelBytes)+len(errorBytes)+len(formulaBytes))

	serializedData = binary.LittleEndian.AppendUint16(serializedData, uint16(len(labelBytes)))
	serializedData = append(serializedData, labelBytes...)
	serializedData = binary.LittleEndian.AppendUint64(serializedData, math.Float64bits(record.Value))
	serializedData = binary.LittleEndian.AppendUint16(serializedData, uint16(len(errorBytes)))
	serializedData = append(serializedData, errorBytes...)
	serializedData = append(serializedData, formulaBytes...)
	return serializedData
}

func (s *CellBinarySerializer) Unmarshal(data []byte) (*contracts.CellRecord, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("%w: should be more than 2 bytes (data: %v)", SerializerError, string(data))
	}

	labelLength := int(binary.LittleEndian.Uint16(data))
	offset := 2
	if len(data) < offset+labelLength+8+2 {
		return nil, fmt.Errorf("%w: label size is less than bytes amount (labelSize: %d; data: %v)", SerializerError, labelLength, string(data))
	}

	record := &contracts.CellRecord{
		Label: string(data[offset : offset+labelLength]),
	}
	offset += labelLength

	record.Value = math.Float64frombits(binary.LittleEndian.Uint64(data[offset:]))
	offset += 8

	errorLength := int(binary.LittleEndian.Uint16(data[offset:]))
	offset += 2
	if len(data) < offset+errorLength {
		return nil, fmt.Errorf("%w: error size is less than bytes amount (errorSize: %d; data: %v)", SerializerError, errorLength, string(data))
	}

	record.Error = string(data[offset : offset+errorLength])
	offset += errorLength

	record.Formula = contracts.Formula{}
	if offset < len(data) {
		for _, token := range bytes.Split(data[offset:], []byte{TokensDelimiter}) {
			record.Formula = append(record.Formula, string(token))
		}
	}

	return record, nil
}
