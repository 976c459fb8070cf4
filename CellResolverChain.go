package main

import "sheetCalc/contracts"

func NewCellSnapshotsGetterChain(first contracts.CellSnapshotsGetter, second contracts.CellSnapshotsGetter) contracts.CellSnapshotsGetter {
	if second == nil {
		return first
	}

	if first == nil {
		return second
	}

	return func(labels []string) []*contracts.CellRecord {
		result := first(labels)

		secondLabels := make([]string, 0, len(labels))
		for index, record := range result {
			if record == nil {
				secondLabels = append(secondLabels, labels[index])
			}
		}

		if len(secondLabels) != 0 {
			secondResult := second(secondLabels)

			searchInSecondLabelsIndex := 0
			for index, record := range result {
				if record == nil {
					result[index] = secondResult[searchInSecondLabelsIndex]
					searchInSecondLabelsIndex++
				}
			}
		}

		return result
	}
}

// NewRecordsMapGetter serves records which are computed but not persisted yet
func NewRecordsMapGetter(records map[string]*contracts.CellRecord) contracts.CellSnapshotsGetter {
	return func(labels []string) []*contracts.CellRecord {
		result := make([]*contracts.CellRecord, len(labels))

		for index, label := range labels {
			if record, ok := records[label]; ok {
				result[index] = record
			}
		}

		return result
	}
}

// NewGetterCellResolver adapts a getter to the evaluator, unknown cells resolve to an empty snapshot
func NewGetterCellResolver(getter contracts.CellSnapshotsGetter) contracts.CellResolver {
	return contracts.CellResolverFunc(func(label string) contracts.CellSnapshot {
		if getter == nil {
			return contracts.CellSnapshot{}
		}

		records := getter([]string{label})
		if len(records) == 0 || records[0] == nil {
			return contracts.CellSnapshot{}
		}

		return records[0].Snapshot()
	})
}
