package main

import (
	"fmt"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"
	"sheetCalc/contracts"
	"strconv"
	"strings"
	"sync"
)

type SheetRepository struct {
	db                *bbolt.DB
	tokenizer         contracts.FormulaTokenizer
	canonicalizer     contracts.Canonicalizer
	serializer        contracts.CellSerializer
	dependencyTree    contracts.CellDependencyTree
	newEvaluator      contracts.FormulaEvaluatorFactory
	webhookDispatcher contracts.WebhookDispatcher
	metrics           contracts.EvaluationRecorder
	logger            *zap.Logger

	// evaluation reads a snapshot in one transaction and writes in another one
	writeLock sync.Mutex
}

func NewSheetRepository(
	db *bbolt.DB, tokenizer contracts.FormulaTokenizer, canonicalizer contracts.Canonicalizer,
	serializer contracts.CellSerializer, newEvaluator contracts.FormulaEvaluatorFactory,
	webhookDispatcher contracts.WebhookDispatcher, metrics contracts.EvaluationRecorder, logger *zap.Logger,
) *SheetRepository {
	return &SheetRepository{
		db:                db,
		tokenizer:         tokenizer,
		canonicalizer:     canonicalizer,
		serializer:        serializer,
		dependencyTree:    &CellDependencyTree{},
		newEvaluator:      newEvaluator,
		webhookDispatcher: webhookDispatcher,
		metrics:           metrics,
		logger:            logger,
	}
}

func (s *SheetRepository) SetCell(sheetId string, label string, text string) (*contracts.Cell, error) {
	sheetId = strings.ToLower(sheetId)
	sheetIdByte := []byte(sheetId)

	canonicalLabel := s.canonicalizer.Canonicalize(label)
	if !IsCellReference(canonicalLabel) {
		return nil, fmt.Errorf("cell `%s`: %w", label, contracts.CellLabelError)
	}

	formula, err := s.tokenizer.Tokenize(text)
	if err != nil {
		return nil, fmt.Errorf("cell %s: %w", canonicalLabel, err)
	}
	references := s.tokenizer.ExtractCellReferences(formula)

	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	computed := map[string]*contracts.CellRecord{}
	changed := make([]*contracts.CellRecord, 0, 1)

	err = s.db.View(func(tx *bbolt.Tx) error {
		dependants := s.dependencyTree.GetDependants(tx, sheetIdByte, canonicalLabel)
		if err := s.checkCircularReference(canonicalLabel, references, dependants); err != nil {
			return err
		}

		storedGetter := s.makeRecordsGetter(tx, sheetIdByte)
		getter := NewCellSnapshotsGetterChain(NewRecordsMapGetter(computed), storedGetter)

		computed[canonicalLabel] = s.evaluateRecord(canonicalLabel, formula, getter)
		changed = append(changed, computed[canonicalLabel])

		sortedDependants := s.dependencyTree.SortDependants(tx, sheetIdByte, dependants)
		storedDependants := storedGetter(sortedDependants)
		for index, dependantLabel := range sortedDependants {
			stored := storedDependants[index]
			if stored == nil {
				continue
			}

			computed[dependantLabel] = s.evaluateRecord(dependantLabel, stored.Formula, getter)
			if computed[dependantLabel].Value != stored.Value || computed[dependantLabel].Error != stored.Error {
				changed = append(changed, computed[dependantLabel])
			}
		}

		s.logger.Debug("cell evaluated",
			zap.String("sheet", sheetId),
			zap.String("cell", canonicalLabel),
			zap.Int("dependants", len(sortedDependants)),
		)
		return nil
	})

	if err != nil {
		return nil, err
	}

	err = s.db.Batch(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(sheetIdByte)
		if err != nil {
			return err
		}

		for computedLabel, record := range computed {
			if err = bucket.Put([]byte(computedLabel), s.serializer.Marshal(record)); err != nil {
				return err
			}
		}

		return s.dependencyTree.SetDependsOn(tx, sheetIdByte, canonicalLabel, references)
	})

	if err != nil {
		s.logger.Error("failed to save cell",
			zap.String("sheet", sheetId),
			zap.String("cell", canonicalLabel),
			zap.Error(err),
		)
		return nil, err
	}

	if s.webhookDispatcher != nil {
		cells := make([]*contracts.Cell, 0, len(changed))
		for _, record := range changed {
			cells = append(cells, s.toCell(record))
		}
		s.webhookDispatcher.Notify(sheetId, cells)
	}

	return s.toCell(computed[canonicalLabel]), nil
}

func (s *SheetRepository) GetCell(sheetId string, label string) (cell *contracts.Cell, err error) {
	sheetId = strings.ToLower(sheetId)
	canonicalLabel := s.canonicalizer.Canonicalize(label)

	err = s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sheetId))
		if bucket == nil {
			return fmt.Errorf("%s: %w", sheetId, contracts.SheetNotFoundError)
		}

		byteValue := bucket.Get([]byte(canonicalLabel))
		if byteValue == nil {
			return fmt.Errorf("%s: %w", label, contracts.CellNotFoundError)
		}

		record, err := s.serializer.Unmarshal(byteValue)
		if err != nil {
			return err
		}

		cell = s.toCell(record)
		return nil
	})

	return
}

func (s *SheetRepository) GetCellList(sheetId string) (contracts.CellList, error) {
	sheetId = strings.ToLower(sheetId)

	cellList := contracts.CellList{}

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sheetId))
		if bucket == nil {
			return fmt.Errorf("%s: %w", sheetId, contracts.SheetNotFoundError)
		}

		c := bucket.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			record, err := s.serializer.Unmarshal(v)
			if err != nil {
				s.logger.Warn("skip broken cell", zap.String("sheet", sheetId), zap.ByteString("cell", k), zap.Error(err))
				continue
			}
			cellList[record.Label] = s.toCell(record)
		}
		return nil
	})

	return cellList, err
}

// EvaluateFormula computes a formula against the current sheet state without saving it
func (s *SheetRepository) EvaluateFormula(sheetId string, text string) (cell *contracts.Cell, err error) {
	sheetIdByte := []byte(strings.ToLower(sheetId))

	formula, err := s.tokenizer.Tokenize(text)
	if err != nil {
		return nil, err
	}

	err = s.db.View(func(tx *bbolt.Tx) error {
		evaluator := s.newEvaluator(NewGetterCellResolver(s.makeRecordsGetter(tx, sheetIdByte)))
		result := evaluator.Calculate(formula)
		s.observe(formula, result)

		cell = s.toCell(&contracts.CellRecord{Formula: formula, Value: result.Value, Error: result.Error})
		return nil
	})

	return
}

func (s *SheetRepository) checkCircularReference(label string, references []string, dependants []string) error {
	dependantsSet := make(map[string]bool, len(dependants))
	for _, dependant := range dependants {
		dependantsSet[dependant] = true
	}

	for _, reference := range references {
		if reference == label || dependantsSet[reference] {
			return fmt.Errorf("cell %s refers to %s: %w", label, reference, contracts.CircularReferenceError)
		}
	}

	return nil
}

func (s *SheetRepository) evaluateRecord(label string, formula contracts.Formula, getter contracts.CellSnapshotsGetter) *contracts.CellRecord {
	evaluator := s.newEvaluator(NewGetterCellResolver(getter))
	evaluator.Evaluate(formula)

	record := &contracts.CellRecord{
		Label:   label,
		Formula: formula,
		Value:   evaluator.Result(),
		Error:   evaluator.Error(),
	}
	s.observe(formula, contracts.EvaluationResult{Value: record.Value, Error: record.Error})

	return record
}

func (s *SheetRepository) observe(formula contracts.Formula, result contracts.EvaluationResult) {
	if s.metrics != nil {
		s.metrics.ObserveEvaluation(formula, result)
	}
}

func (s *SheetRepository) makeRecordsGetter(tx *bbolt.Tx, sheetId []byte) contracts.CellSnapshotsGetter {
	return func(labels []string) []*contracts.CellRecord {
		return s.getRecords(tx, sheetId, labels)
	}
}

func (s *SheetRepository) getRecords(tx *bbolt.Tx, sheetId []byte, labels []string) []*contracts.CellRecord {
	records := make([]*contracts.CellRecord, len(labels))

	bucket := tx.Bucket(sheetId)
	if bucket == nil {
		return records
	}

	for index, label := range labels {
		byteValue := bucket.Get([]byte(label))
		if byteValue == nil {
			continue
		}

		record, err := s.serializer.Unmarshal(byteValue)
		if err != nil {
			s.logger.Warn("skip broken cell", zap.ByteString("sheet", sheetId), zap.String("cell", label), zap.Error(err))
			continue
		}
		records[index] = record
	}

	return records
}

func (s *SheetRepository) toCell(record *contracts.CellRecord) *contracts.Cell {
	cell := &contracts.Cell{
		Label:   record.Label,
		Formula: s.tokenizer.Join(record.Formula),
		Value:   strconv.FormatFloat(record.Value, 'f', -1, 64),
		Error:   record.Error,
	}

	cell.Display = cell.Value
	if cell.Error != "" {
		cell.Display = cell.Error
	}

	return cell
}
