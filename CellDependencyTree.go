package main

import (
	"bytes"
	"go.etcd.io/bbolt"
)

type CellDependencyTree struct{}

const Delimiter = byte(0x00)

var bucketPrefix = [4]byte{'_', '_', 'd', '_'}

func (t *CellDependencyTree) SetDependsOn(tx *bbolt.Tx, sheetId []byte, dependantLabel string, dependingOnLabels []string) (err error) {
	dependingListKey := t.makeDependingListKey(dependantLabel)

	bucketId := t.makeBucketId(sheetId)
	var bucket *bbolt.Bucket
	bucket, err = tx.CreateBucketIfNotExists(bucketId)
	if err != nil {
		return err
	}

	previousDependingListToDelete := map[string]bool{}
	for _, oldDependingOnLabel := range t.splitDependingList(bucket.Get(dependingListKey)) {
		previousDependingListToDelete[oldDependingOnLabel] = true
	}

	addedRecords := false
	for _, dependingOnLabel := range dependingOnLabels {
		if previousDependingListToDelete[dependingOnLabel] {
			// edge is already saved in the database, keep it
			delete(previousDependingListToDelete, dependingOnLabel)
		} else {
			addedRecords = true
			err = bucket.Put(t.makeDependantKey(dependantLabel, dependingOnLabel), []byte{})
			if err != nil {
				return err
			}
		}
	}

	if !addedRecords && len(previousDependingListToDelete) == 0 {
		return nil
	}

	// delete old edges which are not configured anymore
	for oldDependingOnLabel := range previousDependingListToDelete {
		err = bucket.Delete(t.makeDependantKey(dependantLabel, oldDependingOnLabel))
		if err != nil {
			return err
		}
	}

	if len(dependingOnLabels) == 0 {
		return bucket.Delete(dependingListKey)
	}

	newDependingOnLabels := make([][]byte, 0, len(dependingOnLabels))
	for _, dependingOnLabel := range dependingOnLabels {
		newDependingOnLabels = append(newDependingOnLabels, []byte(dependingOnLabel))
	}
	return bucket.Put(dependingListKey, bytes.Join(newDependingOnLabels, []byte{Delimiter}))
}

func (t *CellDependencyTree) GetDependants(tx *bbolt.Tx, sheetId []byte, dependingOnLabel string) []string {
	bucket := tx.Bucket(t.makeBucketId(sheetId))
	if bucket == nil {
		return []string{}
	}

	return t.fetchDependantsRecursive(bucket, dependingOnLabel, map[string]bool{
		dependingOnLabel: true,
	})
}

func (t *CellDependencyTree) GetDependingOn(tx *bbolt.Tx, sheetId []byte, dependantLabel string) []string {
	bucket := tx.Bucket(t.makeBucketId(sheetId))
	if bucket == nil {
		return []string{}
	}

	return t.splitDependingList(bucket.Get(t.makeDependingListKey(dependantLabel)))
}

// SortDependants is a depth-first topological sort restricted to the given labels
func (t *CellDependencyTree) SortDependants(tx *bbolt.Tx, sheetId []byte, labels []string) []string {
	inSet := make(map[string]bool, len(labels))
	for _, label := range labels {
		inSet[label] = true
	}

	sorted := make([]string, 0, len(labels))
	visited := make(map[string]bool, len(labels))

	var visit func(label string)
	visit = func(label string) {
		if visited[label] {
			return
		}
		visited[label] = true

		for _, precedent := range t.GetDependingOn(tx, sheetId, label) {
			if inSet[precedent] {
				visit(precedent)
			}
		}
		sorted = append(sorted, label)
	}

	for _, label := range labels {
		visit(label)
	}

	return sorted
}

func (t *CellDependencyTree) makeBucketId(sheetId []byte) []byte {
	if len(sheetId) == 0 {
		return nil
	}

	return append(bucketPrefix[:], sheetId...)
}

func (t *CellDependencyTree) splitDependingList(list []byte) []string {
	if len(list) == 0 {
		return []string{}
	}

	parts := bytes.Split(list, []byte{Delimiter})
	labels := make([]string, 0, len(parts))
	for _, part := range parts {
		labels = append(labels, string(part))
	}

	return labels
}

// fetchDependantsRecursive lists every transitive dependant once, in depth-first order
func (t *CellDependencyTree) fetchDependantsRecursive(bucket *bbolt.Bucket, dependingOnLabel string, alreadyFetched map[string]bool) []string {
	dependants := make([]string, 0)

	for _, dependantLabel := range t.fetchCellDependants(bucket, dependingOnLabel) {
		if !alreadyFetched[dependantLabel] {
			alreadyFetched[dependantLabel] = true
			dependants = append(dependants, dependantLabel)
			dependants = append(dependants, t.fetchDependantsRecursive(bucket, dependantLabel, alreadyFetched)...)
		}
	}

	return dependants
}

func (t *CellDependencyTree) fetchCellDependants(bucket *bbolt.Bucket, dependingOnLabel string) []string {
	dependantLabels := make([]string, 0, 5)
	c := bucket.Cursor()

	prefix := t.makeDependingOnPrefixKey(dependingOnLabel)
	prefixLength := len(prefix)
	for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
		dependantLabels = append(dependantLabels, string(k[prefixLength:]))
	}

	return dependantLabels
}

func (t *CellDependencyTree) makeDependingListKey(dependantLabel string) []byte {
	return append(
		[]byte{Delimiter, Delimiter},
		[]byte(dependantLabel)...,
	)
}

func (t *CellDependencyTree) makeDependingOnPrefixKey(dependingOnLabel string) []byte {
	return append([]byte(dependingOnLabel), Delimiter)
}

func (t *CellDependencyTree) makeDependantKey(dependantLabel string, dependingOnLabel string) []byte {
	return append(t.makeDependingOnPrefixKey(dependingOnLabel), []byte(dependantLabel)...)
}
