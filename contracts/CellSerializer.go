package contracts

type CellSerializer interface {
	Marshal(record *CellRecord) []byte
	Unmarshal(data []byte) (*CellRecord, error)
}
