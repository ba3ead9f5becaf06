package db

type Snapshot struct {
	ID      int64
	Source  string
	TakenAt int64
}

type SnapshotProduct struct {
	SnapshotID   int64
	Idx          int64
	Name         string
	Price        string
	Availability string
}
